// README: Global query router; priority-ordered intent resolution for app-wide chat.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"petree/internal/ai"
	"petree/internal/modules/llmquota"
	"petree/internal/modules/pet"
	"petree/internal/textmatch"
	"petree/internal/types"
)

// PetDirectory is the slice of the pet service the routers need.
type PetDirectory interface {
	Get(ctx context.Context, id types.ID) (*pet.Pet, error)
	Search(ctx context.Context, term string, limit int) ([]pet.Pet, error)
	FindBestForText(ctx context.Context, utterance string) *pet.Pet
	FamilyTree(ctx context.Context, p *pet.Pet) (*pet.FamilyTree, error)
	Siblings(ctx context.Context, p *pet.Pet) ([]pet.Pet, error)
	Offspring(ctx context.Context, id types.ID) ([]pet.Pet, error)
	ForSale(ctx context.Context, species pet.Species, limit int) ([]pet.Pet, error)
}

// FaqAnswerer serves cached answers and captures drafts for review.
type FaqAnswerer interface {
	StaticAnswer(text string, lang types.Lang, hasPetContext bool) string
	DynamicAnswer(ctx context.Context, text string, lang types.Lang, hasPetContext bool) string
	CaptureDraft(ctx context.Context, query, answer string, lang types.Lang, hadPetContext bool)
}

// MarketAnalyst renders market price summaries.
type MarketAnalyst interface {
	Summary(ctx context.Context, species string, lang types.Lang) (string, error)
}

// MatchBook renders the owner's breeding-match summary.
type MatchBook interface {
	SummaryText(ctx context.Context, ownerID types.ID, lang types.Lang) (string, error)
}

// QuotaGuard meters model calls per owner. A nil guard means unmetered.
type QuotaGuard interface {
	Consume(ctx context.Context, ownerID string) error
}

const searchLimit = 10

// Resolver turns one utterance plus conversation state into a Response.
// It never returns an error: every failure path degrades to a text answer.
type Resolver struct {
	pets    PetDirectory
	faqs    FaqAnswerer
	market  MarketAnalyst
	matches MatchBook
	llm     ai.LLMProvider
	quota   QuotaGuard
}

func New(pets PetDirectory, faqs FaqAnswerer, market MarketAnalyst, matches MatchBook, llm ai.LLMProvider, quota QuotaGuard) *Resolver {
	return &Resolver{pets: pets, faqs: faqs, market: market, matches: matches, llm: llm, quota: quota}
}

// pick selects the per-language variant of a canned reply.
func pick(lang types.Lang, en, th string) string {
	if lang == types.LangTH {
		return th
	}
	return en
}

// ProcessGlobalQuery resolves an utterance with no pet focus requested by the
// caller. Checks run in a fixed priority order; the first match wins and the
// chain ends at the LLM, which always yields some answer.
func (r *Resolver) ProcessGlobalQuery(ctx context.Context, conv *Conversation, raw string) Response {
	text, isThai := textmatch.Normalize(raw)
	lang := types.LangEN
	if isThai {
		lang = types.LangTH
	}
	if text == "" {
		return textResponse(pick(lang, "Say something and I'll try to help.", "พิมพ์อะไรมาหน่อย เดี๋ยวช่วยดูให้ค่ะ"), IntentSmallTalk)
	}

	if out := conv.ConsumePending(text); out != nil {
		return r.resolvePending(out, lang)
	}

	if wantsContextClear(text) {
		conv.ClearPet()
		conv.SetPending(nil)
		rest := strings.Trim(stripClearTokens(text), " ?!.,")
		if len([]rune(rest)) >= 2 && textmatch.HasLetter(rest) {
			return r.ProcessGlobalQuery(ctx, conv, rest)
		}
		return textResponse(pick(lang, "Done, starting fresh. What would you like to do?", "เคลียร์ให้แล้วค่ะ เริ่มกันใหม่เลย"), IntentContextClear)
	}

	if isGreeting(text) {
		return textResponse(pick(lang,
			"Hello! Ask me about your pets, pedigrees, or the market.",
			"สวัสดีค่ะ ถามเรื่องสัตว์เลี้ยง เพดดีกรี หรือราคาตลาดได้เลย"), IntentGreeting)
	}
	if isSmallTalk(text) {
		return textResponse(pick(lang, "Happy to help anytime!", "ยินดีช่วยเสมอค่ะ"), IntentSmallTalk)
	}

	if conv.ActivePet != nil {
		if resp, ok := r.topicShortcut(conv, text, lang); ok {
			return resp
		}
	}

	if isRegistrationIntent(text) {
		resp := textResponse(pick(lang,
			"Let's register your new pet. Tap below to open the registration form.",
			"มาลงทะเบียนน้องใหม่กันค่ะ กดปุ่มด้านล่างเพื่อเปิดฟอร์มได้เลย"), IntentRegister)
		resp.Actions = []Action{{
			Label:   pick(lang, "Register a pet", "ลงทะเบียนสัตว์เลี้ยง"),
			Type:    ActionLink,
			Value:   "/pets/new",
			Primary: true,
		}}
		return resp
	}

	if isMatchSummaryIntent(text) {
		summary, err := r.matches.SummaryText(ctx, conv.OwnerID, lang)
		if err != nil {
			log.Printf("resolver: match summary for owner %s: %v", conv.OwnerID, err)
			return textResponse(pick(lang,
				"I couldn't load your breeding matches right now.",
				"ตอนนี้ดึงข้อมูลนัดผสมไม่ได้ค่ะ ลองใหม่อีกครั้งนะคะ"), IntentMatchSummary)
		}
		return textResponse(summary, IntentMatchSummary)
	}

	if isForSaleIntent(text) {
		return r.resolveForSale(ctx, text, lang)
	}

	if isMarketIntent(text) {
		species := string(forSaleSpecies(text))
		summary, err := r.market.Summary(ctx, species, lang)
		if err != nil {
			log.Printf("resolver: market summary for %s: %v", species, err)
			return textResponse(pick(lang,
				"Market data isn't available right now.",
				"ตอนนี้ยังดึงข้อมูลตลาดไม่ได้ค่ะ"), IntentAnalysis)
		}
		return textResponse(summary, IntentAnalysis)
	}

	if resp, ok := r.resolveEntitySearch(ctx, conv, text, lang); ok {
		return resp
	}

	// A promoted pet keeps influencing FAQ scope even on the global path.
	hasPet := conv.ActivePet != nil
	if answer := r.faqs.DynamicAnswer(ctx, text, lang, hasPet); answer != "" {
		return textResponse(answer, IntentFaq)
	}
	if answer := r.faqs.StaticAnswer(text, lang, hasPet); answer != "" {
		return textResponse(answer, IntentFaq)
	}

	return r.resolveWithLLM(ctx, conv.OwnerID, text, lang, hasPet)
}

// resolvePending executes or cancels a consumed offer.
func (r *Resolver) resolvePending(out *PendingOutcome, lang types.Lang) Response {
	if !out.Confirmed {
		return textResponse(pick(lang, "Okay, never mind.", "โอเคค่ะ ไม่เป็นไร"), IntentPending)
	}
	act := out.Action.Action
	act.Primary = true
	resp := textResponse(pick(lang, "Here you go.", "จัดให้เลยค่ะ"), IntentPending)
	if out.Action.RelatedPetName != "" {
		resp.Text = pick(lang,
			fmt.Sprintf("Here you go, opening that for %s.", out.Action.RelatedPetName),
			fmt.Sprintf("จัดให้เลยค่ะ เปิดของ%sให้แล้ว", out.Action.RelatedPetName))
	}
	resp.Actions = []Action{act}
	return resp
}

// topicShortcut answers topic words directly against the active pet by
// offering to open the matching view and arming the pending slot.
func (r *Resolver) topicShortcut(conv *Conversation, text string, lang types.Lang) (Response, bool) {
	topic := detectTopic(text)
	if topic == TopicNone {
		return Response{}, false
	}
	name := conv.ActivePet.Name
	var label, value, question, questionTH string
	switch topic {
	case TopicFamily:
		label, value = "Open family tree", fmt.Sprintf("/pets/%s/tree", conv.ActivePet.ID)
		question = fmt.Sprintf("Want to see %s's family tree?", name)
		questionTH = fmt.Sprintf("อยากดูผังครอบครัวของ%sไหมคะ", name)
	case TopicDocuments:
		label, value = "Open documents", fmt.Sprintf("/pets/%s/documents", conv.ActivePet.ID)
		question = fmt.Sprintf("Want to open %s's documents?", name)
		questionTH = fmt.Sprintf("อยากเปิดเอกสารของ%sไหมคะ", name)
	case TopicSale:
		label, value = "Open sale listing", fmt.Sprintf("/pets/%s/listing", conv.ActivePet.ID)
		question = fmt.Sprintf("Want to see %s's sale listing?", name)
		questionTH = fmt.Sprintf("อยากดูประกาศขายของ%sไหมคะ", name)
	case TopicOwner:
		label, value = "View owner", fmt.Sprintf("/pets/%s/owner", conv.ActivePet.ID)
		question = fmt.Sprintf("Want to see %s's owner profile?", name)
		questionTH = fmt.Sprintf("อยากดูข้อมูลเจ้าของ%sไหมคะ", name)
	case TopicRegNumber:
		label, value = "Open profile", fmt.Sprintf("/pets/%s", conv.ActivePet.ID)
		question = fmt.Sprintf("Want to open %s's profile to see the registration number?", name)
		questionTH = fmt.Sprintf("อยากเปิดโปรไฟล์ของ%sเพื่อดูเลขทะเบียนไหมคะ", name)
	default:
		return Response{}, false
	}
	conv.SetPending(&PendingAction{
		Action:         Action{Label: label, Type: ActionLink, Value: value},
		RelatedPetID:   conv.ActivePet.ID,
		RelatedPetName: name,
		Topic:          string(topic),
	})
	return textResponse(pick(lang, question, questionTH), IntentShortcut), true
}

func (r *Resolver) resolveForSale(ctx context.Context, text string, lang types.Lang) Response {
	species := forSaleSpecies(text)
	listings, err := r.pets.ForSale(ctx, species, searchLimit)
	if err != nil {
		log.Printf("resolver: for-sale listing %s: %v", species, err)
		listings = nil
	}
	if len(listings) == 0 {
		return textResponse(pick(lang,
			"Nothing is listed for sale right now. Check back soon!",
			"ตอนนี้ยังไม่มีประกาศขายค่ะ ลองกลับมาดูใหม่นะคะ"), IntentSale)
	}
	resp := Response{
		Text: pick(lang,
			fmt.Sprintf("Found %d listed for sale:", len(listings)),
			fmt.Sprintf("เจอประกาศขาย %d รายการค่ะ", len(listings))),
		Type:   TypePetList,
		Data:   listings,
		Intent: IntentSale,
	}
	return resp
}

// resolveEntitySearch looks for a pet reference in the utterance. It reports
// ok=false when the utterance doesn't look like a search at all, letting the
// FAQ and LLM stages take over.
func (r *Resolver) resolveEntitySearch(ctx context.Context, conv *Conversation, text string, lang types.Lang) (Response, bool) {
	if best := r.pets.FindBestForText(ctx, text); best != nil {
		conv.PromotePet(best)
		return Response{
			Text: pick(lang,
				fmt.Sprintf("Found %s. Ask me anything about them.", best.Name),
				fmt.Sprintf("เจอ%sแล้วค่ะ ถามอะไรเกี่ยวกับน้องได้เลย", best.Name)),
			Type:   TypePetList,
			Data:   []pet.Pet{*best},
			Intent: IntentSearch,
			Query:  text,
		}, true
	}

	term := extractSearchTerm(text)
	explicit := hasSearchVerb(text) || hasRelationIntent(text)
	if term == "" {
		if !explicit && !LooksLikePetName(text) {
			return Response{}, false
		}
		term = text
	}

	found, err := r.pets.Search(ctx, term, searchLimit)
	if err != nil {
		log.Printf("resolver: search %q: %v", term, err)
		found = nil
	}
	switch len(found) {
	case 0:
		if !explicit {
			// A bare token that matched nothing is probably not a name.
			return Response{}, false
		}
		return Response{
			Text: pick(lang,
				fmt.Sprintf("I couldn't find any pet matching %q.", term),
				fmt.Sprintf("ไม่เจอสัตว์เลี้ยงที่ตรงกับ \"%s\" เลยค่ะ", term)),
			Type:   TypeText,
			Intent: IntentSearch,
			Query:  term,
		}, true
	case 1:
		conv.PromotePet(&found[0])
		return Response{
			Text: pick(lang,
				fmt.Sprintf("Found %s. Ask me anything about them.", found[0].Name),
				fmt.Sprintf("เจอ%sแล้วค่ะ ถามอะไรเกี่ยวกับน้องได้เลย", found[0].Name)),
			Type:   TypePetList,
			Data:   found,
			Intent: IntentSearch,
			Query:  term,
		}, true
	default:
		// Several candidates: the user must choose, so keep any existing
		// focus untouched rather than guessing.
		return Response{
			Text: pick(lang,
				fmt.Sprintf("I found %d pets matching %q. Which one did you mean?", len(found), term),
				fmt.Sprintf("เจอ %d ตัวที่ตรงกับ \"%s\" ค่ะ หมายถึงตัวไหนคะ", len(found), term)),
			Type:   TypePetList,
			Data:   found,
			Intent: IntentSearch,
			Query:  term,
		}, true
	}
}

// resolveWithLLM is the terminal stage: ask the model, capture the answer as
// a draft for the cache, and degrade to an honest "don't know" on failure.
func (r *Resolver) resolveWithLLM(ctx context.Context, ownerID types.ID, text string, lang types.Lang, hasPet bool) Response {
	if !r.consumeQuota(ctx, ownerID) {
		return textResponse(pick(lang,
			"You've used up this month's AI answers. Cached answers and pet lookups still work.",
			"เดือนนี้ใช้คำตอบ AI ครบโควตาแล้วค่ะ แต่ยังถามข้อมูลสัตว์เลี้ยงและคำถามที่พบบ่อยได้นะคะ"), IntentLLM)
	}
	prompt := buildPrompt(text, lang, nil)
	answer, err := r.llm.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			log.Printf("resolver: llm complete: %v", err)
		}
		return textResponse(pick(lang,
			"I'm not sure about that one. Try rephrasing, or ask about a specific pet.",
			"ข้อนี้ยังตอบไม่ได้ค่ะ ลองถามใหม่ หรือถามเรื่องสัตว์เลี้ยงตัวไหนก็ได้นะคะ"), IntentLLM)
	}
	answer = strings.TrimSpace(answer)
	go r.faqs.CaptureDraft(context.WithoutCancel(ctx), text, answer, lang, hasPet)
	return textResponse(answer, IntentLLM)
}

// consumeQuota reports whether a model call is allowed for this owner.
// Metering errors other than exhaustion fail open: a broken quota table
// must not take the assistant down with it.
func (r *Resolver) consumeQuota(ctx context.Context, ownerID types.ID) bool {
	if r.quota == nil || ownerID == "" {
		return true
	}
	err := r.quota.Consume(ctx, string(ownerID))
	if err == nil {
		return true
	}
	if errors.Is(err, llmquota.ErrQuotaExhausted) {
		return false
	}
	log.Printf("resolver: quota check for %s: %v", ownerID, err)
	return true
}

func buildPrompt(text string, lang types.Lang, focus *pet.Pet) string {
	var b strings.Builder
	b.WriteString("You are the assistant inside a pet pedigree and marketplace app. ")
	b.WriteString("Answer briefly and practically. ")
	if lang == types.LangTH {
		b.WriteString("Answer in Thai. ")
	} else {
		b.WriteString("Answer in English. ")
	}
	if focus != nil {
		fmt.Fprintf(&b, "\nThe user is viewing this pet: name=%s species=%s breed=%s gender=%s",
			focus.Name, focus.Species, focus.Breed, focus.Gender)
		if focus.ForSale && focus.PriceTHB != nil {
			fmt.Fprintf(&b, " listed_for_sale_at=%d THB", *focus.PriceTHB)
		}
	}
	b.WriteString("\n\nUser question: ")
	b.WriteString(text)
	return b.String()
}
