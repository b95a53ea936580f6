// README: Pet-context router; resolves utterances while a pet profile is in focus.
package resolver

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"petree/internal/modules/pet"
	"petree/internal/textmatch"
	"petree/internal/types"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// ProcessPetQuery resolves an utterance asked while viewing one pet. The
// focus pet always wins over any previously promoted pet. Cheap deterministic
// checks run first, the LLM handles nuance, and a local intent table catches
// everything the model could not.
func (r *Resolver) ProcessPetQuery(ctx context.Context, conv *Conversation, focus *pet.Pet, raw string) Response {
	conv.PromotePet(focus)

	text, isThai := textmatch.Normalize(raw)
	lang := types.LangEN
	if isThai {
		lang = types.LangTH
	}
	if text == "" {
		return textResponse(pick(lang,
			fmt.Sprintf("Ask me anything about %s.", focus.Name),
			fmt.Sprintf("ถามอะไรเกี่ยวกับ%sได้เลยค่ะ", focus.Name)), IntentPet)
	}

	if out := conv.ConsumePending(text); out != nil {
		return r.resolvePending(out, lang)
	}

	if isGreeting(text) || isSmallTalk(text) {
		return textResponse(pick(lang,
			fmt.Sprintf("Hi! You're looking at %s. Ask me anything about them.", focus.Name),
			fmt.Sprintf("สวัสดีค่ะ ตอนนี้กำลังดูข้อมูลของ%sอยู่ ถามได้เลยนะคะ", focus.Name)), IntentGreeting)
	}

	// Registration is an app-level flow, not a per-pet question.
	if isRegistrationIntent(text) {
		resp := textResponse(pick(lang,
			"Registering a new pet? Tap below to open the form.",
			"จะลงทะเบียนน้องใหม่ใช่ไหมคะ กดปุ่มด้านล่างได้เลย"), IntentRegister)
		resp.Actions = []Action{{
			Label:   pick(lang, "Register a pet", "ลงทะเบียนสัตว์เลี้ยง"),
			Type:    ActionLink,
			Value:   "/pets/new",
			Primary: true,
		}}
		return resp
	}

	if answer := r.faqs.DynamicAnswer(ctx, text, lang, true); answer != "" {
		return textResponse(answer, IntentFaq)
	}
	if answer := r.faqs.StaticAnswer(text, lang, true); answer != "" {
		return textResponse(answer, IntentFaq)
	}

	// Breeding compatibility is a rule, not a judgement call; it never goes
	// to the model.
	if textmatch.MatchesAny(text, breedingVerbKeywords) {
		return r.simulateBreeding(ctx, focus, text, lang)
	}

	if shouldUseLLM(text) && r.consumeQuota(ctx, conv.OwnerID) {
		if resp, ok := r.petLLM(ctx, text, lang, focus); ok {
			return resp
		}
	}

	return r.localPetIntent(ctx, conv, focus, text, lang)
}

// petLLM asks the model with the pet profile in the prompt. ok=false means
// the call failed or returned nothing and the local table should answer.
func (r *Resolver) petLLM(ctx context.Context, text string, lang types.Lang, focus *pet.Pet) (Response, bool) {
	prompt := buildPrompt(text, lang, focus)
	answer, err := r.llm.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			log.Printf("resolver: pet llm for %s: %v", focus.ID, err)
		}
		return Response{}, false
	}
	answer = strings.TrimSpace(answer)
	go r.faqs.CaptureDraft(context.WithoutCancel(ctx), text, answer, lang, true)
	resp := textResponse(answer, IntentLLM)
	return resp, true
}

// localPetIntent is the deterministic fallback table. First match wins;
// the most specific intents sit on top.
func (r *Resolver) localPetIntent(ctx context.Context, conv *Conversation, focus *pet.Pet, text string, lang types.Lang) Response {
	switch {
	case textmatch.MatchesAny(text, topicFamilyKeywords):
		return r.renderFamilyTree(ctx, focus, lang)

	case textmatch.MatchesAny(text, siblingKeywords):
		return r.renderSiblings(ctx, focus, lang)

	case textmatch.MatchesAny(text, offspringKeywords):
		return r.renderOffspring(ctx, focus, lang)

	case textmatch.MatchesAny(text, topicRegNumberKeywords):
		if focus.RegistrationNo == "" {
			return textResponse(pick(lang,
				fmt.Sprintf("%s has no registration number on file.", focus.Name),
				fmt.Sprintf("%sยังไม่มีเลขทะเบียนในระบบค่ะ", focus.Name)), IntentPet)
		}
		resp := textResponse(pick(lang,
			fmt.Sprintf("%s's registration number is %s.", focus.Name, focus.RegistrationNo),
			fmt.Sprintf("เลขทะเบียนของ%sคือ %s ค่ะ", focus.Name, focus.RegistrationNo)), IntentPet)
		resp.Actions = []Action{{
			Label:   pick(lang, "Copy number", "คัดลอกเลข"),
			Type:    ActionCopy,
			Value:   focus.RegistrationNo,
			Primary: true,
		}}
		return resp

	case textmatch.MatchesAny(text, shareKeywords):
		resp := textResponse(pick(lang,
			fmt.Sprintf("Here's a share link for %s.", focus.Name),
			fmt.Sprintf("นี่คือลิงก์แชร์ของ%sค่ะ", focus.Name)), IntentPet)
		resp.Actions = []Action{{
			Label:   pick(lang, "Share profile", "แชร์โปรไฟล์"),
			Type:    ActionLink,
			Value:   fmt.Sprintf("/pets/%s?share=1", focus.ID),
			Primary: true,
		}}
		return resp

	case textmatch.MatchesAny(text, topicDocumentKeywords):
		resp := textResponse(pick(lang,
			fmt.Sprintf("Opening %s's documents.", focus.Name),
			fmt.Sprintf("เปิดเอกสารของ%sให้แล้วค่ะ", focus.Name)), IntentPet)
		resp.Actions = []Action{{
			Label:   pick(lang, "Open documents", "เปิดเอกสาร"),
			Type:    ActionEvent,
			Value:   "open_documents",
			Primary: true,
		}}
		return resp

	case textmatch.MatchesAny(text, topicSaleKeywords):
		return textResponse(saleStatusText(focus, lang), IntentPet)

	case textmatch.MatchesAny(text, topicOwnerKeywords):
		if focus.OwnerName == "" {
			return textResponse(pick(lang,
				"The owner hasn't filled in their profile yet.",
				"เจ้าของยังไม่ได้กรอกข้อมูลโปรไฟล์ค่ะ"), IntentPet)
		}
		return textResponse(pick(lang,
			fmt.Sprintf("%s belongs to %s.", focus.Name, focus.OwnerName),
			fmt.Sprintf("%sเป็นของคุณ%sค่ะ", focus.Name, focus.OwnerName)), IntentPet)

	case textmatch.MatchesAny(text, locationKeywords):
		if focus.Location == "" {
			return textResponse(pick(lang,
				fmt.Sprintf("%s has no location on file.", focus.Name),
				fmt.Sprintf("%sยังไม่มีข้อมูลที่อยู่ค่ะ", focus.Name)), IntentPet)
		}
		return textResponse(pick(lang,
			fmt.Sprintf("%s is in %s.", focus.Name, focus.Location),
			fmt.Sprintf("%sอยู่ที่%sค่ะ", focus.Name, focus.Location)), IntentPet)

	case textmatch.MatchesAny(text, birthdayKeywords):
		return textResponse(birthdayText(focus, lang), IntentPet)

	case textmatch.MatchesAny(text, geneticsKeywords):
		return r.renderGenetics(ctx, focus, lang)

	case textmatch.MatchesAny(text, summaryKeywords):
		return textResponse(profileSummary(focus, lang), IntentPet)

	case hasSearchVerb(text) || LooksLikePetName(text):
		// The user moved on to another pet; hand over to the global flow.
		return r.ProcessGlobalQuery(ctx, conv, text)
	}

	return textResponse(pick(lang,
		fmt.Sprintf("I'm not sure what you'd like to know about %s. Try asking about their family, documents, or sale status.", focus.Name),
		fmt.Sprintf("ยังไม่แน่ใจว่าอยากรู้อะไรเกี่ยวกับ%sค่ะ ลองถามเรื่องครอบครัว เอกสาร หรือสถานะขายดูนะคะ", focus.Name)), IntentPet)
}

// simulateBreeding checks a proposed pairing between the focus pet and a
// partner named in the utterance. The assessment is deterministic: gender
// compatibility and shared ancestry, nothing probabilistic.
func (r *Resolver) simulateBreeding(ctx context.Context, focus *pet.Pet, text string, lang types.Lang) Response {
	first, second := extractBreedingPair(text)
	partnerName := second
	if partnerName == "" || strings.EqualFold(partnerName, focus.Name) {
		partnerName = first
	}
	if partnerName == "" || strings.EqualFold(partnerName, focus.Name) {
		return textResponse(pick(lang,
			fmt.Sprintf("Who would you like to pair %s with? Tell me the partner's name.", focus.Name),
			fmt.Sprintf("อยากจับคู่%sกับตัวไหนคะ บอกชื่อคู่ผสมมาได้เลย", focus.Name)), IntentPet)
	}

	partner := r.pets.FindBestForText(ctx, partnerName)
	if partner == nil {
		return textResponse(pick(lang,
			fmt.Sprintf("I couldn't find a pet named %q to pair with %s.", partnerName, focus.Name),
			fmt.Sprintf("ไม่เจอสัตว์เลี้ยงชื่อ \"%s\" ที่จะจับคู่กับ%sค่ะ", partnerName, focus.Name)), IntentPet)
	}

	var warnings []string
	if partner.Species != focus.Species {
		warnings = append(warnings, pick(lang,
			"they are different species", "คนละชนิดกัน"))
	}
	if partner.Gender == focus.Gender {
		warnings = append(warnings, pick(lang,
			fmt.Sprintf("both are %s", focus.Gender),
			"เพศเดียวกัน"))
	}
	if shared := sharedParent(focus, partner); shared != "" {
		warnings = append(warnings, pick(lang,
			fmt.Sprintf("they share a %s, so the pairing would be inbreeding", shared),
			"มีพ่อหรือแม่ตัวเดียวกัน การจับคู่นี้จะเป็นการผสมเลือดชิด"))
	}

	if len(warnings) > 0 {
		return textResponse(pick(lang,
			fmt.Sprintf("⚠️ Pairing %s with %s is not recommended: %s.",
				focus.Name, partner.Name, strings.Join(warnings, "; ")),
			fmt.Sprintf("⚠️ ไม่แนะนำให้จับคู่%sกับ%sค่ะ เพราะ%s",
				focus.Name, partner.Name, strings.Join(warnings, " และ"))), IntentPet)
	}
	return textResponse(pick(lang,
		fmt.Sprintf("%s and %s look compatible on record: opposite genders, no shared parents. A vet check is still a good idea before breeding.",
			focus.Name, partner.Name),
		fmt.Sprintf("%sกับ%sดูเข้ากันได้ตามข้อมูลค่ะ คนละเพศและไม่มีพ่อแม่ร่วมกัน แต่ควรให้สัตวแพทย์ตรวจก่อนผสมนะคะ",
			focus.Name, partner.Name)), IntentPet)
}

// sharedParent names the parent two pets have in common, or "".
func sharedParent(a, b *pet.Pet) string {
	if a.FatherID != nil && b.FatherID != nil && *a.FatherID == *b.FatherID {
		return "father"
	}
	if a.MotherID != nil && b.MotherID != nil && *a.MotherID == *b.MotherID {
		return "mother"
	}
	return ""
}

func (r *Resolver) renderFamilyTree(ctx context.Context, focus *pet.Pet, lang types.Lang) Response {
	tree, err := r.pets.FamilyTree(ctx, focus)
	if err != nil {
		log.Printf("resolver: family tree for %s: %v", focus.ID, err)
		tree = nil
	}
	if tree == nil || (tree.Father == nil && tree.Mother == nil) {
		return textResponse(pick(lang,
			fmt.Sprintf("%s has no recorded parents yet.", focus.Name),
			fmt.Sprintf("%sยังไม่มีข้อมูลพ่อแม่ในระบบค่ะ", focus.Name)), IntentPet)
	}
	nameOf := func(p *pet.Pet) string {
		if p == nil {
			return pick(lang, "unknown", "ไม่ทราบ")
		}
		return p.Name
	}
	return textResponse(pick(lang,
		fmt.Sprintf("%s's father is %s and mother is %s.", focus.Name, nameOf(tree.Father), nameOf(tree.Mother)),
		fmt.Sprintf("พ่อของ%sคือ%s ส่วนแม่คือ%sค่ะ", focus.Name, nameOf(tree.Father), nameOf(tree.Mother))), IntentPet)
}

func (r *Resolver) renderSiblings(ctx context.Context, focus *pet.Pet, lang types.Lang) Response {
	sibs, err := r.pets.Siblings(ctx, focus)
	if err != nil {
		log.Printf("resolver: siblings for %s: %v", focus.ID, err)
		sibs = nil
	}
	if len(sibs) == 0 {
		return textResponse(pick(lang,
			fmt.Sprintf("%s has no recorded siblings.", focus.Name),
			fmt.Sprintf("%sยังไม่มีข้อมูลพี่น้องค่ะ", focus.Name)), IntentPet)
	}
	return Response{
		Text: pick(lang,
			fmt.Sprintf("%s has %d recorded siblings:", focus.Name, len(sibs)),
			fmt.Sprintf("%sมีพี่น้องในระบบ %d ตัวค่ะ", focus.Name, len(sibs))),
		Type:   TypePetList,
		Data:   sibs,
		Intent: IntentPet,
	}
}

func (r *Resolver) renderOffspring(ctx context.Context, focus *pet.Pet, lang types.Lang) Response {
	kids, err := r.pets.Offspring(ctx, focus.ID)
	if err != nil {
		log.Printf("resolver: offspring for %s: %v", focus.ID, err)
		kids = nil
	}
	if len(kids) == 0 {
		return textResponse(pick(lang,
			fmt.Sprintf("%s has no recorded offspring.", focus.Name),
			fmt.Sprintf("%sยังไม่มีข้อมูลลูกในระบบค่ะ", focus.Name)), IntentPet)
	}
	return Response{
		Text: pick(lang,
			fmt.Sprintf("%s has %d recorded offspring:", focus.Name, len(kids)),
			fmt.Sprintf("%sมีลูกในระบบ %d ตัวค่ะ", focus.Name, len(kids))),
		Type:   TypePetList,
		Data:   kids,
		Intent: IntentPet,
	}
}

// renderGenetics reports the color line from the recorded parents. Without
// genotype data this stays descriptive.
func (r *Resolver) renderGenetics(ctx context.Context, focus *pet.Pet, lang types.Lang) Response {
	tree, err := r.pets.FamilyTree(ctx, focus)
	if err != nil {
		log.Printf("resolver: genetics tree for %s: %v", focus.ID, err)
		tree = nil
	}
	parts := []string{pick(lang,
		fmt.Sprintf("%s is a %s %s", focus.Name, focus.Color, focus.Breed),
		fmt.Sprintf("%sเป็น%sสี%s", focus.Name, focus.Breed, focus.Color))}
	if tree != nil && tree.Father != nil && tree.Father.Color != "" {
		parts = append(parts, pick(lang,
			fmt.Sprintf("father %s is %s", tree.Father.Name, tree.Father.Color),
			fmt.Sprintf("พ่อ%sสี%s", tree.Father.Name, tree.Father.Color)))
	}
	if tree != nil && tree.Mother != nil && tree.Mother.Color != "" {
		parts = append(parts, pick(lang,
			fmt.Sprintf("mother %s is %s", tree.Mother.Name, tree.Mother.Color),
			fmt.Sprintf("แม่%sสี%s", tree.Mother.Name, tree.Mother.Color)))
	}
	sep := pick(lang, "; ", " ")
	return textResponse(strings.Join(parts, sep)+pick(lang, ".", "ค่ะ"), IntentPet)
}

func saleStatusText(p *pet.Pet, lang types.Lang) string {
	if !p.ForSale {
		return pick(lang,
			fmt.Sprintf("%s is not listed for sale.", p.Name),
			fmt.Sprintf("%sไม่ได้ประกาศขายค่ะ", p.Name))
	}
	if p.PriceTHB != nil {
		return pick(lang,
			fmt.Sprintf("%s is for sale at %d THB.", p.Name, *p.PriceTHB),
			fmt.Sprintf("%sประกาศขายอยู่ที่ %d บาทค่ะ", p.Name, *p.PriceTHB))
	}
	return pick(lang,
		fmt.Sprintf("%s is for sale. Contact the owner for the price.", p.Name),
		fmt.Sprintf("%sประกาศขายอยู่ค่ะ สอบถามราคากับเจ้าของได้เลย", p.Name))
}

func birthdayText(p *pet.Pet, lang types.Lang) string {
	if p.BirthDate == nil {
		return pick(lang,
			fmt.Sprintf("%s has no recorded birth date.", p.Name),
			fmt.Sprintf("%sยังไม่มีข้อมูลวันเกิดค่ะ", p.Name))
	}
	born := p.BirthDate.Format("2 Jan 2006")
	age := p.Age(timeNow())
	if age < 0 {
		return pick(lang,
			fmt.Sprintf("%s was born on %s.", p.Name, born),
			fmt.Sprintf("%sเกิดวันที่ %s ค่ะ", p.Name, born))
	}
	return pick(lang,
		fmt.Sprintf("%s was born on %s (%d years old).", p.Name, born, age),
		fmt.Sprintf("%sเกิดวันที่ %s อายุ %d ปีค่ะ", p.Name, born, age))
}

func profileSummary(p *pet.Pet, lang types.Lang) string {
	var b strings.Builder
	if lang == types.LangTH {
		fmt.Fprintf(&b, "%s เป็น%s พันธุ์%s", p.Name, speciesTH(p.Species), p.Breed)
		if p.Color != "" {
			fmt.Fprintf(&b, " สี%s", p.Color)
		}
		if p.Location != "" {
			fmt.Fprintf(&b, " อยู่ที่%s", p.Location)
		}
		b.WriteString("ค่ะ")
		return b.String()
	}
	fmt.Fprintf(&b, "%s is a %s %s", p.Name, p.Color, p.Breed)
	if p.Gender != "" {
		fmt.Fprintf(&b, " (%s)", p.Gender)
	}
	if p.Location != "" {
		fmt.Fprintf(&b, " in %s", p.Location)
	}
	b.WriteString(".")
	return b.String()
}

func speciesTH(s pet.Species) string {
	if s == pet.SpeciesCat {
		return "แมว"
	}
	return "สุนัข"
}
