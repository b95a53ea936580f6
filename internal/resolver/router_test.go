package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"petree/internal/modules/llmquota"
	"petree/internal/modules/pet"
	"petree/internal/types"
)

// fakePets is an in-memory PetDirectory mirroring the store's matching
// rules: Search matches names by substring, FindBestForText matches names
// contained in the utterance.
type fakePets struct {
	all []pet.Pet
}

func (f *fakePets) Get(_ context.Context, id types.ID) (*pet.Pet, error) {
	for i := range f.all {
		if f.all[i].ID == id {
			return &f.all[i], nil
		}
	}
	return nil, pet.ErrNotFound
}

func (f *fakePets) Search(_ context.Context, term string, limit int) ([]pet.Pet, error) {
	term = strings.ToLower(term)
	var out []pet.Pet
	for _, p := range f.all {
		if strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakePets) FindBestForText(_ context.Context, utterance string) *pet.Pet {
	u := strings.ToLower(utterance)
	var best *pet.Pet
	for i := range f.all {
		name := strings.ToLower(f.all[i].Name)
		if len(name) < 2 || !strings.Contains(u, name) {
			continue
		}
		if best == nil || len(name) > len(best.Name) {
			best = &f.all[i]
		}
	}
	return best
}

func (f *fakePets) FamilyTree(ctx context.Context, p *pet.Pet) (*pet.FamilyTree, error) {
	tree := &pet.FamilyTree{Self: p}
	if p.FatherID != nil {
		tree.Father, _ = f.Get(ctx, *p.FatherID)
	}
	if p.MotherID != nil {
		tree.Mother, _ = f.Get(ctx, *p.MotherID)
	}
	return tree, nil
}

func (f *fakePets) Siblings(_ context.Context, p *pet.Pet) ([]pet.Pet, error) {
	var out []pet.Pet
	for _, other := range f.all {
		if other.ID == p.ID {
			continue
		}
		if sharedParent(p, &other) != "" {
			out = append(out, other)
		}
	}
	return out, nil
}

func (f *fakePets) Offspring(_ context.Context, id types.ID) ([]pet.Pet, error) {
	var out []pet.Pet
	for _, p := range f.all {
		if (p.FatherID != nil && *p.FatherID == id) || (p.MotherID != nil && *p.MotherID == id) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePets) ForSale(_ context.Context, species pet.Species, limit int) ([]pet.Pet, error) {
	var out []pet.Pet
	for _, p := range f.all {
		if p.ForSale && p.Species == species {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeFaq struct {
	dynamic  string
	static   string
	drafts   chan string
	scopes   []bool // hasPetContext per lookup, in call order
	draftPet bool
}

func (f *fakeFaq) StaticAnswer(_ string, _ types.Lang, hasPet bool) string {
	f.scopes = append(f.scopes, hasPet)
	return f.static
}

func (f *fakeFaq) DynamicAnswer(_ context.Context, _ string, _ types.Lang, hasPet bool) string {
	f.scopes = append(f.scopes, hasPet)
	return f.dynamic
}

func (f *fakeFaq) CaptureDraft(_ context.Context, query, _ string, _ types.Lang, hadPet bool) {
	f.draftPet = hadPet
	if f.drafts != nil {
		f.drafts <- query
	}
}

type fakeMarket struct {
	text string
	err  error
}

func (f *fakeMarket) Summary(context.Context, string, types.Lang) (string, error) {
	return f.text, f.err
}

type fakeMatches struct {
	text string
	err  error
}

func (f *fakeMatches) SummaryText(context.Context, types.ID, types.Lang) (string, error) {
	return f.text, f.err
}

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Complete(context.Context, string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func idPtr(s string) *types.ID {
	id := types.ID(s)
	return &id
}

func testPets() *fakePets {
	price := int64(25000)
	return &fakePets{all: []pet.Pet{
		{ID: "p1", Name: "Apollo", Species: pet.SpeciesDog, Breed: "Thai Ridgeback",
			Gender: pet.GenderMale, Color: "red", Location: "Bangkok",
			RegistrationNo: "TRD-23-0142", OwnerName: "Nok",
			FatherID: idPtr("p10"), MotherID: idPtr("p11")},
		{ID: "p2", Name: "Luna", Species: pet.SpeciesDog, Breed: "Thai Ridgeback",
			Gender: pet.GenderFemale, Color: "blue",
			FatherID: idPtr("p10"), MotherID: idPtr("p12")},
		{ID: "p3", Name: "Lucky", Species: pet.SpeciesDog, Breed: "Bangkaew",
			Gender: pet.GenderMale, ForSale: true, PriceTHB: &price},
		{ID: "p10", Name: "Rex", Species: pet.SpeciesDog, Gender: pet.GenderMale, Color: "black"},
		{ID: "p11", Name: "Daisy", Species: pet.SpeciesDog, Gender: pet.GenderFemale, Color: "red"},
	}}
}

type fakeQuota struct {
	err   error
	calls int
}

func (f *fakeQuota) Consume(context.Context, string) error {
	f.calls++
	return f.err
}

func testResolver() (*Resolver, *fakeFaq, *fakeLLM) {
	faqs := &fakeFaq{}
	llm := &fakeLLM{}
	r := New(testPets(), faqs, &fakeMarket{text: "Dogs on the market: 12 listings."},
		&fakeMatches{text: "You have 1 upcoming breeding match."}, llm, nil)
	return r, faqs, llm
}

func TestGlobalGreeting(t *testing.T) {
	r, _, llm := testResolver()
	conv := NewConversation("u1")

	resp := r.ProcessGlobalQuery(context.Background(), conv, "hi")
	if resp.Intent != IntentGreeting {
		t.Fatalf("intent = %q, want %q", resp.Intent, IntentGreeting)
	}
	if llm.calls != 0 {
		t.Errorf("llm called %d times for a greeting", llm.calls)
	}
}

func TestGlobalMarketBeforeEntitySearch(t *testing.T) {
	r, _, _ := testResolver()
	conv := NewConversation("u1")

	resp := r.ProcessGlobalQuery(context.Background(), conv, "ราคาตลาดเท่าไหร่")
	if resp.Intent != IntentAnalysis {
		t.Fatalf("intent = %q, want %q", resp.Intent, IntentAnalysis)
	}
	if resp.Text == "" {
		t.Error("empty market summary text")
	}
}

func TestGlobalEntitySearchSingleMatch(t *testing.T) {
	r, _, _ := testResolver()
	conv := NewConversation("u1")

	resp := r.ProcessGlobalQuery(context.Background(), conv, "find Apollo")
	if resp.Type != TypePetList {
		t.Fatalf("type = %q, want %q", resp.Type, TypePetList)
	}
	if len(resp.Data) != 1 || resp.Data[0].Name != "Apollo" {
		t.Fatalf("data = %+v, want single Apollo", resp.Data)
	}
	if conv.ActivePet == nil || conv.ActivePet.Name != "Apollo" {
		t.Errorf("active pet = %+v, want Apollo promoted", conv.ActivePet)
	}
}

func TestGlobalEntitySearchMultiMatchKeepsContext(t *testing.T) {
	r, _, _ := testResolver()
	conv := NewConversation("u1")
	conv.ActivePet = &pet.Ref{ID: "p3", Name: "Lucky"}

	resp := r.ProcessGlobalQuery(context.Background(), conv, "find lu")
	if resp.Type != TypePetList || len(resp.Data) < 2 {
		t.Fatalf("resp = %+v, want a multi-pet list", resp)
	}
	if conv.ActivePet == nil || conv.ActivePet.Name != "Lucky" {
		t.Errorf("active pet = %+v, want existing focus kept", conv.ActivePet)
	}
}

func TestGlobalRegistrationBypassesSearch(t *testing.T) {
	r, _, _ := testResolver()
	conv := NewConversation("u1")

	resp := r.ProcessGlobalQuery(context.Background(), conv, "I want to register my new puppy")
	if resp.Intent != IntentRegister {
		t.Fatalf("intent = %q, want %q", resp.Intent, IntentRegister)
	}
	if len(resp.Actions) != 1 || resp.Actions[0].Type != ActionLink {
		t.Fatalf("actions = %+v, want one link action", resp.Actions)
	}
}

func TestGlobalForSale(t *testing.T) {
	r, _, _ := testResolver()
	conv := NewConversation("u1")

	resp := r.ProcessGlobalQuery(context.Background(), conv, "any puppies for sale?")
	if resp.Intent != IntentSale {
		t.Fatalf("intent = %q, want %q", resp.Intent, IntentSale)
	}
	if resp.Type != TypePetList || len(resp.Data) != 1 || resp.Data[0].Name != "Lucky" {
		t.Fatalf("data = %+v, want Lucky listed", resp.Data)
	}
}

func TestGlobalTopicShortcutArmsPending(t *testing.T) {
	r, _, _ := testResolver()
	conv := NewConversation("u1")
	conv.ActivePet = &pet.Ref{ID: "p1", Name: "Apollo"}

	resp := r.ProcessGlobalQuery(context.Background(), conv, "documents")
	if resp.Intent != IntentShortcut {
		t.Fatalf("intent = %q, want %q", resp.Intent, IntentShortcut)
	}
	if !conv.HasPending() {
		t.Fatal("pending slot not armed")
	}

	resp = r.ProcessGlobalQuery(context.Background(), conv, "yes")
	if resp.Intent != IntentPending {
		t.Fatalf("intent = %q, want %q", resp.Intent, IntentPending)
	}
	if len(resp.Actions) != 1 || resp.Actions[0].Type != ActionLink {
		t.Fatalf("actions = %+v, want the offered link", resp.Actions)
	}
	if conv.HasPending() {
		t.Error("pending slot not cleared after confirmation")
	}
}

func TestGlobalPendingDeclined(t *testing.T) {
	r, _, _ := testResolver()
	conv := NewConversation("u1")
	conv.ActivePet = &pet.Ref{ID: "p1", Name: "Apollo"}

	r.ProcessGlobalQuery(context.Background(), conv, "เอกสาร")
	if !conv.HasPending() {
		t.Fatal("pending slot not armed")
	}

	resp := r.ProcessGlobalQuery(context.Background(), conv, "ไม่ใช่")
	if len(resp.Actions) != 0 {
		t.Errorf("actions = %+v, want none after decline", resp.Actions)
	}
	if conv.HasPending() {
		t.Error("pending slot not cleared after decline")
	}
}

func TestGlobalClearContext(t *testing.T) {
	r, _, _ := testResolver()
	conv := NewConversation("u1")
	conv.ActivePet = &pet.Ref{ID: "p1", Name: "Apollo"}
	conv.SetPending(&PendingAction{Action: Action{Type: ActionLink, Value: "/x"}})

	resp := r.ProcessGlobalQuery(context.Background(), conv, "เริ่มใหม่")
	if resp.Intent != IntentContextClear {
		t.Fatalf("intent = %q, want %q", resp.Intent, IntentContextClear)
	}
	if conv.ActivePet != nil || conv.HasPending() {
		t.Errorf("conversation not cleared: %+v", conv)
	}
}

func TestGlobalFaqFallback(t *testing.T) {
	r, faqs, llm := testResolver()
	faqs.static = "Dog pregnancy lasts about 63 days."
	conv := NewConversation("u1")

	resp := r.ProcessGlobalQuery(context.Background(), conv, "how long is dog pregnancy")
	if resp.Intent != IntentFaq {
		t.Fatalf("intent = %q, want %q", resp.Intent, IntentFaq)
	}
	if llm.calls != 0 {
		t.Errorf("llm called %d times when the FAQ had the answer", llm.calls)
	}
}

func TestGlobalPoliteSearchNotSwallowed(t *testing.T) {
	r, _, _ := testResolver()
	conv := NewConversation("u1")

	resp := r.ProcessGlobalQuery(context.Background(), conv, "thanks, now find luna")
	if resp.Intent != IntentSearch {
		t.Fatalf("intent = %q, want %q", resp.Intent, IntentSearch)
	}
	if conv.ActivePet == nil || conv.ActivePet.Name != "Luna" {
		t.Errorf("active pet = %+v, want Luna promoted", conv.ActivePet)
	}
}

func TestGlobalFaqScopeFollowsActivePet(t *testing.T) {
	r, faqs, llm := testResolver()
	llm.reply = "Most dogs can learn simple tricks with short daily sessions."
	faqs.drafts = make(chan string, 1)
	conv := NewConversation("u1")
	conv.ActivePet = &pet.Ref{ID: "p1", Name: "Apollo"}

	r.ProcessGlobalQuery(context.Background(), conv, "can you do tricks maybe")
	if len(faqs.scopes) != 2 {
		t.Fatalf("faq consulted %d times, want dynamic then static", len(faqs.scopes))
	}
	for i, hasPet := range faqs.scopes {
		if !hasPet {
			t.Errorf("faq lookup %d ignored the active pet context", i)
		}
	}
	select {
	case <-faqs.drafts:
	case <-time.After(time.Second):
		t.Fatal("draft was never captured")
	}
	if !faqs.draftPet {
		t.Error("draft recorded without the active pet context")
	}
}

func TestGlobalLLMFallbackCapturesDraft(t *testing.T) {
	r, faqs, llm := testResolver()
	llm.reply = "Socialize them early and keep sessions short."
	faqs.drafts = make(chan string, 1)
	conv := NewConversation("u1")

	query := "why does early socialization matter for puppies"
	resp := r.ProcessGlobalQuery(context.Background(), conv, query)
	if resp.Intent != IntentLLM {
		t.Fatalf("intent = %q, want %q", resp.Intent, IntentLLM)
	}
	if resp.Text != llm.reply {
		t.Fatalf("text = %q, want the model answer", resp.Text)
	}
	select {
	case got := <-faqs.drafts:
		if !strings.Contains(got, "socialization") {
			t.Errorf("captured draft query = %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("draft was never captured")
	}
}

func TestGlobalLLMFailureDegrades(t *testing.T) {
	r, _, llm := testResolver()
	llm.err = errors.New("quota exceeded")
	conv := NewConversation("u1")

	resp := r.ProcessGlobalQuery(context.Background(), conv, "why does early socialization matter for puppies")
	if resp.Intent != IntentLLM {
		t.Fatalf("intent = %q, want %q", resp.Intent, IntentLLM)
	}
	if resp.Text == "" {
		t.Error("empty text on llm failure, want an honest fallback answer")
	}
}

func TestGlobalQuotaExhaustedSkipsLLM(t *testing.T) {
	r, _, llm := testResolver()
	llm.reply = "should not appear"
	quota := &fakeQuota{err: llmquota.ErrQuotaExhausted}
	r.quota = quota
	conv := NewConversation("u1")

	resp := r.ProcessGlobalQuery(context.Background(), conv, "why does early socialization matter for puppies")
	if llm.calls != 0 {
		t.Errorf("llm called %d times with the quota spent", llm.calls)
	}
	if resp.Intent != IntentLLM || resp.Text == llm.reply {
		t.Errorf("resp = %+v, want a quota notice", resp)
	}
	if quota.calls != 1 {
		t.Errorf("quota consulted %d times, want 1", quota.calls)
	}
}

func TestGlobalQuotaErrorFailsOpen(t *testing.T) {
	r, _, llm := testResolver()
	llm.reply = "an actual answer"
	r.quota = &fakeQuota{err: errors.New("connection refused")}
	conv := NewConversation("u1")

	resp := r.ProcessGlobalQuery(context.Background(), conv, "why does early socialization matter for puppies")
	if llm.calls != 1 {
		t.Fatalf("llm called %d times, want 1 despite the metering error", llm.calls)
	}
	if resp.Text != llm.reply {
		t.Errorf("text = %q", resp.Text)
	}
}

func TestGlobalMatchSummary(t *testing.T) {
	r, _, _ := testResolver()
	conv := NewConversation("u1")

	resp := r.ProcessGlobalQuery(context.Background(), conv, "how are my breeding matches")
	if resp.Intent != IntentMatchSummary {
		t.Fatalf("intent = %q, want %q", resp.Intent, IntentMatchSummary)
	}
	if !strings.Contains(resp.Text, "upcoming") {
		t.Errorf("text = %q", resp.Text)
	}
}
