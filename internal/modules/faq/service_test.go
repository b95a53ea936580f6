package faq

import (
	"context"
	"sync"
	"testing"
	"time"

	"petree/internal/types"
)

type fakeDraftStore struct {
	mu     sync.Mutex
	drafts []Entry
}

func (f *fakeDraftStore) InsertDraft(ctx context.Context, e Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts = append(f.drafts, e)
	return nil
}

func dynamicEntries() []Entry {
	return []Entry{
		{
			ID:       "shipping",
			Scope:    ScopeAny,
			Keywords: []string{"shipping", "transport", "ขนส่ง"},
			AnswerEN: "We partner with pet transport services nationwide.",
			AnswerTH: "เรามีบริการขนส่งสัตว์เลี้ยงทั่วประเทศค่ะ",
			Priority: 1,
		},
		{
			ID:         "premium shipping",
			Scope:      ScopeAny,
			Keywords:   []string{"express shipping", "shipping"},
			QuestionEN: "is express shipping available",
			AnswerEN:   "Express shipping is available in Bangkok within 24 hours.",
			Priority:   5,
		},
		{
			ID:       "pet-only",
			Scope:    ScopePet,
			Keywords: []string{"microchip", "ไมโครชิป"},
			AnswerEN: "You can record the microchip number in the pet's documents tab.",
		},
	}
}

func newTestService(entries []Entry) (*Service, *fakeDraftStore) {
	loader := &fakeLoader{entries: entries}
	drafts := &fakeDraftStore{}
	return NewService(NewCache(loader, time.Minute, 50, nil), drafts, nil), drafts
}

func TestDynamicAnswerKeywordScoring(t *testing.T) {
	svc, _ := newTestService(dynamicEntries())
	ctx := context.Background()

	// Phrase keyword outweighs the single-word entry even with lower list order.
	got := svc.DynamicAnswer(ctx, "do you have express shipping", types.LangEN, false)
	if got != "Express shipping is available in Bangkok within 24 hours." {
		t.Fatalf("phrase keyword should win: %q", got)
	}

	// Single keyword tie resolves by priority.
	got = svc.DynamicAnswer(ctx, "shipping options please", types.LangEN, false)
	if got != "Express shipping is available in Bangkok within 24 hours." {
		t.Fatalf("priority should break the tie: %q", got)
	}
}

func TestDynamicAnswerScope(t *testing.T) {
	svc, _ := newTestService(dynamicEntries())
	ctx := context.Background()

	if got := svc.DynamicAnswer(ctx, "where to put the microchip number", types.LangEN, false); got != "" {
		t.Fatalf("pet-scoped entry served without pet context: %q", got)
	}
	if got := svc.DynamicAnswer(ctx, "where to put the microchip number", types.LangEN, true); got == "" {
		t.Fatal("pet-scoped entry missing with pet context")
	}
}

func TestDynamicAnswerVectorFallback(t *testing.T) {
	entries := []Entry{{
		ID:         "grooming",
		Scope:      ScopeAny,
		QuestionEN: "how often should i groom a golden retriever coat",
		Keywords:   []string{"grooming"},
		AnswerEN:   "Brush a golden retriever three times a week.",
	}}
	svc, _ := newTestService(entries)

	// No keyword hit ("groom" != "grooming" on word boundaries), but the
	// question text is close enough for the vector index.
	got := svc.DynamicAnswer(context.Background(), "how often should i groom a golden retriever", types.LangEN, false)
	if got != "Brush a golden retriever three times a week." {
		t.Fatalf("vector fallback failed: %q", got)
	}
}

func TestDynamicAnswerIdempotent(t *testing.T) {
	svc, _ := newTestService(dynamicEntries())
	ctx := context.Background()
	a := svc.DynamicAnswer(ctx, "shipping options", types.LangEN, false)
	b := svc.DynamicAnswer(ctx, "shipping options", types.LangEN, false)
	if a != b {
		t.Fatalf("DynamicAnswer not idempotent: %q vs %q", a, b)
	}
}

func TestIsGeneralizable(t *testing.T) {
	longAnswer := "Dogs generally benefit from twice-daily feeding with portion sizes scaled to weight."
	cases := []struct {
		name   string
		query  string
		answer string
		want   bool
	}{
		{"reusable fact", "how often should adult dogs eat", longAnswer, true},
		{"pet specific", "is my dog overweight", longAnswer, false},
		{"thai pet specific", "หมาของฉันอ้วนไหม", longAnswer, false},
		{"bare name lookup", "Apollo", longAnswer, false},
		{"url in answer", "where to buy", "See https://example.com for details and pricing info.", false},
		{"uuid in query", "status of 123e4567-e89b-12d3-a456-426614174000 please", longAnswer, false},
		{"answer too short", "how often should dogs eat", "Twice.", false},
		{"query too short", "eat?", longAnswer, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsGeneralizable(tc.query, tc.answer, 2); got != tc.want {
				t.Errorf("IsGeneralizable(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func TestCaptureDraftRoundTrip(t *testing.T) {
	loader := &fakeLoader{}
	drafts := &fakeDraftStore{}
	cache := NewCache(loader, time.Minute, 50, nil)
	svc := NewService(cache, drafts, nil)
	ctx := context.Background()

	query := "how often should adult dogs eat every day"
	answer := "Adult dogs do best on two measured meals a day, morning and evening."
	svc.CaptureDraft(ctx, query, answer, types.LangEN, false)

	drafts.mu.Lock()
	if len(drafts.drafts) != 1 {
		drafts.mu.Unlock()
		t.Fatal("draft not captured")
	}
	captured := drafts.drafts[0]
	drafts.mu.Unlock()

	if captured.Status != StatusDraft {
		t.Fatalf("captured status = %s, want draft", captured.Status)
	}
	// Drafts are not served.
	if got := svc.DynamicAnswer(ctx, query, types.LangEN, false); got != "" {
		t.Fatalf("draft should not be served: %q", got)
	}

	// Simulate curation: approve + activate, then force a reload.
	captured.Status = StatusApproved
	captured.IsActive = true
	loader.set([]Entry{captured})
	cache.Invalidate()

	if got := svc.DynamicAnswer(ctx, query, types.LangEN, false); got != answer {
		t.Fatalf("approved entry not retrievable: %q", got)
	}
}

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.vec, f.err
}

func TestCaptureDraftEmbedding(t *testing.T) {
	query := "how often should adult dogs eat every day"
	answer := "Adult dogs do best on two measured meals a day, morning and evening."

	t.Run("attached when embedder set", func(t *testing.T) {
		drafts := &fakeDraftStore{}
		svc := NewService(NewCache(&fakeLoader{}, time.Minute, 50, nil), drafts, &fakeEmbedder{vec: []float32{0.1, 0.2}})
		svc.CaptureDraft(context.Background(), query, answer, types.LangEN, false)

		drafts.mu.Lock()
		defer drafts.mu.Unlock()
		if len(drafts.drafts) != 1 || len(drafts.drafts[0].Embedding) != 2 {
			t.Fatalf("embedding not attached: %+v", drafts.drafts)
		}
	})

	t.Run("embedder failure still stores the draft", func(t *testing.T) {
		drafts := &fakeDraftStore{}
		svc := NewService(NewCache(&fakeLoader{}, time.Minute, 50, nil), drafts, &fakeEmbedder{err: context.DeadlineExceeded})
		svc.CaptureDraft(context.Background(), query, answer, types.LangEN, false)

		drafts.mu.Lock()
		defer drafts.mu.Unlock()
		if len(drafts.drafts) != 1 {
			t.Fatal("draft lost on embedder failure")
		}
		if drafts.drafts[0].Embedding != nil {
			t.Fatal("failed embedding should stay nil")
		}
	})
}

func TestCaptureDraftFiltersNonGeneralizable(t *testing.T) {
	svc, drafts := newTestService(nil)
	svc.CaptureDraft(context.Background(), "Apollo", "A short answer about that one pet named Apollo.", types.LangEN, false)
	drafts.mu.Lock()
	defer drafts.mu.Unlock()
	if len(drafts.drafts) != 0 {
		t.Fatal("non-generalizable pair should not be captured")
	}
}
