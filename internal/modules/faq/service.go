// README: FAQ service; static table, dynamic cache lookup, and draft capture.
package faq

import (
	"context"
	"log"
	"regexp"
	"strings"

	"petree/internal/textmatch"
	"petree/internal/types"
)

// DraftWriter is the persistence side of draft capture; *Store satisfies it.
type DraftWriter interface {
	InsertDraft(ctx context.Context, e Entry) error
}

// Embedder vectorizes captured draft questions; *ai.GeminiProvider satisfies
// it. May be nil, in which case drafts are stored without an embedding.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Service struct {
	cache    *Cache
	drafts   DraftWriter
	embedder Embedder
}

func NewService(cache *Cache, drafts DraftWriter, embedder Embedder) *Service {
	return &Service{cache: cache, drafts: drafts, embedder: embedder}
}

// StaticAnswer consults the compiled-in table only.
func (s *Service) StaticAnswer(text string, lang types.Lang, hasPetContext bool) string {
	return StaticAnswer(text, lang, hasPetContext)
}

// DynamicAnswer searches the cached dynamic entries: weighted keyword scoring
// first, TF-IDF vector fallback second. Returns "" when nothing qualifies.
func (s *Service) DynamicAnswer(ctx context.Context, text string, lang types.Lang, hasPetContext bool) string {
	entries := s.cache.Entries(ctx)
	if len(entries) == 0 {
		return ""
	}

	eligible := entries[:0:0]
	for i := range entries {
		if entries[i].ScopeAllows(hasPetContext) && !textmatch.MatchesAny(text, entries[i].Exclude) {
			eligible = append(eligible, entries[i])
		}
	}
	if len(eligible) == 0 {
		return ""
	}

	if e := bestKeywordEntry(text, eligible); e != nil {
		return e.Answer(lang)
	}

	idx := buildIndex(eligible)
	if i, _ := idx.bestMatch(text); i >= 0 {
		return eligible[i].Answer(lang)
	}
	return ""
}

// bestKeywordEntry scores entries by keyword matches: phrase keywords count
// double, ties break on stored priority. Returns nil when nothing matched.
func bestKeywordEntry(text string, entries []Entry) *Entry {
	var best *Entry
	bestScore := 0
	for i := range entries {
		score := 0
		for _, kw := range entries[i].Keywords {
			if !textmatch.Matches(text, kw) {
				continue
			}
			if strings.Contains(kw, " ") {
				score += 2
			} else {
				score++
			}
		}
		if score == 0 {
			continue
		}
		if score > bestScore || (score == bestScore && best != nil && entries[i].Priority > best.Priority) {
			best = &entries[i]
			bestScore = score
		}
	}
	return best
}

var (
	urlPattern  = regexp.MustCompile(`https?://|www\.`)
	uuidPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

	// Phrasings that mark a question as about one specific pet rather than a
	// reusable fact.
	petSpecificMarkers = []string{
		"my dog", "my cat", "my pet", "my puppy", "my kitten", "this pet",
		"หมาของฉัน", "แมวของฉัน", "สัตว์เลี้ยงของฉัน", "ตัวนี้", "น้องของฉัน",
	}
)

// IsGeneralizable filters query/answer pairs before draft capture: the pair
// must read like a reusable fact, not a lookup about one pet. Pure; exported
// for tests.
func IsGeneralizable(query, answer string, wordLimit int) bool {
	q := strings.TrimSpace(query)
	a := strings.TrimSpace(answer)
	if len(q) < 8 || len(a) < 20 {
		return false
	}
	if len(a) > 1200 {
		return false
	}
	combined := q + " " + a
	if urlPattern.MatchString(combined) || uuidPattern.MatchString(combined) {
		return false
	}
	lower := strings.ToLower(q)
	for _, marker := range petSpecificMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	// A bare name lookup has almost no question words in it.
	if wordLimit > 0 && len(strings.Fields(q)) <= wordLimit && !textmatch.ContainsThai(q) {
		return false
	}
	return true
}

// CaptureDraft stores a novel LLM answer as a draft entry for curation.
// Callers fire it on a detached goroutine; it never panics and only logs
// failures; the primary response must not depend on it.
func (s *Service) CaptureDraft(ctx context.Context, query, answer string, lang types.Lang, hadPetContext bool) {
	if !IsGeneralizable(query, answer, 2) {
		return
	}
	e := Entry{
		Scope:    ScopeAny,
		Keywords: draftKeywords(query),
		Status:   StatusDraft,
	}
	if hadPetContext {
		e.Scope = ScopePet
	}
	if lang == types.LangTH {
		e.QuestionTH = query
		e.AnswerTH = answer
	} else {
		e.QuestionEN = query
		e.AnswerEN = answer
	}
	if s.embedder != nil {
		vec, err := s.embedder.Embed(ctx, query)
		if err != nil {
			log.Printf("faq: draft embedding failed: %v", err)
		} else {
			e.Embedding = vec
		}
	}
	if err := s.drafts.InsertDraft(ctx, e); err != nil {
		log.Printf("faq: draft capture failed: %v", err)
	}
}

// draftKeywords proposes seed keywords from the query's longer tokens;
// curators refine them on approval.
func draftKeywords(query string) []string {
	var out []string
	for _, tok := range tokenize(query) {
		if len([]rune(tok)) >= 4 && !isThaiChunk(tok) {
			out = append(out, tok)
		} else if isThaiChunk(tok) && len([]rune(tok)) >= 3 {
			out = append(out, tok)
		}
		if len(out) == 6 {
			break
		}
	}
	return out
}
