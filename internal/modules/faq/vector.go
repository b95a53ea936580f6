// README: Bag-of-words TF-IDF index over FAQ questions, for fuzzy lookup.
package faq

import (
	"math"
	"strings"
)

// MinSimilarity is the cosine threshold below which no answer is returned.
const MinSimilarity = 0.35

// vectorIndex is a small TF-IDF index built per lookup batch. Entry counts
// are bounded by the cache cap, so rebuilding is cheap.
type vectorIndex struct {
	docs []map[string]float64 // term -> tf weight, per entry
	idf  map[string]float64
}

func buildIndex(entries []Entry) *vectorIndex {
	idx := &vectorIndex{idf: make(map[string]float64)}
	df := make(map[string]int)

	for i := range entries {
		terms := entryTerms(&entries[i])
		tf := make(map[string]float64, len(terms))
		seen := make(map[string]bool, len(terms))
		for _, t := range terms {
			tf[t]++
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
		idx.docs = append(idx.docs, tf)
	}

	n := float64(len(entries))
	for term, count := range df {
		idx.idf[term] = math.Log(1 + n/float64(count))
	}
	return idx
}

// bestMatch returns the index and similarity of the closest entry to the
// query, or (-1, 0) when nothing clears the threshold.
func (idx *vectorIndex) bestMatch(query string) (int, float64) {
	qtf := make(map[string]float64)
	for _, t := range tokenize(query) {
		qtf[t]++
	}
	if len(qtf) == 0 {
		return -1, 0
	}

	best, bestSim := -1, 0.0
	for i, doc := range idx.docs {
		sim := idx.cosine(qtf, doc)
		if sim > bestSim {
			best, bestSim = i, sim
		}
	}
	if bestSim < MinSimilarity {
		return -1, 0
	}
	return best, bestSim
}

func (idx *vectorIndex) cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for term, wa := range a {
		w := wa * idx.idfOf(term)
		normA += w * w
		if wb, ok := b[term]; ok {
			dot += w * wb * idx.idfOf(term)
		}
	}
	for term, wb := range b {
		w := wb * idx.idfOf(term)
		normB += w * w
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func (idx *vectorIndex) idfOf(term string) float64 {
	if v, ok := idx.idf[term]; ok {
		return v
	}
	return 1.0
}

func entryTerms(e *Entry) []string {
	var terms []string
	terms = append(terms, tokenize(e.QuestionEN)...)
	terms = append(terms, tokenize(e.QuestionTH)...)
	for _, kw := range e.Keywords {
		terms = append(terms, tokenize(kw)...)
	}
	return terms
}

// tokenize splits on whitespace and lowercases. Thai runs carry no word
// boundaries, so each Thai chunk additionally contributes overlapping
// character bigrams to give partial-phrase queries some surface to match.
func tokenize(text string) []string {
	var out []string
	for _, field := range strings.Fields(strings.ToLower(text)) {
		field = strings.Trim(field, `.,!?;:"'()[]`)
		if field == "" {
			continue
		}
		out = append(out, field)
		if isThaiChunk(field) {
			out = append(out, thaiBigrams(field)...)
		}
	}
	return out
}

func isThaiChunk(s string) bool {
	for _, r := range s {
		if r >= 0x0E00 && r <= 0x0E7F {
			return true
		}
	}
	return false
}

func thaiBigrams(s string) []string {
	runes := []rune(s)
	if len(runes) < 3 {
		return nil
	}
	out := make([]string, 0, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		out = append(out, string(runes[i:i+2]))
	}
	return out
}
