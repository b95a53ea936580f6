package faq

import "testing"

func sampleEntries() []Entry {
	return []Entry{
		{
			ID:         "gestation",
			QuestionEN: "how long does dog pregnancy last",
			Keywords:   []string{"pregnancy", "gestation"},
		},
		{
			ID:         "diet",
			QuestionEN: "what should a pregnant dog eat every day",
			Keywords:   []string{"diet", "food"},
		},
		{
			ID:         "register",
			QuestionEN: "how do i register a new puppy on the platform",
			QuestionTH: "ลงทะเบียนลูกสุนัขอย่างไร",
			Keywords:   []string{"register"},
		},
	}
}

func TestVectorBestMatch(t *testing.T) {
	idx := buildIndex(sampleEntries())

	cases := []struct {
		name   string
		query  string
		wantID string // "" = below threshold
	}{
		{"close paraphrase", "how long is dog pregnancy", "gestation"},
		{"diet paraphrase", "what food should my pregnant dog eat", "diet"},
		{"thai overlap", "ลงทะเบียนลูกสุนัข", "register"},
		{"unrelated", "quarterly tax filing deadline", ""},
		{"empty query", "", ""},
	}
	entries := sampleEntries()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			i, sim := idx.bestMatch(tc.query)
			if tc.wantID == "" {
				if i >= 0 {
					t.Fatalf("bestMatch(%q) = %s (sim %.2f), want none", tc.query, entries[i].ID, sim)
				}
				return
			}
			if i < 0 || string(entries[i].ID) != tc.wantID {
				t.Fatalf("bestMatch(%q) = %d (sim %.2f), want %s", tc.query, i, sim, tc.wantID)
			}
		})
	}
}

func TestTokenizeThaiBigrams(t *testing.T) {
	toks := tokenize("ราคาตลาด today")
	var hasBigram, hasWhole, hasEnglish bool
	for _, tok := range toks {
		switch tok {
		case "ราคาตลาด":
			hasWhole = true
		case "รา": // first character bigram of the thai chunk
			hasBigram = true
		case "today":
			hasEnglish = true
		}
	}
	if !hasWhole || !hasBigram || !hasEnglish {
		t.Fatalf("tokenize missing expected tokens: whole=%v bigram=%v english=%v (%v)",
			hasWhole, hasBigram, hasEnglish, toks)
	}
}
