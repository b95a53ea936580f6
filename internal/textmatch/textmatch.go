// README: Text normalization, language detection, and keyword containment tests.
package textmatch

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize trims, collapses internal whitespace, and lowercases the input,
// and reports whether the text contains Thai script.
func Normalize(text string) (clean string, isThai bool) {
	clean = strings.ToLower(whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " "))
	return clean, ContainsThai(clean)
}

// ContainsThai reports whether any rune falls in the Thai Unicode block.
func ContainsThai(text string) bool {
	for _, r := range text {
		if r >= 0x0E00 && r <= 0x0E7F {
			return true
		}
	}
	return false
}

// Matches reports whether keyword occurs in text. Phrase keywords (containing
// a space) match by substring. Single ASCII-word keywords match on word
// boundaries so "cat" does not match inside "category". All other keywords,
// including single Thai tokens, match by raw substring; Thai has no
// whitespace word boundaries, so partial-word overlaps are a known
// limitation there.
func Matches(text, keyword string) bool {
	if keyword == "" {
		return false
	}
	kw := strings.ToLower(keyword)
	if strings.Contains(kw, " ") {
		return strings.Contains(strings.ToLower(text), kw)
	}
	if isASCIIWord(kw) {
		return containsWord(strings.ToLower(text), kw)
	}
	return strings.Contains(strings.ToLower(text), kw)
}

// MatchesAny reports whether any keyword in the list matches.
func MatchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if Matches(text, kw) {
			return true
		}
	}
	return false
}

// StripTokens removes every occurrence of the given tokens from text and
// re-collapses whitespace. Used to peel intent/filler words off an utterance
// before using the remainder as a search term.
func StripTokens(text string, tokens []string) string {
	out := strings.ToLower(text)
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if tok == "" {
			continue
		}
		if isASCIIWord(tok) {
			out = removeWord(out, tok)
		} else {
			out = strings.ReplaceAll(out, tok, " ")
		}
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(out, " "))
}

// HasLetter reports whether text contains at least one Latin or Thai letter.
func HasLetter(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func isASCIIWord(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return s != ""
}

// containsWord tests whole-word containment of an ASCII word.
func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordRune(rune(text[start-1]))
		afterOK := end == len(text) || !isWordRune(rune(text[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(text) {
			return false
		}
	}
}

func removeWord(text, word string) string {
	var b strings.Builder
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			b.WriteString(text[idx:])
			break
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordRune(rune(text[start-1]))
		afterOK := end == len(text) || !isWordRune(rune(text[end]))
		if beforeOK && afterOK {
			b.WriteString(text[idx:start])
			b.WriteString(" ")
		} else {
			b.WriteString(text[idx:end])
		}
		idx = end
		if idx >= len(text) {
			break
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
