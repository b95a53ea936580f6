// README: Pulls candidate entity names and search terms out of free text.
package resolver

import (
	"strings"

	"petree/internal/textmatch"
)

// extractSearchTerm strips search verbs and filler from a query and returns
// what is left, or "" when stripping found nothing to remove or removed
// everything. "find my dog Apollo" yields "apollo".
func extractSearchTerm(text string) string {
	stripped := textmatch.StripTokens(text, fillerTokens)
	stripped = strings.Trim(stripped, " ?!.,")
	if stripped == text || len([]rune(stripped)) < 2 {
		return ""
	}
	return stripped
}

// partnerMarkers precede the partner name in a breeding request:
// "breed Apollo with Luna", "ผสม อพอลโล กับ ลูน่า".
var partnerMarkers = []string{" with ", " and ", " x ", " กับ "}

// extractBreedingPair splits a breeding query into the two pet names.
// Either side may come back empty when the phrasing has no marker or the
// active-pet side is implied ("breed with Luna").
func extractBreedingPair(text string) (first, second string) {
	for _, marker := range partnerMarkers {
		idx := strings.Index(text, marker)
		if idx < 0 {
			continue
		}
		first = cleanName(text[:idx])
		second = cleanName(text[idx+len(marker):])
		return first, second
	}
	return "", ""
}

// cleanName drops the verbs around a name fragment and keeps the remainder
// only if it still looks like a name.
func cleanName(fragment string) string {
	fragment = textmatch.StripTokens(fragment, breedingVerbKeywords)
	fragment = textmatch.StripTokens(fragment, fillerTokens)
	fragment = strings.Trim(fragment, " ?!.,")
	if !LooksLikePetName(fragment) {
		return ""
	}
	return fragment
}
