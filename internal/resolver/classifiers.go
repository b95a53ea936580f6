// README: Intent predicates; each is a pure function over normalized text.
package resolver

import (
	"regexp"
	"strings"

	"petree/internal/modules/pet"
	"petree/internal/textmatch"
)

func isGreeting(text string) bool {
	return textmatch.MatchesAny(text, greetingKeywords)
}

var laughterPattern = regexp.MustCompile(`^(?:(?:ha|he)+h?|5{3,}|lol|lmao)[!. ]*$`)

// isSmallTalk catches acknowledgments and chit-chat that deserve a friendly
// one-liner, not a search. The acknowledgment must be the whole utterance,
// give or take punctuation; "thanks, now find Luna" is a search command that
// happens to start politely.
func isSmallTalk(text string) bool {
	if laughterPattern.MatchString(text) {
		return true
	}
	trimmed := strings.Trim(text, " ?!.,")
	if len(strings.Fields(trimmed)) > 2 {
		for _, kw := range smallTalkKeywords {
			if trimmed == kw {
				return true
			}
		}
		return false
	}
	return textmatch.MatchesAny(trimmed, smallTalkKeywords)
}

// isRegistrationIntent requires a register verb AND a pet/ownership hint,
// and rejects registration-number phrasing: "what's the registration number"
// and "I want to register" share the word "registration".
func isRegistrationIntent(text string) bool {
	if textmatch.MatchesAny(text, regNumberHintKeywords) {
		return false
	}
	return textmatch.MatchesAny(text, registerVerbKeywords) &&
		textmatch.MatchesAny(text, petTargetKeywords)
}

func isMatchSummaryIntent(text string) bool {
	return textmatch.MatchesAny(text, matchSummaryKeywords)
}

func isForSaleIntent(text string) bool {
	return textmatch.MatchesAny(text, forSaleKeywords)
}

// forSaleSpecies picks the species a for-sale query is about; defaults to dog.
func forSaleSpecies(text string) pet.Species {
	if textmatch.MatchesAny(text, kittenKeywords) {
		return pet.SpeciesCat
	}
	return pet.SpeciesDog
}

func isMarketIntent(text string) bool {
	return textmatch.MatchesAny(text, marketKeywords)
}

func hasSearchVerb(text string) bool {
	return textmatch.MatchesAny(text, searchVerbKeywords)
}

func hasRelationIntent(text string) bool {
	return textmatch.MatchesAny(text, relationKeywords)
}

// Topic is the coarse pet-scoped classification behind the context shortcut.
// It is narrower than the full intent list: only topics with a direct view
// to open are represented.
type Topic string

const (
	TopicNone      Topic = ""
	TopicFamily    Topic = "family"
	TopicDocuments Topic = "documents"
	TopicSale      Topic = "sale"
	TopicOwner     Topic = "owner"
	TopicRegNumber Topic = "registration"
)

// detectTopic returns the first matching topic; order puts the most specific
// lists first so "registration number" does not fall into a generic bucket.
func detectTopic(text string) Topic {
	switch {
	case textmatch.MatchesAny(text, topicRegNumberKeywords):
		return TopicRegNumber
	case textmatch.MatchesAny(text, topicDocumentKeywords):
		return TopicDocuments
	case textmatch.MatchesAny(text, topicFamilyKeywords):
		return TopicFamily
	case textmatch.MatchesAny(text, topicSaleKeywords):
		return TopicSale
	case textmatch.MatchesAny(text, topicOwnerKeywords):
		return TopicOwner
	default:
		return TopicNone
	}
}

// shouldUseLLM gates the pet-scoped LLM call: utterances of three or more
// words, or any carrying a nuance topic (health, genetics, planning), go to
// the model; short field lookups stay on the deterministic table to save
// latency and cost.
func shouldUseLLM(text string) bool {
	return len(strings.Fields(text)) >= 3 || textmatch.MatchesAny(text, nuanceKeywords)
}

var numericOnlyPattern = regexp.MustCompile(`^[\d\s.,-]+$`)

// LooksLikePetName is a recall-oriented gate used when nothing else matched:
// false positives cost one fruitless search, so the rejections target only
// clear non-names.
func LooksLikePetName(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if len([]rune(text)) > 40 {
		return false
	}
	if numericOnlyPattern.MatchString(text) {
		return false
	}
	if !textmatch.HasLetter(text) {
		return false
	}
	if laughterPattern.MatchString(strings.ToLower(text)) {
		return false
	}
	if textmatch.MatchesAny(text, intentTokens) {
		return false
	}
	words := len(strings.Fields(text))
	return words >= 1 && words <= 3
}
