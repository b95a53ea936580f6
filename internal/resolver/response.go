// README: Resolver response shapes consumed by the chat UI.
package resolver

import "petree/internal/modules/pet"

type ResponseType string

const (
	TypeText    ResponseType = "text"
	TypePetList ResponseType = "pet_list"
)

type ActionType string

const (
	ActionLink  ActionType = "link"
	ActionCopy  ActionType = "copy"
	ActionEvent ActionType = "event"
)

// Action describes a follow-up the UI may perform (navigation, clipboard
// copy, event dispatch). The resolver only describes actions, it never
// executes them.
type Action struct {
	Label   string     `json:"label"`
	Type    ActionType `json:"type"`
	Value   string     `json:"value"`
	Primary bool       `json:"primary,omitempty"`
}

// Response is the structured result of one resolved turn. Every turn
// produces one; "I don't know" is a valid terminal answer, not a failure.
type Response struct {
	Text    string       `json:"text"`
	Type    ResponseType `json:"type"`
	Data    []pet.Pet    `json:"data,omitempty"`
	Actions []Action     `json:"actions,omitempty"`
	Intent  string       `json:"intent,omitempty"`
	Query   string       `json:"query,omitempty"`
}

// Intent tags attached to responses.
const (
	IntentGreeting     = "greeting"
	IntentSmallTalk    = "smalltalk"
	IntentPending      = "pending"
	IntentContextClear = "context_clear"
	IntentShortcut     = "shortcut"
	IntentRegister     = "register"
	IntentMatchSummary = "match_summary"
	IntentSale         = "sale"
	IntentAnalysis     = "analysis"
	IntentSearch       = "search"
	IntentFaq          = "faq"
	IntentLLM          = "llm"
	IntentPet          = "pet"
)

func textResponse(text, intent string) Response {
	return Response{Text: text, Type: TypeText, Intent: intent}
}
