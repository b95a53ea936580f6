// README: Per-conversation state: active pet focus and the pending-action slot.
package resolver

import (
	"petree/internal/modules/pet"
	"petree/internal/textmatch"
	"petree/internal/types"
)

// PendingAction is a single outstanding offer awaiting a yes/no. At most one
// exists per conversation; a new offer silently overwrites the old one.
type PendingAction struct {
	Action         Action   `json:"action"`
	RelatedPetID   types.ID `json:"related_pet_id,omitempty"`
	RelatedPetName string   `json:"related_pet_name,omitempty"`
	Topic          string   `json:"topic,omitempty"`
}

// Conversation is the mutable state owned by one chat session. It is created
// empty, mutated by the routers after each turn, and never shared across
// sessions.
type Conversation struct {
	OwnerID   types.ID       `json:"owner_id,omitempty"`
	ActivePet *pet.Ref       `json:"active_pet,omitempty"`
	Pending   *PendingAction `json:"pending,omitempty"`
}

// NewConversation returns an empty conversation for a fresh session.
func NewConversation(ownerID types.ID) *Conversation {
	return &Conversation{OwnerID: ownerID}
}

// SetPending arms the slot, overwriting unconditionally.
func (c *Conversation) SetPending(p *PendingAction) {
	c.Pending = p
}

// HasPending reports whether an offer is armed.
func (c *Conversation) HasPending() bool {
	return c.Pending != nil
}

// PendingOutcome is the result of consuming the pending slot.
type PendingOutcome struct {
	Confirmed bool
	Action    *PendingAction
}

// ConsumePending interprets the utterance against the armed slot.
// Consumption is exactly-once: a recognizable yes or no always clears the
// slot. An ambiguous reply returns nil and leaves the slot armed so normal
// classification proceeds without discarding the offer.
func (c *Conversation) ConsumePending(text string) *PendingOutcome {
	if c.Pending == nil {
		return nil
	}
	// Negation first: Thai "ไม่ใช่" contains the affirmative token "ใช่".
	switch {
	case isNegative(text):
		c.Pending = nil
		return &PendingOutcome{Confirmed: false}
	case isAffirmative(text):
		out := &PendingOutcome{Confirmed: true, Action: c.Pending}
		c.Pending = nil
		return out
	default:
		return nil
	}
}

// PromotePet focuses the conversation on a single found pet.
func (c *Conversation) PromotePet(p *pet.Pet) {
	c.ActivePet = &pet.Ref{ID: p.ID, Name: p.Name}
}

// ClearPet drops the active focus.
func (c *Conversation) ClearPet() {
	c.ActivePet = nil
}

// isAffirmative accepts short yes-like replies. Longer sentences are treated
// as ambiguous so a follow-up question does not accidentally fire an action.
func isAffirmative(text string) bool {
	if len([]rune(text)) > 24 {
		return false
	}
	return textmatch.MatchesAny(text, affirmativeKeywords)
}

func isNegative(text string) bool {
	if len([]rune(text)) > 24 {
		return false
	}
	return textmatch.MatchesAny(text, negativeKeywords)
}

// wantsContextClear reports whether the utterance asks to drop the current
// focus ("start over", "เริ่มใหม่").
func wantsContextClear(text string) bool {
	return textmatch.MatchesAny(text, clearContextKeywords)
}

// stripClearTokens removes clear-context phrases so the remainder can be
// classified on its own ("start over and find Luna" -> "and find luna").
func stripClearTokens(text string) string {
	return textmatch.StripTokens(text, clearContextKeywords)
}
