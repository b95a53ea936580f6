// README: FAQ entry shapes for the static table and the dynamic cache.
package faq

import (
	"errors"

	"petree/internal/types"
)

var ErrBadEntry = errors.New("bad faq entry")

// Scope restricts where an entry may answer: with a pet in focus, without
// one, or anywhere.
type Scope string

const (
	ScopeAny    Scope = "any"
	ScopeGlobal Scope = "global" // only when no pet context is active
	ScopePet    Scope = "pet"    // only when a pet context is active
)

// Status is the curation lifecycle of a dynamic entry. Only approved entries
// are ever served; drafts wait for human review.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusArchived Status = "archived"
)

// Entry is a dynamic knowledge-base row loaded from persistence.
type Entry struct {
	ID         types.ID
	Scope      Scope
	Keywords   []string
	Exclude    []string
	QuestionTH string
	QuestionEN string
	AnswerTH   string
	AnswerEN   string
	Priority   int
	Status     Status
	IsActive   bool

	// Embedding of the source question, attached to machine-proposed drafts
	// so the curation tooling can cluster near-duplicate questions. Not used
	// at lookup time.
	Embedding []float32
}

// Answer returns the entry's answer in the requested language, falling back
// to the other language when one side is missing.
func (e *Entry) Answer(lang types.Lang) string {
	if lang == types.LangTH {
		if e.AnswerTH != "" {
			return e.AnswerTH
		}
		return e.AnswerEN
	}
	if e.AnswerEN != "" {
		return e.AnswerEN
	}
	return e.AnswerTH
}

// ScopeAllows reports whether the entry may answer given the current
// pet-context state.
func (e *Entry) ScopeAllows(hasPetContext bool) bool {
	switch e.Scope {
	case ScopeGlobal:
		return !hasPetContext
	case ScopePet:
		return hasPetContext
	default:
		return true
	}
}
