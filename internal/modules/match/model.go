// README: Breeding-match aggregate and status definitions.
package match

import (
	"errors"
	"time"

	"petree/internal/types"
)

var (
	ErrNotFound     = errors.New("match not found")
	ErrInvalidState = errors.New("invalid state transition")
)

type Status string

const (
	StatusRequested Status = "requested"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Match is a scheduled breeding appointment between two pets.
type Match struct {
	ID          types.ID
	SireID      types.ID
	DamID       types.ID
	SireName    string
	DamName     string
	Status      Status
	ScheduledAt *time.Time
	CreatedAt   time.Time
}

// Summary is the shape behind the "how are my matches going" intent.
type Summary struct {
	Upcoming  int
	Completed int
	Next      *Match
}

// Candidate is a ranked breeding partner suggestion.
type Candidate struct {
	PetID      types.ID
	Name       string
	Breed      string
	Location   string
	DistanceKm float64
}

// AllowedTransitions represents the match state flow as code.
var AllowedTransitions = map[Status][]Status{
	StatusRequested: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
