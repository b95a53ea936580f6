// README: Pet record and family-tree shapes; the resolver reads these, never writes.
package pet

import (
	"errors"
	"time"

	"petree/internal/types"
)

var (
	ErrNotFound   = errors.New("pet not found")
	ErrBadRequest = errors.New("bad request")
)

type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Pet is the canonical read model. Name is not guaranteed unique;
// RegistrationNo is expected unique when present.
type Pet struct {
	ID             types.ID
	Name           string
	RegistrationNo string
	Species        Species
	Breed          string
	Gender         Gender
	BirthDate      *time.Time
	Color          string
	Location       string
	OwnerID        types.ID
	OwnerName      string
	ForSale        bool
	PriceTHB       *int64
	FatherID       *types.ID
	MotherID       *types.ID
}

// Ref is the lightweight reference threaded through conversation state.
type Ref struct {
	ID   types.ID `json:"id"`
	Name string   `json:"name"`
}

// FamilyTree holds a pet plus up to two generations of ancestors.
// Missing ancestors are nil; a partial tree is a valid result.
type FamilyTree struct {
	Self        *Pet
	Father      *Pet
	Mother      *Pet
	Grandfather map[string]*Pet // keyed "father"/"mother" side
	Grandmother map[string]*Pet
}

// Age returns the pet's age in whole years at the given time, or -1 when the
// birth date is unknown.
func (p *Pet) Age(now time.Time) int {
	if p.BirthDate == nil {
		return -1
	}
	years := now.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return -1
	}
	return years
}
