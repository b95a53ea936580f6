// README: Match service; summaries and distance-ranked breeding candidates.
package match

import (
	"context"
	"fmt"
	"log"
	"time"

	"petree/internal/geo"
	"petree/internal/modules/pet"
	"petree/internal/types"
)

// Geocoder resolves an owner location string to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (types.Point, error)
}

type Service struct {
	store    *Store
	pets     *pet.Service
	geocoder Geocoder
}

// NewService creates a Service. geocoder may be nil; candidates are then
// returned unranked.
func NewService(store *Store, pets *pet.Service, geocoder Geocoder) *Service {
	return &Service{store: store, pets: pets, geocoder: geocoder}
}

// SummaryForOwner aggregates the owner's matches into the shape the
// "how are my breeding matches going" intent renders.
func (s *Service) SummaryForOwner(ctx context.Context, ownerID types.ID) (*Summary, error) {
	matches, err := s.store.ByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return Summarize(matches, time.Now()), nil
}

// SummaryText is SummaryForOwner rendered in the caller's language.
func (s *Service) SummaryText(ctx context.Context, ownerID types.ID, lang types.Lang) (string, error) {
	sum, err := s.SummaryForOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return RenderSummary(sum, lang), nil
}

// Summarize folds match records into a Summary. Pure; exported for tests.
func Summarize(matches []Match, now time.Time) *Summary {
	sum := &Summary{}
	for i := range matches {
		m := &matches[i]
		switch m.Status {
		case StatusCompleted:
			sum.Completed++
		case StatusRequested, StatusConfirmed:
			if m.ScheduledAt != nil && m.ScheduledAt.Before(now) {
				continue
			}
			sum.Upcoming++
			if sum.Next == nil {
				sum.Next = m
				continue
			}
			if m.ScheduledAt != nil &&
				(sum.Next.ScheduledAt == nil || m.ScheduledAt.Before(*sum.Next.ScheduledAt)) {
				sum.Next = m
			}
		}
	}
	return sum
}

// RenderSummary formats a Summary in the requested language.
func RenderSummary(sum *Summary, lang types.Lang) string {
	if sum.Upcoming == 0 && sum.Completed == 0 {
		if lang == types.LangTH {
			return "ยังไม่มีนัดผสมพันธุ์ในระบบค่ะ"
		}
		return "You have no breeding matches on record yet."
	}
	var next string
	if sum.Next != nil && sum.Next.ScheduledAt != nil {
		next = sum.Next.ScheduledAt.Format("2 Jan 2006")
	}
	if lang == types.LangTH {
		out := fmt.Sprintf("มีนัดผสมพันธุ์ที่กำลังจะถึง %d นัด และเสร็จสิ้นแล้ว %d นัด", sum.Upcoming, sum.Completed)
		if next != "" {
			out += fmt.Sprintf(" นัดถัดไป: %s กับ %s วันที่ %s", sum.Next.SireName, sum.Next.DamName, next)
		}
		return out
	}
	out := fmt.Sprintf("You have %d upcoming breeding matches and %d completed.", sum.Upcoming, sum.Completed)
	if next != "" {
		out += fmt.Sprintf(" Next: %s with %s on %s.", sum.Next.SireName, sum.Next.DamName, next)
	}
	return out
}

// ForPet returns the matches a pet appears in, as sire or dam.
func (s *Service) ForPet(ctx context.Context, petID types.ID) ([]Match, error) {
	return s.store.ByPet(ctx, petID)
}

// Transition moves a match through the status flow, rejecting any step the
// flow does not allow. The store's compare-and-set catches concurrent moves.
func (s *Service) Transition(ctx context.Context, id types.ID, to Status) error {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(m.Status, to) {
		return ErrInvalidState
	}
	return s.store.UpdateStatus(ctx, id, m.Status, to)
}

// Candidates suggests breeding partners for a pet: opposite gender, same
// breed, ranked by distance between owner locations when geocoding is
// available. Geocode failures leave a candidate unranked at the end of the
// list rather than dropping it.
func (s *Service) Candidates(ctx context.Context, p *pet.Pet, limit int) ([]Candidate, error) {
	pets, err := s.pets.BreedingCandidates(ctx, p, limit)
	if err != nil {
		return nil, err
	}

	const unranked = 1 << 20
	out := make([]Candidate, 0, len(pets))
	var origin *types.Point
	if s.geocoder != nil && p.Location != "" {
		if pt, err := s.geocoder.Geocode(ctx, p.Location); err == nil {
			origin = &pt
		} else {
			log.Printf("match: geocode origin %q failed: %v", p.Location, err)
		}
	}

	for i := range pets {
		c := Candidate{
			PetID:      pets[i].ID,
			Name:       pets[i].Name,
			Breed:      pets[i].Breed,
			Location:   pets[i].Location,
			DistanceKm: unranked,
		}
		if origin != nil && pets[i].Location != "" {
			if pt, err := s.geocoder.Geocode(ctx, pets[i].Location); err == nil {
				c.DistanceKm = geo.HaversineKm(*origin, pt)
			}
		}
		out = append(out, c)
	}

	geo.SortByDistance(out, func(c Candidate) float64 { return c.DistanceKm })
	for i := range out {
		if out[i].DistanceKm >= unranked {
			out[i].DistanceKm = -1
		}
	}
	return out, nil
}
