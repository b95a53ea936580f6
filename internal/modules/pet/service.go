// README: Pet service; name matching and family-tree assembly over the store.
package pet

import (
	"context"
	"log"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"petree/internal/types"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// registrationNoPattern matches registry-style identifiers such as
// "TH-2023-00187" or "KCT84112" so they can be looked up exactly.
var registrationNoPattern = regexp.MustCompile(`\b[A-Za-z]{2,4}-?\d{2,4}-?\d{2,6}\b`)

func (s *Service) Get(ctx context.Context, id types.ID) (*Pet, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Search(ctx context.Context, term string, limit int) ([]Pet, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrBadRequest
	}
	return s.store.SearchByName(ctx, term, limit)
}

// FindBestForText tries to locate a known pet referenced inside a free-text
// utterance. Registration numbers are tried first (unique when present), then
// name containment with the longest candidate name winning. Returns nil when
// nothing plausible is found; lookup errors degrade to nil as well.
func (s *Service) FindBestForText(ctx context.Context, utterance string) *Pet {
	if regNo := registrationNoPattern.FindString(utterance); regNo != "" {
		p, err := s.store.GetByRegistrationNo(ctx, strings.ToUpper(regNo))
		if err == nil {
			return p
		}
		if err != ErrNotFound {
			log.Printf("pet: registration lookup failed: %v", err)
		}
	}

	candidates, err := s.store.CandidatesForText(ctx, utterance, 10)
	if err != nil {
		log.Printf("pet: candidate lookup failed: %v", err)
		return nil
	}
	best := BestNameMatch(utterance, candidates)
	if best == nil {
		return nil
	}
	return best
}

// BestNameMatch picks the candidate whose name is the longest case-insensitive
// substring of the utterance. Pure; exported for tests.
func BestNameMatch(utterance string, candidates []Pet) *Pet {
	lower := strings.ToLower(utterance)
	var best *Pet
	for i := range candidates {
		name := strings.ToLower(candidates[i].Name)
		if len(name) < 2 || !strings.Contains(lower, name) {
			continue
		}
		if best == nil || len(name) > len(best.Name) {
			best = &candidates[i]
		}
	}
	return best
}

// FamilyTree assembles the pet plus two ancestor generations. Father and
// mother are fetched in parallel; grandparents depend on the parents having
// resolved. Missing or failing ancestor lookups leave nil slots rather than
// failing the tree.
func (s *Service) FamilyTree(ctx context.Context, p *Pet) (*FamilyTree, error) {
	tree := &FamilyTree{
		Self:        p,
		Grandfather: map[string]*Pet{},
		Grandmother: map[string]*Pet{},
	}

	g, gctx := errgroup.WithContext(ctx)
	if p.FatherID != nil {
		g.Go(func() error {
			tree.Father = s.fetchAncestor(gctx, *p.FatherID)
			return nil
		})
	}
	if p.MotherID != nil {
		g.Go(func() error {
			tree.Mother = s.fetchAncestor(gctx, *p.MotherID)
			return nil
		})
	}
	_ = g.Wait()

	for side, parent := range map[string]*Pet{"father": tree.Father, "mother": tree.Mother} {
		if parent == nil {
			continue
		}
		if parent.FatherID != nil {
			tree.Grandfather[side] = s.fetchAncestor(ctx, *parent.FatherID)
		}
		if parent.MotherID != nil {
			tree.Grandmother[side] = s.fetchAncestor(ctx, *parent.MotherID)
		}
	}
	return tree, nil
}

func (s *Service) fetchAncestor(ctx context.Context, id types.ID) *Pet {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		if err != ErrNotFound {
			log.Printf("pet: ancestor %s lookup failed: %v", id, err)
		}
		return nil
	}
	return p
}

func (s *Service) Siblings(ctx context.Context, p *Pet) ([]Pet, error) {
	return s.store.Siblings(ctx, p)
}

func (s *Service) Offspring(ctx context.Context, id types.ID) ([]Pet, error) {
	return s.store.Offspring(ctx, id)
}

func (s *Service) ForSale(ctx context.Context, species Species, limit int) ([]Pet, error) {
	return s.store.ForSale(ctx, species, limit)
}

func (s *Service) BreedingCandidates(ctx context.Context, p *Pet, limit int) ([]Pet, error) {
	return s.store.BreedingCandidates(ctx, p, limit)
}
