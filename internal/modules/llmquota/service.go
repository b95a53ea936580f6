package llmquota

import "context"

// Service guards model calls behind a per-owner monthly allowance.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Consume deducts one call from the owner's monthly allowance. An owner
// without a quota row is initialised and charged in the same call.
// Returns ErrQuotaExhausted when the month's allowance is spent.
func (s *Service) Consume(ctx context.Context, ownerID string) error {
	err := s.store.Consume(ctx, ownerID)
	if err != ErrQuotaExhausted {
		return err
	}

	// Row may be missing: create it, then retry the deduction once.
	if initErr := s.store.EnsureOwner(ctx, ownerID); initErr != nil {
		return initErr
	}
	return s.store.Consume(ctx, ownerID)
}
