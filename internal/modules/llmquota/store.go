package llmquota

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles llm_quota persistence.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Consume atomically checks the monthly allowance and deducts one call.
// The counter lazily resets to MonthlyCalls when period is behind the
// current month. Returns ErrQuotaExhausted when 0 rows are updated
// (allowance spent or user absent).
func (s *Store) Consume(ctx context.Context, ownerID string) error {
	month := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE llm_quota SET
			calls_remaining = CASE WHEN period != $1 THEN $2 - 1 ELSE calls_remaining - 1 END,
			period = $1
		WHERE owner_id = $3 AND (period < $1 OR calls_remaining > 0)
	`, month, MonthlyCalls, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// EnsureOwner inserts a fresh llm_quota row with the full allowance,
// silently skipping when the row already exists.
func (s *Store) EnsureOwner(ctx context.Context, ownerID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO llm_quota (owner_id, calls_remaining, period)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id) DO NOTHING
	`, ownerID, MonthlyCalls, time.Now().Format("2006-01"))
	return err
}
