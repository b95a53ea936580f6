// README: Breeding-match store backed by PostgreSQL.
package match

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"petree/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const matchColumns = `
	m.id, m.sire_id, m.dam_id,
	COALESCE(sp.name, ''), COALESCE(dp.name, ''),
	m.status, m.scheduled_at, m.created_at`

const matchFrom = `
	FROM breeding_matches m
	LEFT JOIN pets sp ON sp.id = m.sire_id
	LEFT JOIN pets dp ON dp.id = m.dam_id`

func (s *Store) Get(ctx context.Context, id types.ID) (*Match, error) {
	row := s.db.QueryRow(ctx, `SELECT`+matchColumns+matchFrom+` WHERE m.id = $1`, string(id))
	return scanMatch(row)
}

// ByOwner returns matches involving any pet owned by the given user,
// soonest scheduled first.
func (s *Store) ByOwner(ctx context.Context, ownerID types.ID) ([]Match, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+matchColumns+matchFrom+`
		WHERE sp.owner_id = $1 OR dp.owner_id = $1
		ORDER BY m.scheduled_at ASC NULLS LAST`, string(ownerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatches(rows)
}

// ByPet returns matches where the pet is either parent.
func (s *Store) ByPet(ctx context.Context, petID types.ID) ([]Match, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+matchColumns+matchFrom+`
		WHERE m.sire_id = $1 OR m.dam_id = $1
		ORDER BY m.scheduled_at ASC NULLS LAST`, string(petID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatches(rows)
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE breeding_matches SET status = $1 WHERE id = $2 AND status = $3`,
		string(to), string(id), string(from))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*Match, error) {
	var m Match
	var scheduledAt sql.NullTime
	err := row.Scan(&m.ID, &m.SireID, &m.DamID, &m.SireName, &m.DamName,
		&m.Status, &scheduledAt, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if scheduledAt.Valid {
		t := scheduledAt.Time
		m.ScheduledAt = &t
	}
	return &m, nil
}

func scanMatches(rows pgx.Rows) ([]Match, error) {
	var out []Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
