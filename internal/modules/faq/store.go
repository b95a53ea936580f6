// README: FAQ store backed by PostgreSQL; approved reads and draft inserts.
package faq

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"petree/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// LoadApproved returns at most limit approved, active entries, highest
// priority first so the cache cap keeps the most useful rows.
func (s *Store) LoadApproved(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, scope, keywords, exclude_keywords,
		       question_th, question_en, answer_th, answer_en, priority
		FROM faq_entries
		WHERE status = $1 AND is_active
		ORDER BY priority DESC, created_at ASC
		LIMIT $2`, string(StatusApproved), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Scope, &e.Keywords, &e.Exclude,
			&e.QuestionTH, &e.QuestionEN, &e.AnswerTH, &e.AnswerEN, &e.Priority); err != nil {
			return nil, err
		}
		e.Status = StatusApproved
		e.IsActive = true
		out = append(out, e)
	}
	return out, rows.Err()
}

// InsertDraft stores a machine-proposed entry awaiting human curation.
// An entry with no answer in either language is rejected with ErrBadEntry.
func (s *Store) InsertDraft(ctx context.Context, e Entry) error {
	if e.AnswerTH == "" && e.AnswerEN == "" {
		return ErrBadEntry
	}
	if e.ID == "" {
		e.ID = types.ID(uuid.NewString())
	}
	if e.Scope == "" {
		e.Scope = ScopeAny
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO faq_entries (
			id, scope, keywords, exclude_keywords,
			question_th, question_en, answer_th, answer_en,
			priority, status, is_active, embedding, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, false, $11, $12)`,
		string(e.ID), string(e.Scope), e.Keywords, e.Exclude,
		e.QuestionTH, e.QuestionEN, e.AnswerTH, e.AnswerEN,
		e.Priority, string(StatusDraft), e.Embedding, time.Now().UTC(),
	)
	return err
}
