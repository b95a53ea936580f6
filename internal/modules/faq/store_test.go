package faq

import (
	"context"
	"errors"
	"testing"
)

func TestInsertDraftRejectsAnswerlessEntry(t *testing.T) {
	// Validation runs before any query, so a zero-value store is enough.
	var s Store
	err := s.InsertDraft(context.Background(), Entry{QuestionEN: "how often should dogs eat"})
	if !errors.Is(err, ErrBadEntry) {
		t.Fatalf("err = %v, want ErrBadEntry", err)
	}
}
