// README: Redis-backed conversation state, one JSON blob per chat session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"petree/internal/resolver"
	"petree/internal/types"
)

// Store persists resolver.Conversation between turns. The TTL is sliding:
// every load and save pushes expiry out, so a session dies only after real
// inactivity.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// NewSessionID mints an opaque session identifier for clients that don't
// have one yet.
func NewSessionID() string {
	return uuid.NewString()
}

func key(sessionID string) string {
	return fmt.Sprintf("chat:session:%s", sessionID)
}

// Load fetches the conversation for a session, returning a fresh empty one
// when the session is unknown or the stored blob is unreadable. A corrupt
// blob costs the user their context, never the request.
func (s *Store) Load(ctx context.Context, sessionID string, ownerID types.ID) *resolver.Conversation {
	raw, err := s.rdb.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return resolver.NewConversation(ownerID)
	}
	if err != nil {
		log.Printf("session: load %s: %v", sessionID, err)
		return resolver.NewConversation(ownerID)
	}

	var conv resolver.Conversation
	if err := json.Unmarshal(raw, &conv); err != nil {
		log.Printf("session: decode %s: %v", sessionID, err)
		return resolver.NewConversation(ownerID)
	}
	if conv.OwnerID == "" {
		conv.OwnerID = ownerID
	}
	return &conv
}

// Save writes the conversation back and refreshes the TTL.
func (s *Store) Save(ctx context.Context, sessionID string, conv *resolver.Conversation) error {
	raw, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("marshal conversation: %w", err)
	}
	if err := s.rdb.Set(ctx, key(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}
