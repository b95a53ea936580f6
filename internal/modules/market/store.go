// README: Market store; Postgres aggregation with a Redis TTL cache in front.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statsKeyPrefix = "market:stats:%s"
	// cacheTTL bounds how stale a served price summary can be.
	cacheTTL = 10 * time.Minute
)

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, rdb *redis.Client) *Store {
	return &Store{db: db, redis: rdb}
}

// PriceStats aggregates listing prices for a species (empty = all). The
// aggregate is cached in Redis; a cache read error falls through to Postgres.
func (s *Store) PriceStats(ctx context.Context, species string) (*PriceStats, error) {
	key := statsKey(species)
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, key).Result(); err == nil {
			var st PriceStats
			if json.Unmarshal([]byte(val), &st) == nil {
				return &st, nil
			}
		}
	}

	row := s.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(MIN(price_thb), 0),
		       COALESCE(MAX(price_thb), 0),
		       COALESCE(ROUND(AVG(price_thb)), 0)
		FROM pets
		WHERE for_sale AND price_thb IS NOT NULL
		  AND ($1 = '' OR species = $1)`, species)

	st := PriceStats{Species: species}
	if err := row.Scan(&st.Listings, &st.MinTHB, &st.MaxTHB, &st.AvgTHB); err != nil {
		return nil, err
	}

	if s.redis != nil {
		if raw, err := json.Marshal(st); err == nil {
			_ = s.redis.Set(ctx, key, raw, cacheTTL).Err()
		}
	}
	return &st, nil
}

func statsKey(species string) string {
	if species == "" {
		species = "all"
	}
	return fmt.Sprintf(statsKeyPrefix, species)
}
