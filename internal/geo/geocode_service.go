// README: Geocoding service backed by the Google Maps API with a Redis result cache.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"googlemaps.github.io/maps"

	"petree/internal/types"
)

const (
	geocodeKeyPrefix = "geo:geocode:%s"
	// Geocode results for owner locations are effectively static.
	geocodeTTL = 30 * 24 * time.Hour
)

// GeocodeService resolves free-text owner locations into coordinates.
type GeocodeService struct {
	client *maps.Client
	redis  *redis.Client
}

// NewGeocodeService creates a GeocodeService with the given API key. The
// Redis client is optional; without it every call hits the Maps API.
func NewGeocodeService(apiKey string, rdb *redis.Client) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client, redis: rdb}, nil
}

// Geocode resolves a location string ("Chiang Mai", "Sukhumvit, Bangkok") to
// a coordinate. Results are cached by normalized address.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (types.Point, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return types.Point{}, fmt.Errorf("geocode: empty address")
	}

	key := fmt.Sprintf(geocodeKeyPrefix, strings.ToLower(address))
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, key).Result(); err == nil {
			var p types.Point
			if json.Unmarshal([]byte(val), &p) == nil {
				return p, nil
			}
		}
	}

	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return types.Point{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("geocode: no result for %q", address)
	}

	loc := results[0].Geometry.Location
	p := types.Point{Lat: loc.Lat, Lng: loc.Lng}

	if s.redis != nil {
		if raw, err := json.Marshal(p); err == nil {
			_ = s.redis.Set(ctx, key, raw, geocodeTTL).Err()
		}
	}
	return p, nil
}
