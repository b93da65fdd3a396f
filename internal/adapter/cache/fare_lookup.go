// Package cache keeps recently found fares so repeated searches skip the
// upstream fare service.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/flight-search/cheapest-fly/internal/domain"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/logger"
)

// DefaultTTL is used when NewFareLookup gets a non-positive TTL.
const DefaultTTL = 15 * time.Minute

// Store is a byte-oriented key value store with expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// FareLookup decorates a domain.FareLookup with a read-through cache.
// Only successful lookups are stored.
type FareLookup struct {
	next  domain.FareLookup
	store Store
	ttl   time.Duration
	log   *logger.Logger
}

// NewFareLookup creates a caching decorator around next.
func NewFareLookup(next domain.FareLookup, store Store, ttl time.Duration, log *logger.Logger) *FareLookup {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &FareLookup{
		next:  next,
		store: store,
		ttl:   ttl,
		log:   log.WithProvider(next.Name()),
	}
}

// Name reports the wrapped lookup's name.
func (c *FareLookup) Name() string {
	return c.next.Name()
}

// LookupCheapestFare returns a cached fare when present, otherwise asks the
// wrapped lookup and caches a success. Store failures never fail the lookup.
func (c *FareLookup) LookupCheapestFare(ctx context.Context, query domain.FlightQuery) (domain.Fare, error) {
	key := Key(query)

	raw, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.log.Warn().Err(err).Str("key", key).Msg("Fare cache read failed")
	case ok:
		var fare domain.Fare
		if err := json.Unmarshal(raw, &fare); err == nil {
			c.log.Debug().Str("key", key).Msg("Fare cache hit")
			return fare, nil
		}
		c.log.Warn().Str("key", key).Msg("Fare cache entry unreadable, ignoring")
	}

	fare, err := c.next.LookupCheapestFare(ctx, query)
	if err != nil {
		return domain.Fare{}, err
	}

	data, err := json.Marshal(fare)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Fare cache encode failed")
		return fare, nil
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Fare cache write failed")
	}
	return fare, nil
}

// Key returns the cache key for query.
func Key(query domain.FlightQuery) string {
	return fmt.Sprintf("fare:%s:%s:%s", query.DepartureFrom(), query.DepartureTo(), query.Date())
}
