// Package provider selects and assembles the configured fare lookup.
package provider

import (
	"context"
	"fmt"

	"github.com/flight-search/cheapest-fly/internal/adapter/cache"
	"github.com/flight-search/cheapest-fly/internal/adapter/provider/fareapi"
	"github.com/flight-search/cheapest-fly/internal/adapter/provider/ryanair"
	"github.com/flight-search/cheapest-fly/internal/config"
	"github.com/flight-search/cheapest-fly/internal/domain"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/logger"
)

// NewLookup builds the lookup named by cfg.Fares.Source and wraps it in the
// Redis fare cache when REDIS_URL is set. The returned cleanup func is never nil.
func NewLookup(ctx context.Context, cfg *config.Config, log *logger.Logger) (domain.FareLookup, func() error, error) {
	noop := func() error { return nil }

	var lookup domain.FareLookup
	switch cfg.Fares.Source {
	case config.SourceRyanair:
		lookup = ryanair.NewAdapter(cfg.Fares.RyanairBaseURL)
	case config.SourceServer:
		lookup = fareapi.NewClient(cfg.Fares.APIURL)
	default:
		return nil, noop, fmt.Errorf("unknown fare source %q", cfg.Fares.Source)
	}

	if !cfg.CacheEnabled() {
		return lookup, noop, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
	if err != nil {
		return nil, noop, fmt.Errorf("fare cache: %w", err)
	}
	log.Info().Dur("ttl", cfg.Cache.TTL).Msg("Fare cache enabled")

	cached := cache.NewFareLookup(lookup, cache.NewRedisStore(client), cfg.Cache.TTL, log)
	return cached, client.Close, nil
}
