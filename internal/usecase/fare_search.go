// Package usecase contains the business logic of the cheapest fare finder:
// form validation bound to a clock, a single bounded fare lookup, and the
// dispatcher that delivers only the latest search back to the UI.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flight-search/cheapest-fly/internal/domain"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/logger"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/retry"
)

// DefaultLookupTimeout bounds a fare lookup when no timeout is configured.
const DefaultLookupTimeout = 10 * time.Second

// FareSearchUseCase runs one cheapest-fare lookup and never returns a raw error.
type FareSearchUseCase interface {
	// Search looks up the cheapest fare for query. Every failure is folded
	// into a Failure outcome.
	Search(ctx context.Context, query domain.FlightQuery) domain.SearchOutcome
}

// FareSearchConfig contains configuration options for the fare search.
type FareSearchConfig struct {
	// LookupTimeout bounds the whole lookup, retries included
	LookupTimeout time.Duration

	// Retry is the repeat policy; the zero value makes one attempt
	Retry retry.Policy

	// Logger receives lookup failures; nil disables logging
	Logger *logger.Logger
}

type fareSearchUseCase struct {
	lookup  domain.FareLookup
	timeout time.Duration
	policy  retry.Policy
	log     *logger.Logger
}

// NewFareSearchUseCase wraps lookup with the timeout and retry policy from cfg.
func NewFareSearchUseCase(lookup domain.FareLookup, cfg FareSearchConfig) FareSearchUseCase {
	uc := &fareSearchUseCase{
		lookup:  lookup,
		timeout: cfg.LookupTimeout,
		policy:  cfg.Retry,
		log:     cfg.Logger,
	}
	if uc.timeout <= 0 {
		uc.timeout = DefaultLookupTimeout
	}
	if uc.policy.RetryIf == nil {
		uc.policy = uc.policy.WithRetryIf(domain.IsRetryable)
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	return uc
}

// lookupResult holds what a single guarded lookup produced.
type lookupResult struct {
	fare domain.Fare
	err  error
}

// Search implements FareSearchUseCase.
func (uc *fareSearchUseCase) Search(ctx context.Context, query domain.FlightQuery) domain.SearchOutcome {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	log := uc.log.WithProvider(uc.lookup.Name())

	fare, err := retry.Do(ctx, uc.policy, uc.guardedLookup(query))
	if err != nil {
		outcome := classify(err)
		log.Warn().
			Err(err).
			Str("route", query.String()).
			Str("kind", outcome.Failure.Kind.String()).
			Dur("elapsed", time.Since(start)).
			Msg("Fare lookup failed")
		return outcome
	}

	if fare.Source == "" {
		fare.Source = uc.lookup.Name()
	}

	log.Debug().
		Str("route", query.String()).
		Str("fare", fare.Display()).
		Dur("elapsed", time.Since(start)).
		Msg("Fare lookup succeeded")

	return domain.Success(fare)
}

// guardedLookup runs the collaborator in its own goroutine so a lookup that
// ignores ctx, or panics, still resolves when ctx ends.
func (uc *fareSearchUseCase) guardedLookup(query domain.FlightQuery) func(context.Context) (domain.Fare, error) {
	return func(ctx context.Context) (domain.Fare, error) {
		results := make(chan lookupResult, 1)

		go func() {
			defer func() {
				if r := recover(); r != nil {
					results <- lookupResult{err: domain.NewProviderError(uc.lookup.Name(), fmt.Errorf("provider panic: %v", r))}
				}
			}()

			fare, err := uc.lookup.LookupCheapestFare(ctx, query)
			results <- lookupResult{fare: fare, err: err}
		}()

		select {
		case res := <-results:
			return res.fare, res.err
		case <-ctx.Done():
			return domain.Fare{}, ctx.Err()
		}
	}
}

// classify folds a lookup error into a Failure outcome.
func classify(err error) domain.SearchOutcome {
	var rejected *domain.RejectedError

	switch {
	case errors.Is(err, context.DeadlineExceeded), domain.IsProviderTimeout(err):
		return domain.Failed(domain.Timeout, "")
	case errors.As(err, &rejected):
		return domain.Failed(domain.Rejected, rejected.Reason)
	case errors.Is(err, domain.ErrNoFares):
		return domain.Failed(domain.Rejected, domain.ErrNoFares.Error())
	default:
		return domain.Failed(domain.Unavailable, "")
	}
}

var _ FareSearchUseCase = (*fareSearchUseCase)(nil)
