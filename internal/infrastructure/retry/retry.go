// Package retry runs an operation a bounded number of times with exponential backoff.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Policy bounds how an operation is repeated.
type Policy struct {
	// MaxAttempts counts the first call. Values below 1 mean a single attempt.
	MaxAttempts int

	// InitialDelay is the wait before the second attempt.
	InitialDelay time.Duration

	// MaxDelay caps every wait.
	MaxDelay time.Duration

	// Multiplier grows the wait after each failed attempt.
	Multiplier float64

	// JitterFactor adds up to this fraction of the wait at random (0.0 to 1.0).
	JitterFactor float64

	// RetryIf decides whether an error is worth another attempt.
	// Nil retries everything except Permanent errors.
	RetryIf func(error) bool
}

// Once is a policy that never repeats the call.
var Once = Policy{MaxAttempts: 1}

// Backoff returns a policy with attempts attempts and the given delay bounds.
func Backoff(attempts int, initial, max time.Duration) Policy {
	return Policy{
		MaxAttempts:  attempts,
		InitialDelay: initial,
		MaxDelay:     max,
		Multiplier:   2.0,
		JitterFactor: 0.2,
	}
}

// WithRetryIf returns a copy of p using fn as its predicate.
func (p Policy) WithRetryIf(fn func(error) bool) Policy {
	p.RetryIf = fn
	return p
}

// Attempts returns the effective number of attempts.
func (p Policy) Attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p Policy) shouldRetry(err error) bool {
	if IsPermanent(err) {
		return false
	}
	if p.RetryIf == nil {
		return true
	}
	return p.RetryIf(err)
}

// Do calls fn until it succeeds, the policy gives up, or ctx ends.
// It returns the last result and error from fn, or ctx's error if ctx ended first.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var (
		result T
		err    error
	)
	delay := p.InitialDelay
	attempts := p.Attempts()

	for attempt := 1; attempt <= attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		result, err = fn(ctx)
		if err == nil || attempt == attempts || !p.shouldRetry(err) {
			return result, err
		}

		timer := time.NewTimer(p.sleepFor(delay))
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, ctx.Err()
		case <-timer.C:
		}

		if p.Multiplier > 0 {
			delay = time.Duration(float64(delay) * p.Multiplier)
		}
	}

	return result, err
}

func (p Policy) sleepFor(delay time.Duration) time.Duration {
	if p.JitterFactor > 0 {
		delay += time.Duration(rand.Float64() * float64(delay) * p.JitterFactor)
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

// Permanent marks an error that must not be retried.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string {
	if p.Err == nil {
		return "permanent error"
	}
	return p.Err.Error()
}

func (p *Permanent) Unwrap() error {
	return p.Err
}

// NewPermanent wraps err so Do stops immediately. A nil err stays nil.
func NewPermanent(err error) error {
	if err == nil {
		return nil
	}
	return &Permanent{Err: err}
}

// IsPermanent reports whether err is, or wraps, a Permanent error.
func IsPermanent(err error) bool {
	var permanent *Permanent
	return errors.As(err, &permanent)
}
