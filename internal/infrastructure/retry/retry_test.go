package retry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) Policy {
	return Policy{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo_SuccessOnFirstAttempt(t *testing.T) {
	var attempts int32

	got, err := Do(context.Background(), fastPolicy(3), func(context.Context) (string, error) {
		atomic.AddInt32(&attempts, 1)
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, int32(1), attempts)
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	var attempts int32

	got, err := Do(context.Background(), fastPolicy(5), func(context.Context) (int, error) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return 0, errors.New("temporary")
		}
		return int(n), nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Equal(t, int32(3), attempts)
}

func TestDo_MaxAttemptsExceeded(t *testing.T) {
	var attempts int32
	persistent := errors.New("persistent")

	_, err := Do(context.Background(), fastPolicy(3), func(context.Context) (int, error) {
		atomic.AddInt32(&attempts, 1)
		return 0, persistent
	})

	assert.ErrorIs(t, err, persistent)
	assert.Equal(t, int32(3), attempts)
}

func TestDo_OnceNeverRepeats(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
	}{
		{name: "Once", policy: Once},
		{name: "zero attempts", policy: Policy{}},
		{name: "negative attempts", policy: Policy{MaxAttempts: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts int32
			_, err := Do(context.Background(), tt.policy, func(context.Context) (int, error) {
				atomic.AddInt32(&attempts, 1)
				return 0, errors.New("metered call failed")
			})

			assert.Error(t, err)
			assert.Equal(t, int32(1), attempts)
			assert.Equal(t, 1, tt.policy.Attempts())
		})
	}
}

func TestDo_RetryIfPredicate(t *testing.T) {
	retryable := errors.New("retryable")
	fatal := errors.New("fatal")
	var attempts int32

	policy := fastPolicy(5).WithRetryIf(func(err error) bool {
		return errors.Is(err, retryable)
	})

	_, err := Do(context.Background(), policy, func(context.Context) (int, error) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return 0, retryable
		}
		return 0, fatal
	})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, int32(2), attempts)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	var attempts int32
	cause := errors.New("bad request")

	_, err := Do(context.Background(), fastPolicy(5), func(context.Context) (int, error) {
		atomic.AddInt32(&attempts, 1)
		return 0, NewPermanent(cause)
	})

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsPermanent(err))
	assert.Equal(t, int32(1), attempts)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var attempts int32

	policy := Policy{MaxAttempts: 5, InitialDelay: time.Second, MaxDelay: time.Second}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := Do(ctx, policy, func(context.Context) (int, error) {
		atomic.AddInt32(&attempts, 1)
		return 0, errors.New("temporary")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), attempts)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestDo_ContextAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var attempts int32
	_, err := Do(ctx, fastPolicy(3), func(context.Context) (int, error) {
		atomic.AddInt32(&attempts, 1)
		return 1, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), attempts)
}

func TestPolicy_SleepForRespectsMaxDelay(t *testing.T) {
	p := Policy{MaxDelay: 10 * time.Millisecond, JitterFactor: 1.0}

	for i := 0; i < 50; i++ {
		assert.LessOrEqual(t, p.sleepFor(8*time.Millisecond), 10*time.Millisecond)
	}
}

func TestBackoff(t *testing.T) {
	p := Backoff(3, 100*time.Millisecond, 2*time.Second)

	assert.Equal(t, 3, p.Attempts())
	assert.Equal(t, 100*time.Millisecond, p.InitialDelay)
	assert.Equal(t, 2*time.Second, p.MaxDelay)
	assert.Equal(t, 2.0, p.Multiplier)
}

func TestPermanent_Nil(t *testing.T) {
	assert.Nil(t, NewPermanent(nil))
	assert.Equal(t, "permanent error", (&Permanent{}).Error())
	assert.False(t, IsPermanent(errors.New("plain")))
}
