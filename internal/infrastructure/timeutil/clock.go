// Package timeutil provides a swappable clock and timezone helpers.
package timeutil

import (
	"sync"
	"time"
)

// Clock abstracts time.Now so "today" can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// NewRealClock creates a RealClock.
func NewRealClock() RealClock {
	return RealClock{}
}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a fixed time until moved. Safe for concurrent use.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockClock creates a MockClock fixed at t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// NewMockClockFromString creates a MockClock from an RFC3339 string.
// It panics on a malformed string; use it in tests only.
func NewMockClockFromString(value string) *MockClock {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic("invalid time string: " + err.Error())
	}
	return NewMockClock(t)
}

// Now returns the pinned time.
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set pins the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

var (
	_ Clock = RealClock{}
	_ Clock = (*MockClock)(nil)
)
