// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/flight-search/cheapest-fly/internal/domain"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/timeutil"
)

// Today is the fixed date that test clocks start on.
const Today = "2026-10-19"

// LoadTestJSON loads a JSON file from the test/testdata directory.
func LoadTestJSON(t *testing.T, filename string) []byte {
	t.Helper()

	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// Navigate to project root (testutil is in test/testutil)
	projectRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")
	testDataPath := filepath.Join(projectRoot, "test", "testdata", filename)

	data, err := os.ReadFile(testDataPath)
	if err != nil {
		t.Fatalf("Failed to load test file %s: %v", filename, err)
	}
	return data
}

// FixedClock returns a mock clock at 09:00 UTC on Today.
func FixedClock() *timeutil.MockClock {
	return timeutil.NewMockClockFromString(Today + "T09:00:00Z")
}

// MustQuery validates the form fields against Today.
// It fails the test if validation fails.
func MustQuery(t *testing.T, from, to, date string) domain.FlightQuery {
	t.Helper()
	q, err := domain.ValidateForm(from, to, date, MustParseDate(t, Today))
	if err != nil {
		t.Fatalf("Failed to build query %s-%s %s: %v", from, to, date, err)
	}
	return q
}

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(domain.DateLayout, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
func Ptr[T any](v T) *T {
	return &v
}
