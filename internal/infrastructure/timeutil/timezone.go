package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// LocalZone selects the host's local timezone.
const LocalZone = "Local"

var locationCache sync.Map

// GetLocation resolves an IANA zone name, caching the result.
// "Local" and "" resolve to time.Local.
func GetLocation(name string) (*time.Location, error) {
	if name == "" || name == LocalZone {
		return time.Local, nil
	}

	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}

// MustGetLocation is GetLocation for zone names known to be valid.
func MustGetLocation(name string) *time.Location {
	loc, err := GetLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns the clock's current day at midnight in loc.
func Today(clock Clock, loc *time.Location) time.Time {
	return StartOfDay(clock.Now().In(loc))
}

// ClearLocationCache drops every cached zone. Tests only.
func ClearLocationCache() {
	locationCache.Range(func(key, _ any) bool {
		locationCache.Delete(key)
		return true
	})
}
