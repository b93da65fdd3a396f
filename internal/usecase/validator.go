package usecase

import (
	"time"

	"github.com/flight-search/cheapest-fly/internal/domain"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/timeutil"
)

// FormValidator binds domain.ValidateForm to a clock and timezone.
type FormValidator struct {
	clock timeutil.Clock
	loc   *time.Location
}

// NewFormValidator creates a FormValidator. A nil clock uses the system
// clock and a nil location uses time.Local.
func NewFormValidator(clock timeutil.Clock, loc *time.Location) *FormValidator {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if loc == nil {
		loc = time.Local
	}
	return &FormValidator{clock: clock, loc: loc}
}

// Validate checks raw form text against today's date in the validator's timezone.
func (v *FormValidator) Validate(rawDeparture, rawDestination, rawDate string) (domain.FlightQuery, error) {
	return domain.ValidateForm(rawDeparture, rawDestination, rawDate, timeutil.Today(v.clock, v.loc))
}
