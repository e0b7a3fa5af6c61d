package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/gosuda/cadence/internal/domain"
)

// ErrInvalidIntervalUnit signals an out-of-enum unit reaching the engine.
// Callers are expected to validate units first; hitting this is a
// programming error, not user input.
var ErrInvalidIntervalUnit = errors.New("schedule: invalid interval unit")

// AddInterval shifts base forward by value units. Month addition clamps to
// the last day of a shorter target month rather than spilling into the
// following month; year addition clamps Feb 29 to Feb 28 in non-leap years.
func AddInterval(base domain.Date, value int, unit domain.IntervalUnit) (domain.Date, error) {
	switch unit {
	case domain.IntervalDays:
		return base.AddDays(value), nil
	case domain.IntervalWeeks:
		return base.AddDays(value * 7), nil
	case domain.IntervalMonths:
		return base.AddMonths(value), nil
	case domain.IntervalYears:
		return base.AddYears(value), nil
	default:
		return domain.Date{}, fmt.Errorf("schedule.AddInterval: %q: %w", unit, ErrInvalidIntervalUnit)
	}
}

// NextWeekday rolls d forward to the next occurrence of target. A date
// already on the target weekday is returned unchanged, never pushed to the
// following week; otherwise the result is 1-6 days forward.
func NextWeekday(d domain.Date, target time.Weekday) domain.Date {
	delta := (int(target) - int(d.Weekday()) + 7) % 7
	if delta == 0 {
		return d
	}
	return d.AddDays(delta)
}
