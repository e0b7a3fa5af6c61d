package schedule

import (
	"time"

	"github.com/gosuda/cadence/internal/domain"
)

// Clock supplies "today" so scheduling is deterministic under test. Callers
// capture Today() once per logical operation; re-reading it mid-operation
// could straddle a date rollover.
type Clock interface {
	Today() domain.Date
}

// SystemClock reads the wall clock, truncated to the UTC calendar date.
type SystemClock struct{}

func (SystemClock) Today() domain.Date {
	return domain.DateOf(time.Now())
}

// FixedClock always returns the same date. Test helper.
type FixedClock struct {
	Date domain.Date
}

func (c FixedClock) Today() domain.Date {
	return c.Date
}
