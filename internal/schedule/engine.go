package schedule

import (
	"fmt"
	"time"

	"github.com/gosuda/cadence/internal/domain"
)

// Engine computes next due dates. Scheduling is always relative to "today",
// never to the previous due date: a task actioned late restarts its
// countdown from the moment of the action and does not accumulate backlog.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// NextDueDate returns today shifted by the interval, then nudged forward to
// the preferred weekday when one is set (nil means no preference). today
// must already be a bare calendar date; callers normalize via Clock.Today.
func (e *Engine) NextDueDate(today domain.Date, value int, unit domain.IntervalUnit, preferredWeekday *int) (domain.Date, error) {
	candidate, err := AddInterval(today, value, unit)
	if err != nil {
		return domain.Date{}, fmt.Errorf("schedule.Engine.NextDueDate: %w", err)
	}

	if preferredWeekday != nil {
		candidate = NextWeekday(candidate, time.Weekday(*preferredWeekday))
	}

	return candidate, nil
}
