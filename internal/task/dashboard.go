package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/cadence/internal/domain"
)

// Upcoming tasks are those due within this many days of today.
const upcomingWindowDays = 7

// OverdueTask is a task whose due date has passed, annotated with how many
// days ago it was due.
type OverdueTask struct {
	domain.Task
	DaysOverdue int
}

// UpcomingTask is a task due within the upcoming window, annotated with how
// many days remain.
type UpcomingTask struct {
	domain.Task
	DaysUntilDue int
}

// NextTask is the single nearest future task, shown only when nothing is
// overdue or upcoming.
type NextTask struct {
	ID           uuid.UUID
	Title        string
	NextDueDate  domain.Date
	DaysUntilDue int
}

type DashboardSummary struct {
	TotalOverdue  int
	TotalUpcoming int
	TotalTasks    int64
}

// Dashboard is the derived overdue/upcoming/next view of an owner's tasks.
// None of it is stored; everything is classified against "today".
// GeneratedOn records that day so a cached dashboard written just before a
// UTC date rollover is never served on the following day.
type Dashboard struct {
	GeneratedOn domain.Date
	Overdue     []OverdueTask
	Upcoming    []UpcomingTask
	NextTask    *NextTask
	Summary     DashboardSummary
}

// ErrCacheMiss is returned by DashboardCache.Get when no entry exists.
var ErrCacheMiss = errors.New("task: dashboard cache miss")

// DashboardCache holds computed dashboards per owner for a short TTL.
// Implementations must treat Get/Set failures as soft; the service always
// falls back to recomputing from the store.
type DashboardCache interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*Dashboard, error)
	Set(ctx context.Context, ownerID uuid.UUID, d *Dashboard) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

// Dashboard classifies the owner's tasks against today. Ordering within
// each section is by next_due_date ascending (ties by creation order).
func (s *Service) Dashboard(ctx context.Context, ownerID uuid.UUID) (*Dashboard, error) {
	today := s.clock.Today()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, ownerID)
		switch {
		case err == nil && cached.GeneratedOn == today:
			return cached, nil
		case err == nil:
			// Computed on an earlier day; the classification is stale.
		case !errors.Is(err, ErrCacheMiss):
			log.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("task: dashboard cache read failed")
		}
	}

	overdueTasks, err := s.repo.DueBefore(ctx, ownerID, today)
	if err != nil {
		return nil, fmt.Errorf("task.Dashboard: %w", err)
	}

	upcomingTasks, err := s.repo.DueBetween(ctx, ownerID, today, today.AddDays(upcomingWindowDays))
	if err != nil {
		return nil, fmt.Errorf("task.Dashboard: %w", err)
	}

	total, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("task.Dashboard: %w", err)
	}

	d := &Dashboard{
		GeneratedOn: today,
		Overdue:     make([]OverdueTask, 0, len(overdueTasks)),
		Upcoming:    make([]UpcomingTask, 0, len(upcomingTasks)),
		Summary: DashboardSummary{
			TotalOverdue:  len(overdueTasks),
			TotalUpcoming: len(upcomingTasks),
			TotalTasks:    total,
		},
	}

	for _, t := range overdueTasks {
		d.Overdue = append(d.Overdue, OverdueTask{
			Task:        *t,
			DaysOverdue: t.NextDueDate.DaysUntil(today),
		})
	}

	for _, t := range upcomingTasks {
		d.Upcoming = append(d.Upcoming, UpcomingTask{
			Task:         *t,
			DaysUntilDue: today.DaysUntil(t.NextDueDate),
		})
	}

	if len(d.Overdue) == 0 && len(d.Upcoming) == 0 {
		next, err := s.repo.FirstDueAfter(ctx, ownerID, today.AddDays(upcomingWindowDays))
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("task.Dashboard: %w", err)
		}
		if next != nil {
			d.NextTask = &NextTask{
				ID:           next.ID,
				Title:        next.Title,
				NextDueDate:  next.NextDueDate,
				DaysUntilDue: today.DaysUntil(next.NextDueDate),
			}
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, d); err != nil {
			log.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("task: dashboard cache write failed")
		}
	}

	return d, nil
}
