package task_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/cadence/internal/domain"
	"github.com/gosuda/cadence/internal/task"
)

func taskDue(ownerID uuid.UUID, title string, due domain.Date) *domain.Task {
	return &domain.Task{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Title:         title,
		IntervalValue: 1,
		IntervalUnit:  domain.IntervalWeeks,
		NextDueDate:   due,
	}
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	today := date(2025, time.June, 10)

	t.Run("classifies_overdue_and_upcoming", func(t *testing.T) {
		t.Parallel()

		yesterday := taskDue(ownerID, "overdue by one", date(2025, time.June, 9))
		lastWeek := taskDue(ownerID, "overdue by seven", date(2025, time.June, 3))
		dueToday := taskDue(ownerID, "due today", today)
		inFive := taskDue(ownerID, "in five days", date(2025, time.June, 15))

		repo := &mockTaskRepo{
			dueBeforeFunc: func(_ context.Context, _ uuid.UUID, cutoff domain.Date) ([]*domain.Task, error) {
				assert.Equal(t, today, cutoff)
				return []*domain.Task{lastWeek, yesterday}, nil
			},
			dueBetweenFunc: func(_ context.Context, _ uuid.UUID, from, to domain.Date) ([]*domain.Task, error) {
				assert.Equal(t, today, from)
				assert.Equal(t, date(2025, time.June, 17), to)
				return []*domain.Task{dueToday, inFive}, nil
			},
			countByOwnerFunc: func(_ context.Context, _ uuid.UUID) (int64, error) { return 4, nil },
		}
		svc := newService(repo, today, nil)

		d, err := svc.Dashboard(context.Background(), ownerID)
		require.NoError(t, err)

		require.Len(t, d.Overdue, 2)
		assert.Equal(t, 7, d.Overdue[0].DaysOverdue)
		assert.Equal(t, 1, d.Overdue[1].DaysOverdue)

		require.Len(t, d.Upcoming, 2)
		assert.Equal(t, 0, d.Upcoming[0].DaysUntilDue)
		assert.Equal(t, 5, d.Upcoming[1].DaysUntilDue)

		assert.Nil(t, d.NextTask, "next task is hidden while anything is overdue or upcoming")
		assert.Equal(t, task.DashboardSummary{TotalOverdue: 2, TotalUpcoming: 2, TotalTasks: 4}, d.Summary)
	})

	t.Run("next_task_when_nothing_pending", func(t *testing.T) {
		t.Parallel()

		future := taskDue(ownerID, "far away", date(2025, time.July, 1))

		repo := &mockTaskRepo{
			dueBeforeFunc: func(_ context.Context, _ uuid.UUID, _ domain.Date) ([]*domain.Task, error) {
				return nil, nil
			},
			dueBetweenFunc: func(_ context.Context, _ uuid.UUID, _, _ domain.Date) ([]*domain.Task, error) {
				return nil, nil
			},
			firstDueAfterFunc: func(_ context.Context, _ uuid.UUID, after domain.Date) (*domain.Task, error) {
				assert.Equal(t, date(2025, time.June, 17), after)
				return future, nil
			},
			countByOwnerFunc: func(_ context.Context, _ uuid.UUID) (int64, error) { return 1, nil },
		}
		svc := newService(repo, today, nil)

		d, err := svc.Dashboard(context.Background(), ownerID)
		require.NoError(t, err)

		require.NotNil(t, d.NextTask)
		assert.Equal(t, future.ID, d.NextTask.ID)
		assert.Equal(t, "far away", d.NextTask.Title)
		assert.Equal(t, 21, d.NextTask.DaysUntilDue)
	})

	t.Run("no_tasks_at_all", func(t *testing.T) {
		t.Parallel()

		repo := &mockTaskRepo{
			dueBeforeFunc: func(_ context.Context, _ uuid.UUID, _ domain.Date) ([]*domain.Task, error) {
				return nil, nil
			},
			dueBetweenFunc: func(_ context.Context, _ uuid.UUID, _, _ domain.Date) ([]*domain.Task, error) {
				return nil, nil
			},
			firstDueAfterFunc: func(_ context.Context, _ uuid.UUID, _ domain.Date) (*domain.Task, error) {
				return nil, domain.ErrNotFound
			},
			countByOwnerFunc: func(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil },
		}
		svc := newService(repo, today, nil)

		d, err := svc.Dashboard(context.Background(), ownerID)
		require.NoError(t, err)
		assert.Empty(t, d.Overdue)
		assert.Empty(t, d.Upcoming)
		assert.Nil(t, d.NextTask)
		assert.Equal(t, int64(0), d.Summary.TotalTasks)
	})

	t.Run("cache_hit_skips_store", func(t *testing.T) {
		t.Parallel()

		cached := &task.Dashboard{GeneratedOn: today, Summary: task.DashboardSummary{TotalTasks: 9}}
		cache := &mockCache{
			getFunc: func(_ context.Context, _ uuid.UUID) (*task.Dashboard, error) {
				return cached, nil
			},
		}
		// Store funcs are nil: any call would panic.
		svc := newService(&mockTaskRepo{}, today, cache)

		d, err := svc.Dashboard(context.Background(), ownerID)
		require.NoError(t, err)
		assert.Same(t, cached, d)
	})

	t.Run("stale_day_cache_entry_recomputed", func(t *testing.T) {
		t.Parallel()

		// Cached just before a UTC midnight rollover: still within its TTL
		// but classified against yesterday.
		stale := &task.Dashboard{
			GeneratedOn: today.AddDays(-1),
			Summary:     task.DashboardSummary{TotalTasks: 9},
		}
		var stored *task.Dashboard
		cache := &mockCache{
			getFunc: func(_ context.Context, _ uuid.UUID) (*task.Dashboard, error) {
				return stale, nil
			},
			setFunc: func(_ context.Context, _ uuid.UUID, d *task.Dashboard) error {
				stored = d
				return nil
			},
		}
		repo := &mockTaskRepo{
			dueBeforeFunc: func(_ context.Context, _ uuid.UUID, _ domain.Date) ([]*domain.Task, error) {
				return []*domain.Task{taskDue(ownerID, "was upcoming yesterday", today.AddDays(-1))}, nil
			},
			dueBetweenFunc: func(_ context.Context, _ uuid.UUID, _, _ domain.Date) ([]*domain.Task, error) {
				return nil, nil
			},
			countByOwnerFunc: func(_ context.Context, _ uuid.UUID) (int64, error) { return 1, nil },
		}
		svc := newService(repo, today, cache)

		d, err := svc.Dashboard(context.Background(), ownerID)
		require.NoError(t, err)
		assert.NotSame(t, stale, d, "yesterday's dashboard must not be served")
		assert.Equal(t, today, d.GeneratedOn)
		require.Len(t, d.Overdue, 1)
		assert.Same(t, d, stored, "the fresh dashboard must replace the stale entry")
	})

	t.Run("cache_failure_degrades_to_store", func(t *testing.T) {
		t.Parallel()

		var stored *task.Dashboard
		cache := &mockCache{
			getFunc: func(_ context.Context, _ uuid.UUID) (*task.Dashboard, error) {
				return nil, errors.New("redis: connection refused")
			},
			setFunc: func(_ context.Context, _ uuid.UUID, d *task.Dashboard) error {
				stored = d
				return nil
			},
		}
		repo := &mockTaskRepo{
			dueBeforeFunc: func(_ context.Context, _ uuid.UUID, _ domain.Date) ([]*domain.Task, error) {
				return nil, nil
			},
			dueBetweenFunc: func(_ context.Context, _ uuid.UUID, _, _ domain.Date) ([]*domain.Task, error) {
				return []*domain.Task{taskDue(ownerID, "soon", today.AddDays(2))}, nil
			},
			countByOwnerFunc: func(_ context.Context, _ uuid.UUID) (int64, error) { return 1, nil },
		}
		svc := newService(repo, today, cache)

		d, err := svc.Dashboard(context.Background(), ownerID)
		require.NoError(t, err)
		require.Len(t, d.Upcoming, 1)
		assert.Same(t, d, stored, "recomputed dashboard must be written back to the cache")
	})
}
