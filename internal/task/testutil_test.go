package task_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/cadence/internal/domain"
	"github.com/gosuda/cadence/internal/schedule"
	"github.com/gosuda/cadence/internal/task"
)

func date(y int, m time.Month, d int) domain.Date {
	return domain.Date{Year: y, Month: m, Day: d}
}

func weekday(w time.Weekday) *int {
	v := int(w)
	return &v
}

func strptr(s string) *string { return &s }

func intptr(n int) *int { return &n }

func unitptr(u domain.IntervalUnit) *domain.IntervalUnit { return &u }

// newService wires a Service around a mock repo and a fixed clock.
func newService(repo domain.TaskRepository, today domain.Date, cache task.DashboardCache) *task.Service {
	return task.NewService(repo, schedule.NewEngine(), schedule.FixedClock{Date: today}, cache)
}

// ---------------------------------------------------------------------------
// Mock TaskRepository
// ---------------------------------------------------------------------------

type mockTaskRepo struct {
	createFunc        func(ctx context.Context, t *domain.Task) error
	getByIDFunc       func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	updateFunc        func(ctx context.Context, t *domain.Task) error
	deleteFunc        func(ctx context.Context, ownerID, id uuid.UUID) error
	listFunc          func(ctx context.Context, ownerID uuid.UUID, sort domain.TaskSort, limit, offset int) ([]*domain.Task, int64, error)
	dueBeforeFunc     func(ctx context.Context, ownerID uuid.UUID, cutoff domain.Date) ([]*domain.Task, error)
	dueBetweenFunc    func(ctx context.Context, ownerID uuid.UUID, from, to domain.Date) ([]*domain.Task, error)
	firstDueAfterFunc func(ctx context.Context, ownerID uuid.UUID, after domain.Date) (*domain.Task, error)
	countByOwnerFunc  func(ctx context.Context, ownerID uuid.UUID) (int64, error)
	actionTotalsFunc  func(ctx context.Context, ownerID uuid.UUID) (domain.ActionTotals, error)
}

func (m *mockTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	return m.createFunc(ctx, t)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	return m.getByIDFunc(ctx, ownerID, id)
}

func (m *mockTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	return m.updateFunc(ctx, t)
}

func (m *mockTaskRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.deleteFunc(ctx, ownerID, id)
}

func (m *mockTaskRepo) List(ctx context.Context, ownerID uuid.UUID, sort domain.TaskSort, limit, offset int) ([]*domain.Task, int64, error) {
	return m.listFunc(ctx, ownerID, sort, limit, offset)
}

func (m *mockTaskRepo) DueBefore(ctx context.Context, ownerID uuid.UUID, cutoff domain.Date) ([]*domain.Task, error) {
	return m.dueBeforeFunc(ctx, ownerID, cutoff)
}

func (m *mockTaskRepo) DueBetween(ctx context.Context, ownerID uuid.UUID, from, to domain.Date) ([]*domain.Task, error) {
	return m.dueBetweenFunc(ctx, ownerID, from, to)
}

func (m *mockTaskRepo) FirstDueAfter(ctx context.Context, ownerID uuid.UUID, after domain.Date) (*domain.Task, error) {
	return m.firstDueAfterFunc(ctx, ownerID, after)
}

func (m *mockTaskRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return m.countByOwnerFunc(ctx, ownerID)
}

func (m *mockTaskRepo) ActionTotals(ctx context.Context, ownerID uuid.UUID) (domain.ActionTotals, error) {
	return m.actionTotalsFunc(ctx, ownerID)
}

// ---------------------------------------------------------------------------
// Mock DashboardCache
// ---------------------------------------------------------------------------

type mockCache struct {
	getFunc        func(ctx context.Context, ownerID uuid.UUID) (*task.Dashboard, error)
	setFunc        func(ctx context.Context, ownerID uuid.UUID, d *task.Dashboard) error
	invalidateFunc func(ctx context.Context, ownerID uuid.UUID) error
}

func (m *mockCache) Get(ctx context.Context, ownerID uuid.UUID) (*task.Dashboard, error) {
	if m.getFunc == nil {
		return nil, task.ErrCacheMiss
	}
	return m.getFunc(ctx, ownerID)
}

func (m *mockCache) Set(ctx context.Context, ownerID uuid.UUID, d *task.Dashboard) error {
	if m.setFunc == nil {
		return nil
	}
	return m.setFunc(ctx, ownerID, d)
}

func (m *mockCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	if m.invalidateFunc == nil {
		return nil
	}
	return m.invalidateFunc(ctx, ownerID)
}
