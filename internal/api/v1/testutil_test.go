package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/gosuda/cadence/internal/domain"
	"github.com/gosuda/cadence/internal/server/middleware"
	"github.com/gosuda/cadence/internal/task"
)

// ---------------------------------------------------------------------------
// Context helpers — inject the authenticated user into context for DoCtx
// ---------------------------------------------------------------------------

func userCtx(ownerID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.ContextKeyUserID, ownerID)
}

// ---------------------------------------------------------------------------
// Mock TaskService
// ---------------------------------------------------------------------------

type mockTaskService struct {
	createFunc        func(ctx context.Context, ownerID uuid.UUID, in task.CreateInput) (*domain.Task, error)
	getFunc           func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	listFunc          func(ctx context.Context, ownerID uuid.UUID, sort domain.TaskSort, limit, offset int) ([]*domain.Task, int64, error)
	updateFunc        func(ctx context.Context, ownerID, id uuid.UUID, in task.UpdateInput) (*domain.Task, error)
	performActionFunc func(ctx context.Context, ownerID, id uuid.UUID, action domain.ActionType) (*domain.Task, error)
	deleteFunc        func(ctx context.Context, ownerID, id uuid.UUID) error
	previewFunc       func(ctx context.Context, in task.PreviewInput) (domain.Date, error)
	dashboardFunc     func(ctx context.Context, ownerID uuid.UUID) (*task.Dashboard, error)
	statisticsFunc    func(ctx context.Context, ownerID uuid.UUID) (*task.Statistics, error)
}

func (m *mockTaskService) Create(ctx context.Context, ownerID uuid.UUID, in task.CreateInput) (*domain.Task, error) {
	return m.createFunc(ctx, ownerID, in)
}

func (m *mockTaskService) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	return m.getFunc(ctx, ownerID, id)
}

func (m *mockTaskService) List(ctx context.Context, ownerID uuid.UUID, sort domain.TaskSort, limit, offset int) ([]*domain.Task, int64, error) {
	return m.listFunc(ctx, ownerID, sort, limit, offset)
}

func (m *mockTaskService) Update(ctx context.Context, ownerID, id uuid.UUID, in task.UpdateInput) (*domain.Task, error) {
	return m.updateFunc(ctx, ownerID, id, in)
}

func (m *mockTaskService) PerformAction(ctx context.Context, ownerID, id uuid.UUID, action domain.ActionType) (*domain.Task, error) {
	return m.performActionFunc(ctx, ownerID, id, action)
}

func (m *mockTaskService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.deleteFunc(ctx, ownerID, id)
}

func (m *mockTaskService) Preview(ctx context.Context, in task.PreviewInput) (domain.Date, error) {
	return m.previewFunc(ctx, in)
}

func (m *mockTaskService) Dashboard(ctx context.Context, ownerID uuid.UUID) (*task.Dashboard, error) {
	return m.dashboardFunc(ctx, ownerID)
}

func (m *mockTaskService) Statistics(ctx context.Context, ownerID uuid.UUID) (*task.Statistics, error) {
	return m.statisticsFunc(ctx, ownerID)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc     func(ctx context.Context, email, password, name string) (*domain.User, error)
	loginFunc        func(ctx context.Context, email, password string) (string, string, error)
	refreshTokenFunc func(ctx context.Context, refreshToken string) (string, error)
	getUserFunc      func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	return m.registerFunc(ctx, email, password, name)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.getUserFunc(ctx, userID)
}
