package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/gosuda/cadence/internal/domain"
	"github.com/gosuda/cadence/internal/task"
)

// TaskService abstracts the task lifecycle for handler testing.
// *task.Service satisfies this interface.
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in task.CreateInput) (*domain.Task, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, sort domain.TaskSort, limit, offset int) ([]*domain.Task, int64, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in task.UpdateInput) (*domain.Task, error)
	PerformAction(ctx context.Context, ownerID, id uuid.UUID, action domain.ActionType) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Preview(ctx context.Context, in task.PreviewInput) (domain.Date, error)
	Dashboard(ctx context.Context, ownerID uuid.UUID) (*task.Dashboard, error)
	Statistics(ctx context.Context, ownerID uuid.UUID) (*task.Statistics, error)
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}
