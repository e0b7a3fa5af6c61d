package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/cadence/internal/domain"
	"github.com/gosuda/cadence/internal/server/middleware"
	"github.com/gosuda/cadence/internal/task"
)

// OverdueTask is a task whose due date has passed.
type OverdueTask struct {
	Task
	DaysOverdue int `json:"days_overdue" doc:"Days since the task was due"`
}

// UpcomingTask is a task due today or within the next seven days.
type UpcomingTask struct {
	Task
	DaysUntilDue int `json:"days_until_due" doc:"Days until the task is due"`
}

// NextTask is the nearest future task, present only when nothing is overdue
// or upcoming.
type NextTask struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	NextDueDate  domain.Date `json:"next_due_date"`
	DaysUntilDue int         `json:"days_until_due"`
}

type DashboardSummary struct {
	TotalOverdue  int   `json:"total_overdue"`
	TotalUpcoming int   `json:"total_upcoming"`
	TotalTasks    int64 `json:"total_tasks"`
}

type DashboardOutput struct {
	Body struct {
		Overdue  []OverdueTask    `json:"overdue"`
		Upcoming []UpcomingTask   `json:"upcoming"`
		NextTask *NextTask        `json:"next_task,omitempty"`
		Summary  DashboardSummary `json:"summary"`
	}
}

func RegisterDashboardRoutes(api huma.API, svc TaskService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/dashboard",
		Summary:     "Get the overdue/upcoming/next dashboard",
		Tags:        []string{"Dashboard"},
	}, func(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		d, err := svc.Dashboard(ctx, ownerID)
		if err != nil {
			return nil, serviceError(err, "failed to build dashboard")
		}

		out := &DashboardOutput{}
		out.Body.Overdue = make([]OverdueTask, 0, len(d.Overdue))
		for _, o := range d.Overdue {
			out.Body.Overdue = append(out.Body.Overdue, OverdueTask{
				Task:        *taskBody(&o.Task),
				DaysOverdue: o.DaysOverdue,
			})
		}
		out.Body.Upcoming = make([]UpcomingTask, 0, len(d.Upcoming))
		for _, u := range d.Upcoming {
			out.Body.Upcoming = append(out.Body.Upcoming, UpcomingTask{
				Task:         *taskBody(&u.Task),
				DaysUntilDue: u.DaysUntilDue,
			})
		}
		if d.NextTask != nil {
			out.Body.NextTask = &NextTask{
				ID:           d.NextTask.ID,
				Title:        d.NextTask.Title,
				NextDueDate:  d.NextTask.NextDueDate,
				DaysUntilDue: d.NextTask.DaysUntilDue,
			}
		}
		out.Body.Summary = DashboardSummary{
			TotalOverdue:  d.Summary.TotalOverdue,
			TotalUpcoming: d.Summary.TotalUpcoming,
			TotalTasks:    d.Summary.TotalTasks,
		}
		return out, nil
	})
}

// StatisticsOutput mirrors task.Statistics for the profile page.
type StatisticsOutput struct {
	Body *task.Statistics
}

type MeOutput struct {
	Body *User
}

func RegisterProfileRoutes(api huma.API, svc TaskService, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-me",
		Method:      http.MethodGet,
		Path:        "/me",
		Summary:     "Get the current user",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, _ *struct{}) (*MeOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		user, err := authSvc.GetUser(ctx, ownerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to load user", err)
		}

		return &MeOutput{Body: userBody(user)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-statistics",
		Method:      http.MethodGet,
		Path:        "/me/statistics",
		Summary:     "Get task statistics for the current user",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, _ *struct{}) (*StatisticsOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		stats, err := svc.Statistics(ctx, ownerID)
		if err != nil {
			return nil, serviceError(err, "failed to compute statistics")
		}

		return &StatisticsOutput{Body: stats}, nil
	})
}
