package v1

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/cadence/internal/domain"
	"github.com/gosuda/cadence/internal/server/middleware"
	"github.com/gosuda/cadence/internal/task"
)

// Task is the wire representation of a recurring task.
type Task struct {
	ID                 uuid.UUID           `json:"id" doc:"Task ID"`
	Title              string              `json:"title" doc:"Task title"`
	Description        *string             `json:"description,omitempty" doc:"Task description"`
	IntervalValue      int                 `json:"interval_value" doc:"Interval length"`
	IntervalUnit       domain.IntervalUnit `json:"interval_unit" doc:"Interval unit"`
	PreferredDayOfWeek *int                `json:"preferred_day_of_week,omitempty" doc:"Preferred weekday (0=Sunday)"`
	NextDueDate        domain.Date         `json:"next_due_date" doc:"Next due date"`
	LastActionDate     *domain.Date        `json:"last_action_date,omitempty" doc:"Date of the last complete/skip"`
	LastActionType     *domain.ActionType  `json:"last_action_type,omitempty" doc:"Type of the last action"`
	CompletedCount     int                 `json:"completed_count" doc:"Number of completions"`
	SkippedCount       int                 `json:"skipped_count" doc:"Number of skips"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func taskBody(t *domain.Task) *Task {
	return &Task{
		ID:                 t.ID,
		Title:              t.Title,
		Description:        t.Description,
		IntervalValue:      t.IntervalValue,
		IntervalUnit:       t.IntervalUnit,
		PreferredDayOfWeek: t.PreferredDayOfWeek,
		NextDueDate:        t.NextDueDate,
		LastActionDate:     t.LastActionDate,
		LastActionType:     t.LastActionType,
		CompletedCount:     t.CompletedCount,
		SkippedCount:       t.SkippedCount,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func taskBodies(ts []*domain.Task) []*Task {
	out := make([]*Task, 0, len(ts))
	for _, t := range ts {
		out = append(out, taskBody(t))
	}
	return out
}

// parseSort converts the query-string sort token into a structured sort.
// A leading "-" flips to descending.
func parseSort(s string) (domain.TaskSort, bool) {
	desc := strings.HasPrefix(s, "-")
	switch strings.TrimPrefix(s, "-") {
	case "next_due_date":
		return domain.TaskSort{Field: domain.SortByNextDueDate, Desc: desc}, true
	case "title":
		return domain.TaskSort{Field: domain.SortByTitle, Desc: desc}, true
	default:
		return domain.TaskSort{}, false
	}
}

type CreateTaskInput struct {
	Body struct {
		Title              string  `json:"title" maxLength:"256" doc:"Task title"`
		Description        *string `json:"description,omitempty" maxLength:"5000" doc:"Task description"`
		IntervalValue      int     `json:"interval_value" doc:"Interval length (1-999)"`
		IntervalUnit       string  `json:"interval_unit" doc:"Interval unit: days, weeks, months or years"`
		PreferredDayOfWeek *int    `json:"preferred_day_of_week,omitempty" doc:"Preferred weekday (0=Sunday .. 6=Saturday)"`
	}
}

type CreateTaskOutput struct {
	Body *Task
}

type ListTasksInput struct {
	Sort   string `query:"sort" default:"next_due_date" doc:"Sort order: next_due_date, -next_due_date, title, -title"`
	Limit  int    `query:"limit" default:"50" doc:"Page size (1-100)"`
	Offset int    `query:"offset" doc:"Page offset"`
}

type ListTasksOutput struct {
	Body struct {
		Items   []*Task `json:"items"`
		Total   int64   `json:"total" doc:"Total number of tasks for this user"`
		Limit   int     `json:"limit"`
		Offset  int     `json:"offset"`
		HasMore bool    `json:"has_more" doc:"Whether tasks remain past this page"`
	}
}

type GetTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type GetTaskOutput struct {
	Body *Task
}

type UpdateTaskInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		Title              *string `json:"title,omitempty" maxLength:"256" doc:"Task title"`
		Description        *string `json:"description,omitempty" maxLength:"5000" doc:"Task description; empty string clears it"`
		ClearDescription   bool    `json:"clear_description,omitempty" doc:"Remove the description"`
		IntervalValue      *int    `json:"interval_value,omitempty" doc:"Interval length (1-999)"`
		IntervalUnit       *string `json:"interval_unit,omitempty" doc:"Interval unit: days, weeks, months or years"`
		PreferredDayOfWeek *int    `json:"preferred_day_of_week,omitempty" doc:"Preferred weekday (0=Sunday .. 6=Saturday)"`
		ClearPreferredDay  bool    `json:"clear_preferred_day,omitempty" doc:"Remove the preferred weekday"`
	}
}

type UpdateTaskOutput struct {
	Body *Task
}

type DeleteTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type TaskActionInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type TaskActionOutput struct {
	Body *Task
}

type PreviewTaskInput struct {
	Body struct {
		IntervalValue      int    `json:"interval_value" doc:"Interval length (1-999)"`
		IntervalUnit       string `json:"interval_unit" doc:"Interval unit: days, weeks, months or years"`
		PreferredDayOfWeek *int   `json:"preferred_day_of_week,omitempty" doc:"Preferred weekday (0=Sunday .. 6=Saturday)"`
	}
}

type PreviewTaskOutput struct {
	Body struct {
		NextDueDate domain.Date `json:"next_due_date" doc:"Due date the parameters would produce"`
	}
}

func RegisterTaskRoutes(api huma.API, svc TaskService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/tasks",
		Summary:     "Create a new recurring task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskInput) (*CreateTaskOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		t, err := svc.Create(ctx, ownerID, task.CreateInput{
			Title:              input.Body.Title,
			Description:        input.Body.Description,
			IntervalValue:      input.Body.IntervalValue,
			IntervalUnit:       domain.IntervalUnit(input.Body.IntervalUnit),
			PreferredDayOfWeek: input.Body.PreferredDayOfWeek,
		})
		if err != nil {
			return nil, serviceError(err, "failed to create task")
		}

		return &CreateTaskOutput{Body: taskBody(t)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "List tasks",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ListTasksInput) (*ListTasksOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		sort, ok := parseSort(input.Sort)
		if !ok {
			return nil, huma.Error422UnprocessableEntity("validation failed", &huma.ErrorDetail{
				Location: "query.sort",
				Message:  "must be one of: next_due_date, -next_due_date, title, -title",
			})
		}

		items, total, err := svc.List(ctx, ownerID, sort, input.Limit, input.Offset)
		if err != nil {
			return nil, serviceError(err, "failed to list tasks")
		}

		out := &ListTasksOutput{}
		out.Body.Items = taskBodies(items)
		out.Body.Total = total
		out.Body.Limit = input.Limit
		out.Body.Offset = input.Offset
		out.Body.HasMore = int64(input.Offset+len(items)) < total
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/tasks/{id}",
		Summary:     "Get a task by ID",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*GetTaskOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		t, err := svc.Get(ctx, ownerID, input.ID)
		if err != nil {
			return nil, serviceError(err, "failed to get task")
		}

		return &GetTaskOutput{Body: taskBody(t)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{id}",
		Summary:     "Update a task",
		Description: "Patch semantics: absent fields are untouched. Changing any interval parameter reschedules the task from today.",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *UpdateTaskInput) (*UpdateTaskOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		in := task.UpdateInput{
			Title:              input.Body.Title,
			Description:        input.Body.Description,
			ClearDescription:   input.Body.ClearDescription,
			IntervalValue:      input.Body.IntervalValue,
			PreferredDayOfWeek: input.Body.PreferredDayOfWeek,
			ClearPreferredDay:  input.Body.ClearPreferredDay,
		}
		if input.Body.IntervalUnit != nil {
			unit := domain.IntervalUnit(*input.Body.IntervalUnit)
			in.IntervalUnit = &unit
		}

		t, err := svc.Update(ctx, ownerID, input.ID, in)
		if err != nil {
			return nil, serviceError(err, "failed to update task")
		}

		return &UpdateTaskOutput{Body: taskBody(t)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/tasks/{id}",
		Summary:     "Delete a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *DeleteTaskInput) (*struct{}, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		if err := svc.Delete(ctx, ownerID, input.ID); err != nil {
			return nil, serviceError(err, "failed to delete task")
		}

		return nil, nil
	})

	registerTaskAction(api, svc, "complete-task", "/tasks/{id}/complete",
		"Complete a task and reschedule it", domain.ActionCompleted)
	registerTaskAction(api, svc, "skip-task", "/tasks/{id}/skip",
		"Skip a task and reschedule it", domain.ActionSkipped)

	huma.Register(api, huma.Operation{
		OperationID: "preview-task-schedule",
		Method:      http.MethodPost,
		Path:        "/tasks/preview",
		Summary:     "Preview the due date for interval parameters",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *PreviewTaskInput) (*PreviewTaskOutput, error) {
		next, err := svc.Preview(ctx, task.PreviewInput{
			IntervalValue:      input.Body.IntervalValue,
			IntervalUnit:       domain.IntervalUnit(input.Body.IntervalUnit),
			PreferredDayOfWeek: input.Body.PreferredDayOfWeek,
		})
		if err != nil {
			return nil, serviceError(err, "failed to preview schedule")
		}

		out := &PreviewTaskOutput{}
		out.Body.NextDueDate = next
		return out, nil
	})
}

// registerTaskAction wires a complete/skip endpoint; the two differ only in
// the recorded action type.
func registerTaskAction(api huma.API, svc TaskService, opID, path, summary string, action domain.ActionType) {
	huma.Register(api, huma.Operation{
		OperationID: opID,
		Method:      http.MethodPost,
		Path:        path,
		Summary:     summary,
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *TaskActionInput) (*TaskActionOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		t, err := svc.PerformAction(ctx, ownerID, input.ID, action)
		if err != nil {
			return nil, serviceError(err, "failed to record task action")
		}

		return &TaskActionOutput{Body: taskBody(t)}, nil
	})
}
