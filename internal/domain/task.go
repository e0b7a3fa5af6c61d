package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// IntervalUnit is the unit of a task's repetition interval.
type IntervalUnit string

const (
	IntervalDays   IntervalUnit = "days"
	IntervalWeeks  IntervalUnit = "weeks"
	IntervalMonths IntervalUnit = "months"
	IntervalYears  IntervalUnit = "years"
)

// Valid reports whether the unit is one of the four recognized values.
func (u IntervalUnit) Valid() bool {
	switch u {
	case IntervalDays, IntervalWeeks, IntervalMonths, IntervalYears:
		return true
	default:
		return false
	}
}

// ActionType records how a task was advanced. Completing and skipping have
// identical scheduling effect; only the recorded type differs.
type ActionType string

const (
	ActionCompleted ActionType = "completed"
	ActionSkipped   ActionType = "skipped"
)

func (a ActionType) Valid() bool {
	return a == ActionCompleted || a == ActionSkipped
}

// Validation bounds for task fields.
const (
	TitleMaxLen       = 256
	DescriptionMaxLen = 5000
	IntervalValueMin  = 1
	IntervalValueMax  = 999
)

// Task is a recurring chore with a repetition interval and an optional
// preferred weekday. NextDueDate is always engine-computed, never set by
// clients directly. LastActionDate and LastActionType are either both set
// or both nil.
type Task struct {
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	Title              string
	Description        *string // nil means "no description"
	IntervalValue      int     // 1..999
	IntervalUnit       IntervalUnit
	PreferredDayOfWeek *int // 0=Sunday .. 6=Saturday, nil = no preference
	NextDueDate        Date
	LastActionDate     *Date
	LastActionType     *ActionType
	CompletedCount     int
	SkippedCount       int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SortField names a column tasks can be listed by.
type SortField string

const (
	SortByNextDueDate SortField = "next_due_date"
	SortByTitle       SortField = "title"
)

// TaskSort is the structured form of a list ordering. The signed-prefix
// string ("-title") is parsed once at the API boundary; repositories only
// accept this form.
type TaskSort struct {
	Field SortField
	Desc  bool
}

// ActionTotals aggregates completion history across an owner's tasks.
type ActionTotals struct {
	Completed int64
	Skipped   int64
}

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Task, error)
	// Update writes the full row predicated on owner_id so ownership is
	// re-asserted atomically with the write.
	Update(ctx context.Context, t *Task) error
	// Delete removes the row in a single owner-predicated statement and
	// reports ErrNotFound when nothing matched.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, sort TaskSort, limit, offset int) ([]*Task, int64, error)

	// Range queries scoped to owner, ordered by next_due_date ascending.
	DueBefore(ctx context.Context, ownerID uuid.UUID, cutoff Date) ([]*Task, error)
	DueBetween(ctx context.Context, ownerID uuid.UUID, from, to Date) ([]*Task, error)
	FirstDueAfter(ctx context.Context, ownerID uuid.UUID, after Date) (*Task, error)

	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	ActionTotals(ctx context.Context, ownerID uuid.UUID) (ActionTotals, error)
}
