package task

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/cadence/internal/domain"
	"github.com/gosuda/cadence/internal/schedule"
)

// Service drives the task lifecycle: create, patch-style update with
// conditional reschedule, complete/skip actions, and delete. Every
// operation captures "today" exactly once so a transition cannot straddle a
// date rollover.
type Service struct {
	repo   domain.TaskRepository
	engine *schedule.Engine
	clock  schedule.Clock
	cache  DashboardCache // may be nil
}

// NewService creates a task lifecycle service. cache may be nil to disable
// dashboard caching.
func NewService(repo domain.TaskRepository, engine *schedule.Engine, clock schedule.Clock, cache DashboardCache) *Service {
	return &Service{repo: repo, engine: engine, clock: clock, cache: cache}
}

// CreateInput carries the client-settable fields of a new task.
// NextDueDate is always computed here, never accepted from the caller.
type CreateInput struct {
	Title              string
	Description        *string
	IntervalValue      int
	IntervalUnit       domain.IntervalUnit
	PreferredDayOfWeek *int
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)

	ve := &domain.ValidationError{}
	validateTitle(ve, title)
	validateDescription(ve, in.Description)
	validateInterval(ve, in.IntervalValue, in.IntervalUnit)
	validateWeekday(ve, in.PreferredDayOfWeek)
	if err := ve.Err(); err != nil {
		return nil, fmt.Errorf("task.Create: %w", err)
	}

	today := s.clock.Today()
	nextDue, err := s.engine.NextDueDate(today, in.IntervalValue, in.IntervalUnit, in.PreferredDayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("task.Create: %w", err)
	}

	now := time.Now().UTC()
	t := &domain.Task{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		Title:              title,
		Description:        normalizeDescription(in.Description),
		IntervalValue:      in.IntervalValue,
		IntervalUnit:       in.IntervalUnit,
		PreferredDayOfWeek: in.PreferredDayOfWeek,
		NextDueDate:        nextDue,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("task.Create: %w", err)
	}

	s.invalidateDashboard(ctx, ownerID)

	return t, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	t, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("task.Get: %w", err)
	}
	return t, nil
}

// List returns a page of the owner's tasks plus the total count.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, sort domain.TaskSort, limit, offset int) ([]*domain.Task, int64, error) {
	ve := &domain.ValidationError{}
	if limit < 1 || limit > 100 {
		ve.Add("limit", "must be between 1 and 100")
	}
	if offset < 0 {
		ve.Add("offset", "must be non-negative")
	}
	if sort.Field != domain.SortByNextDueDate && sort.Field != domain.SortByTitle {
		ve.Add("sort", "must be next_due_date or title")
	}
	if err := ve.Err(); err != nil {
		return nil, 0, fmt.Errorf("task.List: %w", err)
	}

	items, total, err := s.repo.List(ctx, ownerID, sort, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("task.List: %w", err)
	}
	return items, total, nil
}

// UpdateInput is a patch: nil pointers leave fields untouched. Description
// and the preferred weekday are nullable columns, so clearing them is a
// separate flag rather than a nil pointer.
type UpdateInput struct {
	Title              *string
	Description        *string
	ClearDescription   bool
	IntervalValue      *int
	IntervalUnit       *domain.IntervalUnit
	PreferredDayOfWeek *int
	ClearPreferredDay  bool
}

func (in UpdateInput) empty() bool {
	return in.Title == nil && in.Description == nil && !in.ClearDescription &&
		in.IntervalValue == nil && in.IntervalUnit == nil &&
		in.PreferredDayOfWeek == nil && !in.ClearPreferredDay
}

// affectsSchedule reports whether any scheduling parameter was supplied.
// Supplying one triggers a recompute from today even when the value is
// unchanged; this reset-on-reschedule policy is deliberate.
func (in UpdateInput) affectsSchedule() bool {
	return in.IntervalValue != nil || in.IntervalUnit != nil ||
		in.PreferredDayOfWeek != nil || in.ClearPreferredDay
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (*domain.Task, error) {
	if in.empty() {
		ve := &domain.ValidationError{}
		ve.Add("body", "no fields provided")
		return nil, fmt.Errorf("task.Update: %w", ve)
	}

	ve := &domain.ValidationError{}
	var title string
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
		validateTitle(ve, title)
	}
	if in.Description != nil {
		validateDescription(ve, in.Description)
	}
	if in.IntervalValue != nil && (*in.IntervalValue < domain.IntervalValueMin || *in.IntervalValue > domain.IntervalValueMax) {
		ve.Add("interval_value", "must be between 1 and 999")
	}
	if in.IntervalUnit != nil && !in.IntervalUnit.Valid() {
		ve.Add("interval_unit", "must be one of: days, weeks, months, years")
	}
	validateWeekday(ve, in.PreferredDayOfWeek)
	if err := ve.Err(); err != nil {
		return nil, fmt.Errorf("task.Update: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("task.Update: %w", err)
	}

	if in.Title != nil {
		existing.Title = title
	}
	if in.ClearDescription {
		existing.Description = nil
	} else if in.Description != nil {
		existing.Description = normalizeDescription(in.Description)
	}
	if in.IntervalValue != nil {
		existing.IntervalValue = *in.IntervalValue
	}
	if in.IntervalUnit != nil {
		existing.IntervalUnit = *in.IntervalUnit
	}
	if in.ClearPreferredDay {
		existing.PreferredDayOfWeek = nil
	} else if in.PreferredDayOfWeek != nil {
		existing.PreferredDayOfWeek = in.PreferredDayOfWeek
	}

	if in.affectsSchedule() {
		today := s.clock.Today()
		nextDue, err := s.engine.NextDueDate(today, existing.IntervalValue, existing.IntervalUnit, existing.PreferredDayOfWeek)
		if err != nil {
			return nil, fmt.Errorf("task.Update: %w", err)
		}
		existing.NextDueDate = nextDue
	}

	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("task.Update: %w", err)
	}

	s.invalidateDashboard(ctx, ownerID)

	return existing, nil
}

// PerformAction records a completion or skip and advances the due date from
// today using the task's current interval parameters. The two action types
// schedule identically; only the recorded history differs.
func (s *Service) PerformAction(ctx context.Context, ownerID, id uuid.UUID, action domain.ActionType) (*domain.Task, error) {
	if !action.Valid() {
		ve := &domain.ValidationError{}
		ve.Add("action", "must be completed or skipped")
		return nil, fmt.Errorf("task.PerformAction: %w", ve)
	}

	existing, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("task.PerformAction: %w", err)
	}

	today := s.clock.Today()
	nextDue, err := s.engine.NextDueDate(today, existing.IntervalValue, existing.IntervalUnit, existing.PreferredDayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("task.PerformAction: %w", err)
	}

	actionDate := today
	existing.LastActionDate = &actionDate
	existing.LastActionType = &action
	existing.NextDueDate = nextDue
	switch action {
	case domain.ActionCompleted:
		existing.CompletedCount++
	case domain.ActionSkipped:
		existing.SkippedCount++
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("task.PerformAction: %w", err)
	}

	s.invalidateDashboard(ctx, ownerID)

	return existing, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("task.Delete: %w", err)
	}

	s.invalidateDashboard(ctx, ownerID)

	return nil
}

// PreviewInput carries interval parameters for a dry-run computation.
type PreviewInput struct {
	IntervalValue      int
	IntervalUnit       domain.IntervalUnit
	PreferredDayOfWeek *int
}

// Preview computes the due date the engine would assign for the given
// parameters without touching the store. Backs the form preview.
func (s *Service) Preview(ctx context.Context, in PreviewInput) (domain.Date, error) {
	_ = ctx

	ve := &domain.ValidationError{}
	validateInterval(ve, in.IntervalValue, in.IntervalUnit)
	validateWeekday(ve, in.PreferredDayOfWeek)
	if err := ve.Err(); err != nil {
		return domain.Date{}, fmt.Errorf("task.Preview: %w", err)
	}

	next, err := s.engine.NextDueDate(s.clock.Today(), in.IntervalValue, in.IntervalUnit, in.PreferredDayOfWeek)
	if err != nil {
		return domain.Date{}, fmt.Errorf("task.Preview: %w", err)
	}
	return next, nil
}

// Statistics summarizes an owner's task history for the profile page.
type Statistics struct {
	TotalTasks           int64 `json:"total_tasks"`
	CompletedCount       int64 `json:"completed_count"`
	SkippedCount         int64 `json:"skipped_count"`
	IsOnboardingComplete bool  `json:"is_onboarding_complete"`
}

func (s *Service) Statistics(ctx context.Context, ownerID uuid.UUID) (*Statistics, error) {
	total, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("task.Statistics: %w", err)
	}

	totals, err := s.repo.ActionTotals(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("task.Statistics: %w", err)
	}

	return &Statistics{
		TotalTasks:           total,
		CompletedCount:       totals.Completed,
		SkippedCount:         totals.Skipped,
		IsOnboardingComplete: total > 0,
	}, nil
}

func (s *Service) invalidateDashboard(ctx context.Context, ownerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		log.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("task: dashboard cache invalidation failed")
	}
}

func normalizeDescription(desc *string) *string {
	// Empty and absent both mean "no description".
	if desc == nil || *desc == "" {
		return nil
	}
	return desc
}

// Length limits count characters, not bytes, matching the char_length
// constraints in the schema.
func validateTitle(ve *domain.ValidationError, trimmed string) {
	if trimmed == "" {
		ve.Add("title", "cannot be empty")
	} else if utf8.RuneCountInString(trimmed) > domain.TitleMaxLen {
		ve.Add("title", "must not exceed 256 characters")
	}
}

func validateDescription(ve *domain.ValidationError, desc *string) {
	if desc != nil && utf8.RuneCountInString(*desc) > domain.DescriptionMaxLen {
		ve.Add("description", "must not exceed 5000 characters")
	}
}

func validateInterval(ve *domain.ValidationError, value int, unit domain.IntervalUnit) {
	if value < domain.IntervalValueMin || value > domain.IntervalValueMax {
		ve.Add("interval_value", "must be between 1 and 999")
	}
	if !unit.Valid() {
		ve.Add("interval_unit", "must be one of: days, weeks, months, years")
	}
}

func validateWeekday(ve *domain.ValidationError, day *int) {
	if day != nil && (*day < 0 || *day > 6) {
		ve.Add("preferred_day_of_week", "must be between 0 (Sunday) and 6 (Saturday)")
	}
}
