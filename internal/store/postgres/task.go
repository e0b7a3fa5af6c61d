package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/cadence/internal/domain"
)

const taskColumns = `id, owner_id, title, description, interval_value, interval_unit,
	        preferred_day_of_week, next_due_date, last_action_date, last_action_type,
	        completed_count, skipped_count, created_at, updated_at`

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tasks (id, owner_id, title, description, interval_value, interval_unit,
		        preferred_day_of_week, next_due_date, last_action_date, last_action_type,
		        completed_count, skipped_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		t.ID, t.OwnerID, t.Title, t.Description, t.IntervalValue, t.IntervalUnit,
		t.PreferredDayOfWeek, t.NextDueDate.Time(), nullDate(t.LastActionDate), t.LastActionType,
		t.CompletedCount, t.SkippedCount, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Create: %w", err)
	}

	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks WHERE owner_id = $1 AND id = $2`,
		ownerID, id,
	)

	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", err)
	}

	return t, nil
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, interval_value = $3, interval_unit = $4,
		        preferred_day_of_week = $5, next_due_date = $6, last_action_date = $7,
		        last_action_type = $8, completed_count = $9, skipped_count = $10, updated_at = $11
		 WHERE owner_id = $12 AND id = $13`,
		t.Title, t.Description, t.IntervalValue, t.IntervalUnit,
		t.PreferredDayOfWeek, t.NextDueDate.Time(), nullDate(t.LastActionDate),
		t.LastActionType, t.CompletedCount, t.SkippedCount, t.UpdatedAt,
		t.OwnerID, t.ID,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE owner_id = $1 AND id = $2`,
		ownerID, id,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) List(ctx context.Context, ownerID uuid.UUID, sort domain.TaskSort, limit, offset int) ([]*domain.Task, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM tasks WHERE owner_id = $1`,
		ownerID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("taskRepo.List: count: %w", err)
	}

	orderBy, err := orderClause(sort)
	if err != nil {
		return nil, 0, fmt.Errorf("taskRepo.List: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks WHERE owner_id = $1
		 ORDER BY `+orderBy+`
		 LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("taskRepo.List: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows, "taskRepo.List")
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *TaskRepo) DueBefore(ctx context.Context, ownerID uuid.UUID, cutoff domain.Date) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks WHERE owner_id = $1 AND next_due_date < $2
		 ORDER BY next_due_date, created_at`,
		ownerID, cutoff.Time(),
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.DueBefore: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.DueBefore")
}

func (r *TaskRepo) DueBetween(ctx context.Context, ownerID uuid.UUID, from, to domain.Date) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks WHERE owner_id = $1 AND next_due_date >= $2 AND next_due_date <= $3
		 ORDER BY next_due_date, created_at`,
		ownerID, from.Time(), to.Time(),
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.DueBetween: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.DueBetween")
}

func (r *TaskRepo) FirstDueAfter(ctx context.Context, ownerID uuid.UUID, after domain.Date) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks WHERE owner_id = $1 AND next_due_date > $2
		 ORDER BY next_due_date, created_at
		 LIMIT 1`,
		ownerID, after.Time(),
	)

	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("taskRepo.FirstDueAfter: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("taskRepo.FirstDueAfter: %w", err)
	}

	return t, nil
}

func (r *TaskRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM tasks WHERE owner_id = $1`,
		ownerID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("taskRepo.CountByOwner: %w", err)
	}

	return total, nil
}

func (r *TaskRepo) ActionTotals(ctx context.Context, ownerID uuid.UUID) (domain.ActionTotals, error) {
	var totals domain.ActionTotals
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(completed_count), 0), COALESCE(SUM(skipped_count), 0)
		 FROM tasks WHERE owner_id = $1`,
		ownerID,
	).Scan(&totals.Completed, &totals.Skipped)
	if err != nil {
		return domain.ActionTotals{}, fmt.Errorf("taskRepo.ActionTotals: %w", err)
	}

	return totals, nil
}

// orderClause maps the structured sort to a whitelisted ORDER BY fragment.
// Ties break by created_at so equal due dates keep insertion order.
func orderClause(sort domain.TaskSort) (string, error) {
	var col string
	switch sort.Field {
	case domain.SortByNextDueDate:
		col = "next_due_date"
	case domain.SortByTitle:
		col = "title"
	default:
		return "", fmt.Errorf("unsupported sort field %q", sort.Field)
	}

	if sort.Desc {
		return col + " DESC, created_at", nil
	}
	return col + ", created_at", nil
}

func nullDate(d *domain.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t          domain.Task
		due        time.Time
		lastAction *time.Time
	)

	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.IntervalValue, &t.IntervalUnit,
		&t.PreferredDayOfWeek, &due, &lastAction, &t.LastActionType,
		&t.CompletedCount, &t.SkippedCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.NextDueDate = domain.DateOf(due)
	if lastAction != nil {
		d := domain.DateOf(*lastAction)
		t.LastActionDate = &d
	}

	return &t, nil
}

func scanTasks(rows pgx.Rows, caller string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return tasks, nil
}
