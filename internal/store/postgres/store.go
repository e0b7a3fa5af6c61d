package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/cadence/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

type Store struct {
	pool  *pgxpool.Pool
	tasks *TaskRepo
	users *UserRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:  pool,
		tasks: NewTaskRepo(pool),
		users: NewUserRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Migrate applies the embedded schema. Statements are idempotent
// (CREATE ... IF NOT EXISTS) so re-running is safe.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("postgres.Migrate: %w", err)
	}
	return nil
}

func (s *Store) Tasks() domain.TaskRepository { return s.tasks }
func (s *Store) Users() domain.UserRepository { return s.users }
