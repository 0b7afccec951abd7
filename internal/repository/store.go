package repository

import (
	"context"

	"todo_webapp/internal/domain"
)

// Store is implemented by every task repository backend.
type Store interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, title string) (*domain.Task, error)
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*SQLTaskRepository)(nil)
	_ Store = (*PgTaskRepository)(nil)
)
