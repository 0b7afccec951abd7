package repository

import (
	"context"
	"fmt"

	"todo_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgTaskRepository struct {
	db *pgxpool.Pool
}

func NewPgTaskRepository(db *pgxpool.Pool) *PgTaskRepository {
	return &PgTaskRepository{db: db}
}

func (r *PgTaskRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemas[DialectPostgres]); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

func (r *PgTaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, completed FROM tasks ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed); err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *PgTaskRepository) Create(ctx context.Context, title string) (*domain.Task, error) {
	t := &domain.Task{Title: title}
	err := r.db.QueryRow(ctx, `INSERT INTO tasks (title) VALUES ($1) RETURNING id, completed`, title).Scan(&t.ID, &t.Completed)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PgTaskRepository) Update(ctx context.Context, id int64, patch domain.TaskPatch) (int64, error) {
	if patch.Empty() {
		var n int64
		err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE id = $1`, id).Scan(&n)
		return n, err
	}

	query, args := buildUpdate(DialectPostgres, id, patch)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgTaskRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgTaskRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PgTaskRepository) Close() error {
	r.db.Close()
	return nil
}
