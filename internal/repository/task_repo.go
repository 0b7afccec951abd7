package repository

import (
	"context"
	"database/sql"
	"fmt"

	"todo_webapp/internal/domain"
)

// SQLTaskRepository serves the sqlite and mysql dialects through database/sql.
type SQLTaskRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLTaskRepository(db *sql.DB, dialect Dialect) *SQLTaskRepository {
	return &SQLTaskRepository{db: db, dialect: dialect}
}

// Migrate creates the tasks table if it does not exist yet.
func (r *SQLTaskRepository) Migrate(ctx context.Context) error {
	schema, err := Schema(r.dialect)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

func (r *SQLTaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, completed FROM tasks ORDER BY id DESC`)
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

func (r *SQLTaskRepository) Create(ctx context.Context, title string) (*domain.Task, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO tasks (title) VALUES (?)`, title)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Task{ID: id, Title: title, Completed: false}, nil
}

// Update returns the number of rows matched by id. An empty patch writes
// nothing and only reports whether the row exists.
func (r *SQLTaskRepository) Update(ctx context.Context, id int64, patch domain.TaskPatch) (int64, error) {
	if patch.Empty() {
		var n int64
		err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE id = ?`, id).Scan(&n)
		return n, err
	}

	query, args := buildUpdate(r.dialect, id, patch)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLTaskRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLTaskRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLTaskRepository) Close() error {
	return r.db.Close()
}
