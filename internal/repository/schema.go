package repository

import (
	"fmt"
	"strings"

	"todo_webapp/internal/domain"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

var schemas = map[Dialect]string{
	DialectSQLite: `CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT 0
)`,
	DialectMySQL: `CREATE TABLE IF NOT EXISTS tasks (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    title TEXT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT 0
)`,
	DialectPostgres: `CREATE TABLE IF NOT EXISTS tasks (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT FALSE
)`,
}

// Schema returns the CREATE TABLE statement for the tasks table in d.
func Schema(d Dialect) (string, error) {
	s, ok := schemas[d]
	if !ok {
		return "", fmt.Errorf("unknown dialect %q", d)
	}
	return s, nil
}

func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// buildUpdate turns a non-empty patch into a parameterized UPDATE covering only
// the supplied columns. The id is always the last argument.
func buildUpdate(d Dialect, id int64, p domain.TaskPatch) (string, []any) {
	var (
		sets []string
		args []any
	)
	if p.Title != nil {
		args = append(args, *p.Title)
		sets = append(sets, "title = "+d.placeholder(len(args)))
	}
	if p.Completed != nil {
		args = append(args, *p.Completed)
		sets = append(sets, "completed = "+d.placeholder(len(args)))
	}
	args = append(args, id)
	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = " + d.placeholder(len(args))
	return query, args
}
