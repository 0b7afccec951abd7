package domain

import "strings"

type Task struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Completed bool   `json:"completed" db:"completed"`
}

// TaskPatch lists the fields an update supplies. Nil means "leave as is".
type TaskPatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Empty reports whether the patch carries no field to write.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Completed == nil
}

// Normalize drops a blank title so an update can never clear an existing one.
func (p TaskPatch) Normalize() TaskPatch {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		p.Title = nil
	}
	return p
}

// ValidTitle reports whether title is acceptable for a new task.
func ValidTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}
