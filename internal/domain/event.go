package domain

type EventType string

const (
	EventTaskCreated EventType = "task.created"
	EventTaskUpdated EventType = "task.updated"
	EventTaskDeleted EventType = "task.deleted"
)

// Event is broadcast on the change feed after a successful mutation.
type Event struct {
	Type   EventType `json:"type"`
	TaskID int64     `json:"task_id"`
}
