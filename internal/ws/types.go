package ws

const (
	// server - client
	MsgReady = "ready"

	// events carry domain.EventType values: task.created, task.updated, task.deleted
)
