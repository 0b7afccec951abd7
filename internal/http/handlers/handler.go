package handlers

import (
	"todo_webapp/internal/service"
)

type Handler struct {
	Tasks *service.TaskService
}

func NewHandler(tasks *service.TaskService) *Handler {
	return &Handler{Tasks: tasks}
}
