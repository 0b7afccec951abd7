package service

import (
	"context"
	"fmt"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
)

// TaskStore is the persistence the service needs.
type TaskStore interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, title string) (*domain.Task, error)
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Notifier receives an event after each successful mutation.
type Notifier interface {
	Publish(ev domain.Event)
}

// TaskService maps each call onto exactly one store operation.
type TaskService struct {
	store    TaskStore
	notifier Notifier
}

// NewTaskService creates a task service. notifier may be nil.
func NewTaskService(store TaskStore, notifier Notifier) *TaskService {
	return &TaskService{store: store, notifier: notifier}
}

func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		taskOps.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	taskOps.WithLabelValues("list", "ok").Inc()
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, title string) (*domain.Task, error) {
	if !domain.ValidTitle(title) {
		taskOps.WithLabelValues("create", "invalid").Inc()
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	t, err := s.store.Create(ctx, title)
	if err != nil {
		taskOps.WithLabelValues("create", "error").Inc()
		return nil, fmt.Errorf("create task: %w", err)
	}
	taskOps.WithLabelValues("create", "ok").Inc()

	logger.WithContext(ctx).Info("task created", "task_id", t.ID)
	s.publish(domain.EventTaskCreated, t.ID)
	return t, nil
}

// Update applies patch to the task and returns the number of rows matched.
func (s *TaskService) Update(ctx context.Context, id int64, patch domain.TaskPatch) (int64, error) {
	patch = patch.Normalize()

	n, err := s.store.Update(ctx, id, patch)
	if err != nil {
		taskOps.WithLabelValues("update", "error").Inc()
		return 0, fmt.Errorf("update task %d: %w", id, err)
	}
	if n == 0 {
		taskOps.WithLabelValues("update", "not_found").Inc()
		return 0, domain.ErrNotFound
	}
	taskOps.WithLabelValues("update", "ok").Inc()

	if !patch.Empty() {
		logger.WithContext(ctx).Info("task updated", "task_id", id)
		s.publish(domain.EventTaskUpdated, id)
	}
	return n, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		taskOps.WithLabelValues("delete", "error").Inc()
		return 0, fmt.Errorf("delete task %d: %w", id, err)
	}
	if n == 0 {
		taskOps.WithLabelValues("delete", "not_found").Inc()
		return 0, domain.ErrNotFound
	}
	taskOps.WithLabelValues("delete", "ok").Inc()

	logger.WithContext(ctx).Info("task deleted", "task_id", id)
	s.publish(domain.EventTaskDeleted, id)
	return n, nil
}

func (s *TaskService) publish(t domain.EventType, id int64) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(domain.Event{Type: t, TaskID: id})
}
