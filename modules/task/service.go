package task

import (
	"context"
	"time"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// Service is the task core domain. It owns the store and emits task events.
type Service struct {
	store    *Store
	eventBus mono.EventBus
	logger   types.Logger
}

var _ TaskPort = (*Service)(nil)

// NewService creates a task service over the given store.
func NewService(store *Store, logger types.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// CreateTask stores a new task and publishes TaskCreated.
func (s *Service) CreateTask(_ context.Context, in CreateInput) (domain.Task, error) {
	t := s.store.Create(in)

	s.publish(t.ID, "TaskCreated", func(bus mono.EventBus) error {
		return events.TaskCreatedV1.Publish(bus, events.TaskCreatedEvent{
			TaskID:    t.ID,
			Title:     t.Title,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt,
		}, nil)
	})

	return t, nil
}

// ListTasks returns all tasks in insertion order.
func (s *Service) ListTasks(_ context.Context) ([]domain.Task, error) {
	return s.store.List(), nil
}

// GetTask returns a single task.
func (s *Service) GetTask(_ context.Context, id int64) (domain.Task, error) {
	return s.store.Get(id)
}

// UpdateTask applies a partial update and publishes TaskUpdated.
func (s *Service) UpdateTask(_ context.Context, id int64, in UpdateInput) (domain.Task, error) {
	t, err := s.store.Update(id, in)
	if err != nil {
		return domain.Task{}, err
	}

	s.publish(t.ID, "TaskUpdated", func(bus mono.EventBus) error {
		return events.TaskUpdatedV1.Publish(bus, events.TaskUpdatedEvent{
			TaskID:        t.ID,
			ChangedFields: in.changedFields(),
			Completed:     t.Completed,
			UpdatedAt:     t.UpdatedAt,
		}, nil)
	})

	return t, nil
}

// DeleteTask removes a task and publishes TaskDeleted.
func (s *Service) DeleteTask(_ context.Context, id int64) (domain.Task, error) {
	t, err := s.store.Delete(id)
	if err != nil {
		return domain.Task{}, err
	}

	s.publish(t.ID, "TaskDeleted", func(bus mono.EventBus) error {
		return events.TaskDeletedV1.Publish(bus, events.TaskDeletedEvent{
			TaskID:    t.ID,
			Title:     t.Title,
			DeletedAt: time.Now().UTC(),
		}, nil)
	})

	return t, nil
}

// TaskStats returns the aggregate view of the collection.
func (s *Service) TaskStats(_ context.Context) (domain.Stats, error) {
	return s.store.Stats(), nil
}

// publish sends an event if a bus is attached. Publishing is best-effort:
// a failure is logged and never fails the operation.
func (s *Service) publish(taskID int64, name string, send func(mono.EventBus) error) {
	if s.eventBus == nil {
		return
	}
	if err := send(s.eventBus); err != nil {
		s.logger.Warn("Failed to publish task event",
			"event", name,
			"taskID", taskID,
			"error", err)
	}
}
