package activity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/example/task-tracker/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 100

// Entry is a single recorded task activity.
type Entry struct {
	ID        string    `json:"id"`
	TaskID    int64     `json:"task_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Module consumes task events and keeps a bounded log of recent activity.
type Module struct {
	entries  []Entry
	capacity int
	mu       sync.RWMutex
	logger   types.Logger
}

var _ mono.Module = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)

// NewModule creates an activity module keeping at most capacity entries.
// A non-positive capacity falls back to DefaultCapacity.
func NewModule(capacity int, logger types.Logger) *Module {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Module{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
		logger:   logger,
	}
}

func (m *Module) Name() string {
	return "activity"
}

func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"TaskCreated.v1", "TaskUpdated.v1", "TaskDeleted.v1"})
	return nil
}

func (m *Module) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, "task_created", fmt.Sprintf("Task %d created: %q", event.TaskID, event.Title))
	return nil
}

func (m *Module) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	changed := "no fields"
	if len(event.ChangedFields) > 0 {
		changed = strings.Join(event.ChangedFields, ", ")
	}
	m.record(event.TaskID, "task_updated", fmt.Sprintf("Task %d updated (%s)", event.TaskID, changed))
	return nil
}

func (m *Module) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, "task_deleted", fmt.Sprintf("Task %d deleted: %q", event.TaskID, event.Title))
	return nil
}

// record appends an entry, dropping the oldest once capacity is reached.
func (m *Module) record(taskID int64, activityType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == m.capacity {
		copy(m.entries, m.entries[1:])
		m.entries = m.entries[:len(m.entries)-1]
	}
	m.entries = append(m.entries, Entry{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Type:      activityType,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})

	m.logger.Info("Task activity", "type", activityType, "taskID", taskID, "message", message)
}

// Entries returns recorded activity, oldest first.
func (m *Module) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Entry, len(m.entries))
	copy(result, m.entries)
	return result
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Activity module started - listening for task events")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Activity module stopped", "entries", len(m.Entries()))
	return nil
}
