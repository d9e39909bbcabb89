package activity

import (
	"context"
	"testing"
	"time"

	"github.com/example/task-tracker/events"
	"github.com/example/task-tracker/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

func TestNewModule_DefaultCapacity(t *testing.T) {
	m := NewModule(0, &mockLogger{})
	assert.Equal(t, DefaultCapacity, m.capacity)
	assert.Equal(t, "activity", m.Name())
	assert.Empty(t, m.Entries())
}

func TestHandlers_RecordEntries(t *testing.T) {
	ctx := context.Background()
	m := NewModule(10, &mockLogger{})

	require.NoError(t, m.handleTaskCreated(ctx, events.TaskCreatedEvent{TaskID: 1, Title: "Buy milk"}, nil))
	require.NoError(t, m.handleTaskUpdated(ctx, events.TaskUpdatedEvent{TaskID: 1, ChangedFields: []string{"completed"}}, nil))
	require.NoError(t, m.handleTaskUpdated(ctx, events.TaskUpdatedEvent{TaskID: 1}, nil))
	require.NoError(t, m.handleTaskDeleted(ctx, events.TaskDeletedEvent{TaskID: 1, Title: "Buy milk"}, nil))

	entries := m.Entries()
	require.Len(t, entries, 4)

	assert.Equal(t, "task_created", entries[0].Type)
	assert.Equal(t, `Task 1 created: "Buy milk"`, entries[0].Message)
	assert.Equal(t, "task_updated", entries[1].Type)
	assert.Equal(t, "Task 1 updated (completed)", entries[1].Message)
	assert.Equal(t, "Task 1 updated (no fields)", entries[2].Message)
	assert.Equal(t, "task_deleted", entries[3].Type)

	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, int64(1), e.TaskID)
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestRecord_DropsOldestAtCapacity(t *testing.T) {
	m := NewModule(3, &mockLogger{})
	for id := int64(1); id <= 5; id++ {
		m.record(id, "task_created", "created")
	}

	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, int64(3), entries[0].TaskID)
	assert.Equal(t, int64(5), entries[2].TaskID)
}

func TestEntries_ReturnsCopy(t *testing.T) {
	m := NewModule(3, &mockLogger{})
	m.record(1, "task_created", "created")

	entries := m.Entries()
	entries[0].Message = "changed"
	assert.Equal(t, "created", m.Entries()[0].Message)
}

// TestTaskEvents_ReachActivityLog runs both modules inside a mono
// application with the embedded NATS event bus.
func TestTaskEvents_ReachActivityLog(t *testing.T) {
	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError), // Suppress logs in tests
	)
	require.NoError(t, err)

	activityModule := NewModule(10, &mockLogger{})
	taskModule := task.NewModule(&mockLogger{})
	app.Register(activityModule)
	app.Register(taskModule)

	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})

	ctx := context.Background()
	svc := taskModule.Service()
	created, err := svc.CreateTask(ctx, task.CreateInput{Title: "Buy milk"})
	require.NoError(t, err)
	_, err = svc.DeleteTask(ctx, created.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(activityModule.Entries()) == 2
	}, 5*time.Second, 20*time.Millisecond)

	seen := map[string]bool{}
	for _, e := range activityModule.Entries() {
		seen[e.Type] = true
	}
	assert.True(t, seen["task_created"])
	assert.True(t, seen["task_deleted"])
}
