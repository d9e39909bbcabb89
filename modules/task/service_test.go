package task

import (
	"context"
	"errors"
	"testing"

	"github.com/go-monolith/mono/pkg/types"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any)         {}
func (m *mockLogger) Info(_ string, _ ...any)          {}
func (m *mockLogger) Warn(_ string, _ ...any)          {}
func (m *mockLogger) Error(_ string, _ ...any)         {}
func (m *mockLogger) With(_ ...any) types.Logger       { return m }
func (m *mockLogger) WithModule(_ string) types.Logger { return m }
func (m *mockLogger) WithError(_ error) types.Logger   { return m }

func TestService_CRUDWithoutEventBus(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStore(), &mockLogger{})

	created, err := svc.CreateTask(ctx, CreateInput{Title: "Write tests"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if created.ID != 1 {
		t.Errorf("CreateTask() id = %d, want 1", created.ID)
	}

	got, err := svc.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if got != created {
		t.Errorf("GetTask() = %+v, want %+v", got, created)
	}

	updated, err := svc.UpdateTask(ctx, created.ID, UpdateInput{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if !updated.Completed {
		t.Error("UpdateTask() did not set Completed")
	}

	stats, err := svc.TaskStats(ctx)
	if err != nil {
		t.Fatalf("TaskStats() error = %v", err)
	}
	if stats.Total != 1 || stats.Completed != 1 || stats.Pending != 0 {
		t.Errorf("TaskStats() = %+v", stats)
	}

	deleted, err := svc.DeleteTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if deleted.ID != created.ID {
		t.Errorf("DeleteTask() id = %d, want %d", deleted.ID, created.ID)
	}

	list, err := svc.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListTasks() len = %d, want 0", len(list))
	}
}

func TestService_NotFoundPropagates(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStore(), &mockLogger{})

	if _, err := svc.GetTask(ctx, 42); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("GetTask() error = %v, want ErrTaskNotFound", err)
	}
	if _, err := svc.UpdateTask(ctx, 42, UpdateInput{}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("UpdateTask() error = %v, want ErrTaskNotFound", err)
	}
	if _, err := svc.DeleteTask(ctx, 42); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("DeleteTask() error = %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateInput_ChangedFields(t *testing.T) {
	tests := []struct {
		name  string
		input UpdateInput
		want  []string
	}{
		{"none", UpdateInput{}, []string{}},
		{"completed", UpdateInput{Completed: boolPtr(false)}, []string{"completed"}},
		{"all", UpdateInput{Title: strPtr("t"), Description: strPtr(""), Completed: boolPtr(true)},
			[]string{"title", "description", "completed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.changedFields()
			if len(got) != len(tt.want) {
				t.Fatalf("changedFields() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("changedFields()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestModule_Lifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewModule(&mockLogger{})

	if m.Name() != "task" {
		t.Errorf("Name() = %q, want task", m.Name())
	}
	if len(m.EmitEvents()) != 3 {
		t.Errorf("EmitEvents() len = %d, want 3", len(m.EmitEvents()))
	}
	if m.Service() == nil {
		t.Fatal("Service() = nil")
	}
	if err := m.Start(ctx); err != nil {
		t.Errorf("Start() error = %v", err)
	}
	if err := m.Stop(ctx); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
