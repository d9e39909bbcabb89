package task

import (
	"context"

	domain "github.com/example/task-tracker/domain/task"
)

// CreateInput carries the already validated fields of a new task.
type CreateInput struct {
	Title       string
	Description string
	Completed   bool
}

// UpdateInput carries a partial update. A nil field is left untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// changedFields lists the fields present in the update, in a fixed order.
func (in UpdateInput) changedFields() []string {
	fields := make([]string, 0, 3)
	if in.Title != nil {
		fields = append(fields, "title")
	}
	if in.Description != nil {
		fields = append(fields, "description")
	}
	if in.Completed != nil {
		fields = append(fields, "completed")
	}
	return fields
}

// TaskPort defines the task operations available to driving adapters
// such as the HTTP API.
type TaskPort interface {
	CreateTask(ctx context.Context, in CreateInput) (domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id int64) (domain.Task, error)
	UpdateTask(ctx context.Context, id int64, in UpdateInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) (domain.Task, error)
	TaskStats(ctx context.Context) (domain.Stats, error)
}
