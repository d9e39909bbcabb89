package api

import domain "github.com/example/task-tracker/domain/task"

// createTaskRequest is the HTTP body for POST /tasks.
// Pointer fields distinguish absent from zero values.
type createTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// updateTaskRequest is the HTTP body for PUT /tasks/:id.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// DeleteTaskResponse is the HTTP response for a deleted task.
type DeleteTaskResponse struct {
	Message string      `json:"message"`
	Task    domain.Task `json:"task"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for every error.
type ErrorResponse struct {
	Error string `json:"error"`
}
