package task

import "time"

// Task is the core domain entity representing a tracked piece of work.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Stats aggregates the current task collection.
// MostRecent and Oldest are nil when there are no tasks.
type Stats struct {
	Total      int   `json:"total"`
	Completed  int   `json:"completed"`
	Pending    int   `json:"pending"`
	MostRecent *Task `json:"mostRecent"`
	Oldest     *Task `json:"oldest"`
}
