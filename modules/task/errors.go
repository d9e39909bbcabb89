package task

import "errors"

// ErrTaskNotFound is returned when no task with the requested id exists.
var ErrTaskNotFound = errors.New("task not found")
