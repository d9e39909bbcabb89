package api

// Client-facing error messages.
const (
	msgInvalidTaskID      = "invalid task id: must be a positive integer"
	msgTaskNotFound       = "task not found"
	msgRouteNotFound      = "route not found"
	msgInternal           = "internal server error"
	msgInvalidJSON        = "request body must be valid JSON"
	msgBodyNotObject      = "request body must be a JSON object"
	msgTitleRequired      = "title is required and must be a non-empty string"
	msgTitleInvalid       = "title must be a non-empty string"
	msgDescriptionInvalid = "description must be a string"
	msgCompletedInvalid   = "completed must be a boolean"
)

// ValidationError reports client input rejected before the store is touched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
