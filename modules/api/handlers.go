package api

import (
	"errors"

	"github.com/example/task-tracker/modules/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP request handlers for task operations.
type Handlers struct {
	tasks   task.TaskPort
	schemas *bodySchemas
	logger  types.Logger
	port    int
}

// NewHandlers creates a new handlers instance.
func NewHandlers(tasks task.TaskPort, logger types.Logger, port int) (*Handlers, error) {
	schemas, err := compileBodySchemas()
	if err != nil {
		return nil, err
	}
	return &Handlers{
		tasks:   tasks,
		schemas: schemas,
		logger:  logger,
		port:    port,
	}, nil
}

// CreateTask handles POST /tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	in, err := h.schemas.decodeCreateInput(c.Body())
	if err != nil {
		return h.fail(c, err)
	}

	created, err := h.tasks.CreateTask(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(created)
}

// ListTasks handles GET /tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.ListTasks(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tasks)
}

// GetTask handles GET /tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	id, err := parseTaskID(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	t, err := h.tasks.GetTask(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(t)
}

// UpdateTask handles PUT /tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	id, err := parseTaskID(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	in, err := h.schemas.decodeUpdateInput(c.Body())
	if err != nil {
		return h.fail(c, err)
	}

	updated, err := h.tasks.UpdateTask(c.UserContext(), id, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(updated)
}

// DeleteTask handles DELETE /tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	id, err := parseTaskID(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	deleted, err := h.tasks.DeleteTask(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(DeleteTaskResponse{
		Message: "task deleted",
		Task:    deleted,
	})
}

// Stats handles GET /stats.
func (h *Handlers) Stats(c *fiber.Ctx) error {
	stats, err := h.tasks.TaskStats(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   h.port,
		},
	})
}

// RouteNotFound answers every request no route matched.
func (h *Handlers) RouteNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: msgRouteNotFound})
}

// fail maps validation and not-found errors to responses. Anything else is
// returned to Fiber's error handler and becomes a 500.
func (h *Handlers) fail(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: verr.Message})
	case errors.Is(err, task.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: msgTaskNotFound})
	default:
		return err
	}
}
