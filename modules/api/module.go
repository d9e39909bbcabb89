package api

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/example/task-tracker/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const requestIDKey = "requestid"

// Module is the driving adapter that exposes the task REST endpoints.
type Module struct {
	app      *fiber.App
	handlers *Handlers
	tasks    task.TaskPort
	port     int
	logger   types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new API module listening on port.
func NewModule(port int, logger types.Logger) *Module {
	return &Module{
		port:   port,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// SetTaskPort sets the task service the handlers delegate to.
func (m *Module) SetTaskPort(tasks task.TaskPort) {
	m.tasks = tasks
}

// Start builds the Fiber app and starts listening.
func (m *Module) Start(ctx context.Context) error {
	app, err := m.newApp()
	if err != nil {
		return err
	}
	m.app = app

	addr := fmt.Sprintf(":%d", m.port)
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			errCh <- err
		}
	}()

	// Catch immediate startup errors (port in use, permission denied)
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}

	m.logger.Info("HTTP server started", "addr", addr)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *Module) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	m.logger.Info("HTTP server stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "HTTP server not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// newApp builds the Fiber app with middleware and routes, without listening.
func (m *Module) newApp() (*fiber.App, error) {
	if m.tasks == nil {
		return nil, fmt.Errorf("task port dependency not set")
	}

	handlers, err := NewHandlers(m.tasks, m.logger, m.port)
	if err != nil {
		return nil, fmt.Errorf("failed to create handlers: %w", err)
	}
	m.handlers = handlers

	app := fiber.New(fiber.Config{
		AppName:               "Task Tracker",
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: m.logPanic,
	}))
	app.Use(requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency} ${locals:requestid}\n",
	}))
	app.Use(cors.New())

	m.registerRoutes(app)
	return app, nil
}

// registerRoutes sets up all HTTP routes. The catch-all must stay last.
func (m *Module) registerRoutes(app *fiber.App) {
	app.Get("/health", m.handlers.HealthCheck)

	tasks := app.Group("/tasks")
	tasks.Post("/", m.handlers.CreateTask)
	tasks.Get("/", m.handlers.ListTasks)
	tasks.Get("/:id", m.handlers.GetTask)
	tasks.Put("/:id", m.handlers.UpdateTask)
	tasks.Delete("/:id", m.handlers.DeleteTask)

	app.Get("/stats", m.handlers.Stats)

	app.Use(m.handlers.RouteNotFound)
}

// errorHandler turns unhandled errors into a generic 500. Fiber's own
// client errors (e.g. 413) keep their status and message.
func (m *Module) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(ErrorResponse{Error: fe.Message})
	}

	m.logger.Error("Unhandled request error",
		"method", c.Method(),
		"path", c.Path(),
		"requestID", c.Locals(requestIDKey),
		"error", err)

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: msgInternal})
}

func (m *Module) logPanic(c *fiber.Ctx, e any) {
	m.logger.Error("Recovered from panic",
		"method", c.Method(),
		"path", c.Path(),
		"panic", e,
		"stack", string(debug.Stack()))
}
