package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/task-tracker/modules/activity"
	"github.com/example/task-tracker/modules/api"
	"github.com/example/task-tracker/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	port := getEnvInt("PORT", 3000)

	log.Println("=== Task Tracker ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	logger := app.Logger()

	activityModule := activity.NewModule(activity.DefaultCapacity, logger.WithModule("activity"))
	taskModule := task.NewModule(logger.WithModule("task"))
	apiModule := api.NewModule(port, logger.WithModule("api"))

	// The API talks to the task service directly so typed errors
	// (not found vs. internal) survive the call.
	apiModule.SetTaskPort(taskModule.Service())

	// Order: event consumer first, then the emitter, then the HTTP adapter.
	app.Register(activityModule)
	app.Register(taskModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	logger.Info("Task Tracker started",
		"url", "http://localhost:"+strconv.Itoa(port),
		"routes", []string{
			"POST /tasks",
			"GET /tasks",
			"GET /tasks/:id",
			"PUT /tasks/:id",
			"DELETE /tasks/:id",
			"GET /stats",
			"GET /health",
		})

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnvInt returns the environment variable as an int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
		log.Printf("Ignoring invalid %s=%q, using %d", key, value, defaultValue)
	}
	return defaultValue
}
