// Package main provides the paperflow API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/paperflow-io/paperflow/pkg/definitions"
	"github.com/paperflow-io/paperflow/pkg/eventbus"
	"github.com/paperflow-io/paperflow/pkg/history"
	"github.com/paperflow-io/paperflow/pkg/registry"
	"github.com/paperflow-io/paperflow/pkg/web"
	"github.com/paperflow-io/paperflow/pkg/workflow"
)

type API struct {
	logger      *slog.Logger
	definitions *definitions.Store
	history     history.Store
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	definitionStore *definitions.Store,
	historyStore history.Store,
	toolRegistry *registry.Registry,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		logger:      logger,
		definitions: definitionStore,
		history:     historyStore,
		registry:    toolRegistry,
		eventBus:    eventBus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	executor := workflow.NewExecutor(
		a.logger,
		a.definitions,
		a.registry,
		a.history,
		workflow.WithEventBus(a.eventBus),
	)

	handlers := web.NewAPIHandlers(a.definitions, executor, a.history, a.registry, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Paperflow API")
	})

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Get("/:name", handlers.GetWorkflow)
	w.Post("/:name/trigger", handlers.TriggerWorkflow)

	e := app.Group("/executions")
	e.Get("/", handlers.GetExecutions)
	e.Get("/:id", handlers.GetExecution)

	app.Get("/tools", handlers.GetTools)
	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
