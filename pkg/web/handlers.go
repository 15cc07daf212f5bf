// Package web provides HTTP handlers and REST API endpoints for workflow
// management and execution.
package web

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/paperflow-io/paperflow/pkg/definitions"
	"github.com/paperflow-io/paperflow/pkg/history"
	"github.com/paperflow-io/paperflow/pkg/registry"
	"github.com/paperflow-io/paperflow/pkg/workflow"
)

type APIHandlers struct {
	definitions *definitions.Store
	executor    *workflow.Executor
	history     history.Store
	registry    *registry.Registry
	validator   *validator.Validate
}

func NewAPIHandlers(
	definitionStore *definitions.Store,
	executor *workflow.Executor,
	historyStore history.Store,
	toolRegistry *registry.Registry,
	validate *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		definitions: definitionStore,
		executor:    executor,
		history:     historyStore,
		registry:    toolRegistry,
		validator:   validate,
	}
}

// CreateWorkflowRequest carries a new workflow definition document.
type CreateWorkflowRequest struct {
	Name       string         `json:"name"       validate:"required,min=1"`
	Definition map[string]any `json:"definition" validate:"required"`
}

// TriggerWorkflowRequest carries the event payload for a manual trigger.
type TriggerWorkflowRequest struct {
	TriggerEvent string         `json:"trigger_event"`
	TriggerData  map[string]any `json:"trigger_data"`
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"workflows": h.definitions.ListSummaries(),
	})
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return badRequest(c, "Workflow name is required")
	}

	found, err := h.definitions.Get(name)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(found)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "Invalid request: "+err.Error())
	}

	if err := h.definitions.Create(req.Name, req.Definition); err != nil {
		return badRequest(c, "Invalid workflow definition: "+err.Error())
	}

	created, err := h.definitions.Get(req.Name)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) TriggerWorkflow(c fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return badRequest(c, "Workflow name is required")
	}

	var req TriggerWorkflowRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return badRequest(c, "Invalid request body: "+err.Error())
		}
	}

	execution, err := h.executor.Execute(c.Context(), name, req.TriggerEvent, req.TriggerData)
	if err != nil {
		if definitions.IsWorkflowNotFound(err) {
			return notFound(c, "workflow_not_found", "workflow not found")
		}

		// The run finished but could not be persisted; still report it.
		if execution != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(execution)
		}

		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(execution)
}

func (h *APIHandlers) GetExecution(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Execution ID is required")
	}

	execution, err := h.executor.LookupExecution(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(execution)
}

func (h *APIHandlers) GetExecutions(c fiber.Ctx) error {
	limit := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return badRequest(c, "Invalid limit: "+err.Error())
		}

		limit = parsed
	}

	executions, err := h.history.List(c.Context(), c.Query("workflow"), limit)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{
		"executions": executions,
	})
}

func (h *APIHandlers) GetTools(c fiber.Ctx) error {
	factories := h.registry.Tools()
	tools := make([]fiber.Map, 0, len(factories))

	for _, factory := range factories {
		tools = append(tools, fiber.Map{
			"id":          factory.ID(),
			"name":        factory.Name(),
			"description": factory.Description(),
			"schema":      factory.Schema(),
		})
	}

	return c.JSON(fiber.Map{
		"tools": tools,
	})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	if err := h.history.HealthCheck(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}
