package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperflow-io/paperflow/pkg/definitions"
	"github.com/paperflow-io/paperflow/pkg/history"
	"github.com/paperflow-io/paperflow/pkg/models"
	"github.com/paperflow-io/paperflow/pkg/registry"
	"github.com/paperflow-io/paperflow/pkg/tools/worklog"
	"github.com/paperflow-io/paperflow/pkg/web"
	"github.com/paperflow-io/paperflow/pkg/workflow"
)

const triageWorkflow = `
name: communication_triage
description: Log every communication
steps:
  - name: log
    tool: workflow_log
    params:
      message: communication handled
`

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "communication_triage.yml"), []byte(triageWorkflow), 0600))

	definitionStore := definitions.NewStore(dir, logger)
	require.NoError(t, definitionStore.Load())

	toolRegistry := registry.NewRegistry(logger)
	toolRegistry.RegisterTool(worklog.NewToolFactory())

	historyStore, err := history.NewFileStore(t.TempDir())
	require.NoError(t, err)

	executor := workflow.NewExecutor(logger, definitionStore, toolRegistry, historyStore)
	validate := validator.New(validator.WithRequiredStructEnabled())

	handlers := web.NewAPIHandlers(definitionStore, executor, historyStore, toolRegistry, validate)

	app := fiber.New()

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

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, data
}

func TestGetWorkflows(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/workflows/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Workflows []models.WorkflowSummary `json:"workflows"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	require.Len(t, result.Workflows, 1)
	assert.Equal(t, "communication_triage", result.Workflows[0].Name)
	assert.Equal(t, 1, result.Workflows[0].StepCount)

	// The listing stays a summary: no step params leak through it.
	assert.NotContains(t, string(body), "communication handled")
}

func TestGetWorkflow(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/workflows/communication_triage", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var found models.Workflow
	require.NoError(t, json.Unmarshal(body, &found))
	assert.Equal(t, "communication_triage", found.Name)

	resp, body = doRequest(t, app, http.MethodGet, "/workflows/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "workflow_not_found")
}

func TestCreateWorkflow(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/workflows/", web.CreateWorkflowRequest{
		Name: "vendor_onboarding",
		Definition: map[string]any{
			"description": "Set up a new vendor",
			"steps": []any{
				map[string]any{"name": "log", "tool": "workflow_log"},
			},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Workflow
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "vendor_onboarding", created.Name)
}

func TestCreateWorkflowRejectsInvalid(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/workflows/", web.CreateWorkflowRequest{
		Name:       "bad",
		Definition: map[string]any{"description": "no steps"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "validation_error")
}

func TestTriggerWorkflow(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/workflows/communication_triage/trigger", web.TriggerWorkflowRequest{
		TriggerEvent: "communication_received",
		TriggerData:  map[string]any{"sender_identifier": "client@example.com"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var execution models.WorkflowExecution
	require.NoError(t, json.Unmarshal(body, &execution))
	assert.Equal(t, models.ExecutionStatusCompleted, execution.Status)
	require.Len(t, execution.Steps, 1)
	assert.True(t, execution.Steps[0].Success)

	// The recorded execution is retrievable afterwards.
	resp, body = doRequest(t, app, http.MethodGet, "/executions/"+execution.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.WorkflowExecution
	require.NoError(t, json.Unmarshal(body, &stored))
	assert.Equal(t, execution.ID, stored.ID)
}

func TestTriggerUnknownWorkflow(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/workflows/missing/trigger", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "workflow_not_found")
}

func TestGetExecutionNotFound(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/executions/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "execution_not_found")
}

func TestGetTools(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/tools", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "workflow_log")
}

func TestHealthCheck(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "healthy")
}
