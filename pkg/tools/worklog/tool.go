// Package worklog implements the workflow_log tool: an acknowledgment step
// that marks workflow completion in the logs.
package worklog

import (
	"context"
	"log/slog"

	"github.com/paperflow-io/paperflow/pkg/models"
	"github.com/paperflow-io/paperflow/pkg/registry"
)

type Tool struct {
	Message string
}

func NewTool(params map[string]any) *Tool {
	message, _ := params["message"].(string)
	if message == "" {
		message = "Workflow completion logged"
	}

	return &Tool{Message: message}
}

func (t *Tool) Execute(_ context.Context, execCtx models.ExecutionContext, logger *slog.Logger) (any, error) {
	logger.Info("Workflow log step",
		"message", t.Message,
		"execution_id", execCtx.ExecutionID,
		"workflow_name", execCtx.WorkflowName)

	return map[string]any{
		"logged":  true,
		"message": t.Message,
	}, nil
}

type ToolFactory struct{}

func NewToolFactory() *ToolFactory {
	return &ToolFactory{}
}

func (*ToolFactory) ID() string {
	return "workflow_log"
}

func (*ToolFactory) Name() string {
	return "Workflow Log"
}

func (*ToolFactory) Description() string {
	return "Acknowledgment step that records workflow completion in the logs."
}

func (f *ToolFactory) Create(_ context.Context, params map[string]any) (registry.Tool, error) {
	if params == nil {
		params = map[string]any{}
	}

	return NewTool(params), nil
}

func (f *ToolFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{
				"type":        "string",
				"description": "The message to log. Supports placeholder expressions.",
			},
		},
	}
}
