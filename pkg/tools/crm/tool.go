// Package crm implements the crm_update_communication and crm_create_task
// workflow tools as thin calls into the CRM connector.
package crm

import (
	"context"
	"log/slog"

	"github.com/paperflow-io/paperflow/pkg/connectors"
	"github.com/paperflow-io/paperflow/pkg/models"
)

type operation string

const (
	opUpdateCommunication operation = "update_communication"
	opCreateTask          operation = "create_task"
)

type Tool struct {
	client connectors.CRM
	op     operation
	params map[string]any
}

func (t *Tool) Execute(ctx context.Context, _ models.ExecutionContext, logger *slog.Logger) (any, error) {
	logger = logger.With("tool_type", "crm", "operation", string(t.op))
	logger.Debug("Calling CRM connector")

	switch t.op {
	case opCreateTask:
		return t.client.CreateTask(ctx, t.params)
	default:
		return t.client.UpdateCommunication(ctx, t.params)
	}
}
