package crm

import (
	"context"

	"github.com/paperflow-io/paperflow/pkg/connectors"
	"github.com/paperflow-io/paperflow/pkg/registry"
)

// UpdateCommunicationFactory creates tools that update a CRM communication
// record (summary, urgency, processing status).
type UpdateCommunicationFactory struct {
	client connectors.CRM
}

func NewUpdateCommunicationFactory(client connectors.CRM) *UpdateCommunicationFactory {
	return &UpdateCommunicationFactory{client: client}
}

func (*UpdateCommunicationFactory) ID() string {
	return "crm_update_communication"
}

func (*UpdateCommunicationFactory) Name() string {
	return "CRM Update Communication"
}

func (*UpdateCommunicationFactory) Description() string {
	return "Updates a communication record in the CRM with analysis results."
}

func (f *UpdateCommunicationFactory) Create(_ context.Context, params map[string]any) (registry.Tool, error) {
	return &Tool{client: f.client, op: opUpdateCommunication, params: params}, nil
}

func (f *UpdateCommunicationFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"communication_id": map[string]any{
				"description": "Identifier of the communication record to update",
			},
			"summary":  map[string]any{"type": "string"},
			"urgency":  map[string]any{"type": "string"},
			"status":   map[string]any{"type": "string"},
			"category": map[string]any{"type": "string"},
		},
	}
}

// CreateTaskFactory creates tools that open a follow-up task in the CRM.
type CreateTaskFactory struct {
	client connectors.CRM
}

func NewCreateTaskFactory(client connectors.CRM) *CreateTaskFactory {
	return &CreateTaskFactory{client: client}
}

func (*CreateTaskFactory) ID() string {
	return "crm_create_task"
}

func (*CreateTaskFactory) Name() string {
	return "CRM Create Task"
}

func (*CreateTaskFactory) Description() string {
	return "Creates a follow-up task in the CRM."
}

func (f *CreateTaskFactory) Create(_ context.Context, params map[string]any) (registry.Tool, error) {
	return &Tool{client: f.client, op: opCreateTask, params: params}, nil
}

func (f *CreateTaskFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"due_date":    map[string]any{"type": "string"},
			"priority":    map[string]any{"type": "string"},
		},
		"required": []string{"title"},
	}
}
