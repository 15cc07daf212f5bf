package crm

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/paperflow-io/paperflow/pkg/connectors"
	"github.com/paperflow-io/paperflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCRM struct {
	lastOp     string
	lastParams map[string]any
	err        error
}

func (c *recordingCRM) UpdateCommunication(_ context.Context, params map[string]any) (map[string]any, error) {
	c.lastOp = "update_communication"
	c.lastParams = params

	return map[string]any{"success": true}, c.err
}

func (c *recordingCRM) CreateTask(_ context.Context, params map[string]any) (map[string]any, error) {
	c.lastOp = "create_task"
	c.lastParams = params

	return map[string]any{"task_id": int64(7)}, c.err
}

func TestUpdateCommunicationFactory(t *testing.T) {
	client := &recordingCRM{}
	factory := NewUpdateCommunicationFactory(client)
	assert.Equal(t, "crm_update_communication", factory.ID())

	tool, err := factory.Create(context.Background(), map[string]any{"communication_id": 42, "status": "processed"})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	result, err := tool.Execute(context.Background(), models.ExecutionContext{}, logger)
	require.NoError(t, err)

	assert.Equal(t, "update_communication", client.lastOp)
	assert.Equal(t, 42, client.lastParams["communication_id"])
	assert.Equal(t, map[string]any{"success": true}, result)
}

func TestCreateTaskFactory(t *testing.T) {
	client := &recordingCRM{}
	factory := NewCreateTaskFactory(client)
	assert.Equal(t, "crm_create_task", factory.ID())

	tool, err := factory.Create(context.Background(), map[string]any{"title": "Renew insurance"})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	_, err = tool.Execute(context.Background(), models.ExecutionContext{}, logger)
	require.NoError(t, err)

	assert.Equal(t, "create_task", client.lastOp)
	assert.Equal(t, "Renew insurance", client.lastParams["title"])
}

func TestTool_Execute_ConnectorErrorPropagates(t *testing.T) {
	client := &recordingCRM{err: errors.New("crm unavailable")}
	factory := NewCreateTaskFactory(client)

	tool, err := factory.Create(context.Background(), map[string]any{"title": "x"})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	_, err = tool.Execute(context.Background(), models.ExecutionContext{}, logger)
	assert.EqualError(t, err, "crm unavailable")
}

func TestLocalCRMSatisfiesInterface(t *testing.T) {
	var _ connectors.CRM = connectors.NewLocalCRM()
}
