package worklog

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/paperflow-io/paperflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolFactory(t *testing.T) {
	factory := NewToolFactory()
	assert.Equal(t, "workflow_log", factory.ID())

	tool, err := factory.Create(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, tool)
}

func TestTool_Execute(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	tests := []struct {
		name            string
		params          map[string]any
		expectedMessage string
	}{
		{
			name:            "default message",
			params:          map[string]any{},
			expectedMessage: "Workflow completion logged",
		},
		{
			name:            "custom message",
			params:          map[string]any{"message": "done with dmv notice"},
			expectedMessage: "done with dmv notice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewTool(tt.params)

			result, err := tool.Execute(context.Background(), models.ExecutionContext{
				ExecutionID:  "exec-1",
				WorkflowName: "dmv_notice",
			}, logger)
			require.NoError(t, err)

			resultMap, ok := result.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, true, resultMap["logged"])
			assert.Equal(t, tt.expectedMessage, resultMap["message"])
		})
	}
}
