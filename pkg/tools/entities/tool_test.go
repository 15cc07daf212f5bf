package entities

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/paperflow-io/paperflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notice = "DMV notice: insurance proof is due 03/27/2025 for your 2004 Volvo. " +
	"License: ABC1234. Reinstatement fee is $14.00, late fee $1,250.50. " +
	"Issued on 2025-01-15."

func execute(t *testing.T, params map[string]any) map[string]any {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	tool := NewTool(params)

	result, err := tool.Execute(context.Background(), models.ExecutionContext{}, logger)
	require.NoError(t, err)

	resultMap, ok := result.(map[string]any)
	require.True(t, ok)

	entitiesMap, ok := resultMap["entities"].(map[string]any)
	require.True(t, ok)

	return entitiesMap
}

func TestToolFactory(t *testing.T) {
	factory := NewToolFactory()
	assert.Equal(t, "ai_extract_entities", factory.ID())

	tool, err := factory.Create(context.Background(), map[string]any{"content": notice})
	require.NoError(t, err)
	assert.NotNil(t, tool)
}

func TestTool_Execute_AllTypes(t *testing.T) {
	entities := execute(t, map[string]any{"content": notice})

	assert.Contains(t, entities["dates"], "03/27/2025")
	assert.Contains(t, entities["dates"], "2025-01-15")
	assert.ElementsMatch(t, []string{"$14.00", "$1,250.50"}, entities["amounts"])
	assert.Contains(t, entities["vehicles"], "ABC1234")
	assert.Contains(t, entities["deadlines"], "03/27/2025")
}

func TestTool_Execute_TypeFilter(t *testing.T) {
	entities := execute(t, map[string]any{
		"content": notice,
		"types":   []any{"amounts"},
	})

	assert.Len(t, entities, 1)
	assert.Contains(t, entities, "amounts")
}

func TestTool_Execute_UnknownTypeIgnored(t *testing.T) {
	entities := execute(t, map[string]any{
		"content": notice,
		"types":   []any{"amounts", "companies"},
	})

	assert.Len(t, entities, 1)
	assert.Contains(t, entities, "amounts")
}

func TestTool_Execute_EmptyContent(t *testing.T) {
	entities := execute(t, map[string]any{"content": ""})

	for _, entityType := range defaultTypes {
		assert.Empty(t, entities[entityType])
	}
}
