package summarize

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/paperflow-io/paperflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolFactory(t *testing.T) {
	factory := NewToolFactory()
	assert.Equal(t, "ai_summarize", factory.ID())

	tool, err := factory.Create(context.Background(), map[string]any{"content": "hello"})
	require.NoError(t, err)
	assert.NotNil(t, tool)
}

func TestNewTool_Defaults(t *testing.T) {
	tool := NewTool(nil)
	assert.Equal(t, "", tool.Content)
	assert.Equal(t, defaultMaxLength, tool.MaxLength)

	// YAML/JSON numbers arrive as float64.
	tool = NewTool(map[string]any{"content": "x", "max_length": float64(50)})
	assert.Equal(t, 50, tool.MaxLength)

	tool = NewTool(map[string]any{"max_length": -1})
	assert.Equal(t, defaultMaxLength, tool.MaxLength)
}

func TestTool_Execute(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	tests := []struct {
		name      string
		content   string
		maxLength int
		check     func(t *testing.T, summary string)
	}{
		{
			name:      "short content returned whole",
			content:   "Insurance proof required by 03/27/2025.",
			maxLength: 200,
			check: func(t *testing.T, summary string) {
				assert.Equal(t, "Insurance proof required by 03/27/2025.", summary)
			},
		},
		{
			name: "long content bounded",
			content: "DMV notice regarding vehicle registration suspension. " +
				"Insurance proof required by 03/27/2025 to avoid suspension. " +
				"A fourteen dollar fee applies for reinstatement. " +
				"Contact the office for details about payment options and processing times.",
			maxLength: 120,
			check: func(t *testing.T, summary string) {
				assert.LessOrEqual(t, len(summary), 120)
				assert.True(t, strings.HasPrefix(summary, "DMV notice"))
			},
		},
		{
			name:      "whitespace collapsed",
			content:   "Line one.\n\n   Line two.",
			maxLength: 200,
			check: func(t *testing.T, summary string) {
				assert.Equal(t, "Line one. Line two.", summary)
			},
		},
		{
			name:      "oversized first sentence truncated",
			content:   strings.Repeat("word ", 60),
			maxLength: 40,
			check: func(t *testing.T, summary string) {
				assert.LessOrEqual(t, len(summary), 40)
				assert.True(t, strings.HasSuffix(summary, "..."))
			},
		},
		{
			name:      "limit too small for an ellipsis",
			content:   "Please pay the overdue invoice immediately.",
			maxLength: 2,
			check: func(t *testing.T, summary string) {
				assert.Equal(t, "Pl", summary)
			},
		},
		{
			name:      "limit of exactly three",
			content:   "Please pay the overdue invoice immediately.",
			maxLength: 3,
			check: func(t *testing.T, summary string) {
				assert.Equal(t, "Ple", summary)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewTool(map[string]any{"content": tt.content, "max_length": tt.maxLength})

			result, err := tool.Execute(context.Background(), models.ExecutionContext{}, logger)
			require.NoError(t, err)

			resultMap, ok := result.(map[string]any)
			require.True(t, ok)
			tt.check(t, resultMap["summary"].(string))
			assert.Equal(t, len(tt.content), resultMap["original_length"])
		})
	}
}
