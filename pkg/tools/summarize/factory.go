package summarize

import (
	"context"

	"github.com/paperflow-io/paperflow/pkg/registry"
)

type ToolFactory struct{}

func NewToolFactory() *ToolFactory {
	return &ToolFactory{}
}

func (*ToolFactory) ID() string {
	return "ai_summarize"
}

func (*ToolFactory) Name() string {
	return "Summarize"
}

func (*ToolFactory) Description() string {
	return "Produces a concise summary of communication content, bounded by max_length characters."
}

func (f *ToolFactory) Create(_ context.Context, params map[string]any) (registry.Tool, error) {
	return NewTool(params), nil
}

func (f *ToolFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{
				"type":        "string",
				"description": "The text to summarize. Supports placeholder expressions.",
			},
			"max_length": map[string]any{
				"type":        "integer",
				"description": "Maximum summary length in characters",
				"default":     defaultMaxLength,
			},
		},
		"required": []string{"content"},
	}
}
