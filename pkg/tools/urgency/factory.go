package urgency

import (
	"context"

	"github.com/paperflow-io/paperflow/pkg/registry"
)

type ToolFactory struct{}

func NewToolFactory() *ToolFactory {
	return &ToolFactory{}
}

func (*ToolFactory) ID() string {
	return "ai_classify_urgency"
}

func (*ToolFactory) Name() string {
	return "Classify Urgency"
}

func (*ToolFactory) Description() string {
	return "Classifies content urgency by counting keyword hits: none is normal, one is high, two or more is urgent."
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
				"description": "The text to classify",
			},
			"keywords": map[string]any{
				"type":        "array",
				"description": "Keywords whose presence raises the urgency tier",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required": []string{"content"},
	}
}
