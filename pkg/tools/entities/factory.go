package entities

import (
	"context"

	"github.com/paperflow-io/paperflow/pkg/registry"
)

type ToolFactory struct{}

func NewToolFactory() *ToolFactory {
	return &ToolFactory{}
}

func (*ToolFactory) ID() string {
	return "ai_extract_entities"
}

func (*ToolFactory) Name() string {
	return "Extract Entities"
}

func (*ToolFactory) Description() string {
	return "Extracts dates, monetary amounts, vehicle identifiers, and deadlines from content using pattern matching."
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
				"description": "The text to extract entities from",
			},
			"types": map[string]any{
				"type":        "array",
				"description": "Entity types to include in the result",
				"items": map[string]any{
					"type": "string",
					"enum": defaultTypes,
				},
			},
		},
		"required": []string{"content"},
	}
}
