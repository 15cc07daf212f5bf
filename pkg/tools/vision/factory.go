package vision

import (
	"context"
	"errors"

	"github.com/paperflow-io/paperflow/pkg/connectors"
	"github.com/paperflow-io/paperflow/pkg/registry"
)

var ErrFilePathRequired = errors.New("vision tool requires a file_path parameter")

// ToolFactory creates vision extraction tools. One factory instance is
// registered per document type (invoice, document).
type ToolFactory struct {
	client       connectors.Vision
	documentType string
}

func NewInvoiceFactory(client connectors.Vision) *ToolFactory {
	return &ToolFactory{client: client, documentType: "invoice"}
}

func NewDocumentFactory(client connectors.Vision) *ToolFactory {
	return &ToolFactory{client: client, documentType: "document"}
}

func (f *ToolFactory) ID() string {
	return "vision_extract_" + f.documentType
}

func (f *ToolFactory) Name() string {
	return "Vision Extract " + f.documentType
}

func (f *ToolFactory) Description() string {
	return "Extracts structured data from a scanned " + f.documentType + " via the vision service."
}

func (f *ToolFactory) Create(_ context.Context, params map[string]any) (registry.Tool, error) {
	filePath, _ := params["file_path"].(string)
	if filePath == "" {
		return nil, ErrFilePathRequired
	}

	return &Tool{client: f.client, documentType: f.documentType, filePath: filePath}, nil
}

func (f *ToolFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"file_path": map[string]any{
				"type":        "string",
				"description": "Path to the scanned file to extract",
			},
		},
		"required": []string{"file_path"},
	}
}
