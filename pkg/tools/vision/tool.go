// Package vision implements the vision_extract_invoice and
// vision_extract_document workflow tools as thin calls into the vision
// connector.
package vision

import (
	"context"
	"log/slog"

	"github.com/paperflow-io/paperflow/pkg/connectors"
	"github.com/paperflow-io/paperflow/pkg/models"
)

type Tool struct {
	client       connectors.Vision
	documentType string
	filePath     string
}

func (t *Tool) Execute(ctx context.Context, _ models.ExecutionContext, logger *slog.Logger) (any, error) {
	logger = logger.With("tool_type", "vision", "document_type", t.documentType)
	logger.Debug("Calling vision connector", "file_path", t.filePath)

	return t.client.ExtractDocument(ctx, t.filePath, t.documentType)
}
