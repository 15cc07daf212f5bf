package vision

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/paperflow-io/paperflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingVision struct {
	lastFilePath string
	lastDocType  string
}

func (v *recordingVision) ExtractDocument(_ context.Context, filePath, documentType string) (map[string]any, error) {
	v.lastFilePath = filePath
	v.lastDocType = documentType

	return map[string]any{"success": true, "extracted_data": map[string]any{}}, nil
}

func TestFactoryIDs(t *testing.T) {
	client := &recordingVision{}

	assert.Equal(t, "vision_extract_invoice", NewInvoiceFactory(client).ID())
	assert.Equal(t, "vision_extract_document", NewDocumentFactory(client).ID())
}

func TestCreate_RequiresFilePath(t *testing.T) {
	factory := NewInvoiceFactory(&recordingVision{})

	_, err := factory.Create(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, ErrFilePathRequired)

	_, err = factory.Create(context.Background(), map[string]any{"file_path": ""})
	assert.ErrorIs(t, err, ErrFilePathRequired)
}

func TestTool_Execute(t *testing.T) {
	client := &recordingVision{}
	factory := NewInvoiceFactory(client)

	tool, err := factory.Create(context.Background(), map[string]any{"file_path": "/scans/invoice-42.pdf"})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	result, err := tool.Execute(context.Background(), models.ExecutionContext{}, logger)
	require.NoError(t, err)

	assert.Equal(t, "/scans/invoice-42.pdf", client.lastFilePath)
	assert.Equal(t, "invoice", client.lastDocType)

	resultMap, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, resultMap["success"])
}
