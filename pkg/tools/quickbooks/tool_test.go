package quickbooks

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/paperflow-io/paperflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQuickBooks struct {
	lastOp      string
	lastPayload map[string]any
}

func (q *recordingQuickBooks) CreateVendor(_ context.Context, payload map[string]any) (map[string]any, error) {
	q.lastOp = "create_vendor"
	q.lastPayload = payload

	return map[string]any{"vendor_id": int64(456), "success": true}, nil
}

func (q *recordingQuickBooks) CreateBill(_ context.Context, payload map[string]any) (map[string]any, error) {
	q.lastOp = "create_bill"
	q.lastPayload = payload

	return map[string]any{"bill_id": int64(9), "success": true}, nil
}

func TestCreateVendorFactory(t *testing.T) {
	client := &recordingQuickBooks{}
	factory := NewCreateVendorFactory(client)
	assert.Equal(t, "quickbooks_create_vendor", factory.ID())

	tool, err := factory.Create(context.Background(), map[string]any{"name": "Acme Insurance"})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	result, err := tool.Execute(context.Background(), models.ExecutionContext{}, logger)
	require.NoError(t, err)

	assert.Equal(t, "create_vendor", client.lastOp)
	assert.Equal(t, "Acme Insurance", client.lastPayload["name"])

	resultMap, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(456), resultMap["vendor_id"])
}

func TestCreateBillFactory(t *testing.T) {
	client := &recordingQuickBooks{}
	factory := NewCreateBillFactory(client)
	assert.Equal(t, "quickbooks_create_bill", factory.ID())

	tool, err := factory.Create(context.Background(), map[string]any{"vendor_id": 456, "amount": 14.0})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	_, err = tool.Execute(context.Background(), models.ExecutionContext{}, logger)
	require.NoError(t, err)

	assert.Equal(t, "create_bill", client.lastOp)
	assert.Equal(t, 456, client.lastPayload["vendor_id"])
}
