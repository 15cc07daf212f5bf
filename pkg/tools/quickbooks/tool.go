// Package quickbooks implements the quickbooks_create_vendor and
// quickbooks_create_bill workflow tools as thin calls into the QuickBooks
// connector.
package quickbooks

import (
	"context"
	"log/slog"

	"github.com/paperflow-io/paperflow/pkg/connectors"
	"github.com/paperflow-io/paperflow/pkg/models"
)

type operation string

const (
	opCreateVendor operation = "create_vendor"
	opCreateBill   operation = "create_bill"
)

type Tool struct {
	client connectors.QuickBooks
	op     operation
	params map[string]any
}

func (t *Tool) Execute(ctx context.Context, _ models.ExecutionContext, logger *slog.Logger) (any, error) {
	logger = logger.With("tool_type", "quickbooks", "operation", string(t.op))
	logger.Debug("Calling QuickBooks connector")

	switch t.op {
	case opCreateBill:
		return t.client.CreateBill(ctx, t.params)
	default:
		return t.client.CreateVendor(ctx, t.params)
	}
}
