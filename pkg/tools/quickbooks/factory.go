package quickbooks

import (
	"context"

	"github.com/paperflow-io/paperflow/pkg/connectors"
	"github.com/paperflow-io/paperflow/pkg/registry"
)

// CreateVendorFactory creates tools that register a vendor in QuickBooks.
type CreateVendorFactory struct {
	client connectors.QuickBooks
}

func NewCreateVendorFactory(client connectors.QuickBooks) *CreateVendorFactory {
	return &CreateVendorFactory{client: client}
}

func (*CreateVendorFactory) ID() string {
	return "quickbooks_create_vendor"
}

func (*CreateVendorFactory) Name() string {
	return "QuickBooks Create Vendor"
}

func (*CreateVendorFactory) Description() string {
	return "Creates a vendor record in QuickBooks."
}

func (f *CreateVendorFactory) Create(_ context.Context, params map[string]any) (registry.Tool, error) {
	return &Tool{client: f.client, op: opCreateVendor, params: params}, nil
}

func (f *CreateVendorFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":    map[string]any{"type": "string"},
			"email":   map[string]any{"type": "string"},
			"phone":   map[string]any{"type": "string"},
			"address": map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	}
}

// CreateBillFactory creates tools that register a bill in QuickBooks.
type CreateBillFactory struct {
	client connectors.QuickBooks
}

func NewCreateBillFactory(client connectors.QuickBooks) *CreateBillFactory {
	return &CreateBillFactory{client: client}
}

func (*CreateBillFactory) ID() string {
	return "quickbooks_create_bill"
}

func (*CreateBillFactory) Name() string {
	return "QuickBooks Create Bill"
}

func (*CreateBillFactory) Description() string {
	return "Creates a bill for a vendor in QuickBooks."
}

func (f *CreateBillFactory) Create(_ context.Context, params map[string]any) (registry.Tool, error) {
	return &Tool{client: f.client, op: opCreateBill, params: params}, nil
}

func (f *CreateBillFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"vendor_id": map[string]any{
				"description": "Identifier of the vendor the bill belongs to",
			},
			"amount":   map[string]any{"type": "number"},
			"due_date": map[string]any{"type": "string"},
			"memo":     map[string]any{"type": "string"},
		},
	}
}
