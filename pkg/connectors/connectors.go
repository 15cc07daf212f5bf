// Package connectors defines the external collaborators that workflow tools
// call into: the CRM database service, the vision document extractor, and the
// QuickBooks bridge. Payloads are opaque maps; reproducing the collaborators'
// API surfaces is out of scope here.
package connectors

import "context"

// CRM accepts structured update/create requests and returns created or
// updated record identifiers.
type CRM interface {
	UpdateCommunication(ctx context.Context, params map[string]any) (map[string]any, error)
	CreateTask(ctx context.Context, params map[string]any) (map[string]any, error)
}

// Vision accepts a file path and returns extracted structured data.
type Vision interface {
	ExtractDocument(ctx context.Context, filePath, documentType string) (map[string]any, error)
}

// QuickBooks accepts vendor/bill payloads and returns created record
// identifiers.
type QuickBooks interface {
	CreateVendor(ctx context.Context, payload map[string]any) (map[string]any, error)
	CreateBill(ctx context.Context, payload map[string]any) (map[string]any, error)
}
