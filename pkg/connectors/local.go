package connectors

import (
	"context"
	"sync/atomic"
)

// Local connectors acknowledge requests in-process. They are used when no
// remote endpoint is configured, so workflows stay runnable in development
// and the step chain can be exercised end to end.

type LocalCRM struct {
	taskSeq atomic.Int64
}

func NewLocalCRM() *LocalCRM {
	return &LocalCRM{}
}

func (c *LocalCRM) UpdateCommunication(_ context.Context, params map[string]any) (map[string]any, error) {
	return map[string]any{
		"success":          true,
		"message":          "Communication updated",
		"communication_id": params["communication_id"],
	}, nil
}

func (c *LocalCRM) CreateTask(_ context.Context, params map[string]any) (map[string]any, error) {
	title, _ := params["title"].(string)
	if title == "" {
		title = "New Task"
	}

	return map[string]any{
		"success": true,
		"task_id": c.taskSeq.Add(1),
		"title":   title,
	}, nil
}

type LocalVision struct{}

func NewLocalVision() *LocalVision {
	return &LocalVision{}
}

func (c *LocalVision) ExtractDocument(_ context.Context, filePath, documentType string) (map[string]any, error) {
	return map[string]any{
		"success":        true,
		"file_path":      filePath,
		"document_type":  documentType,
		"extracted_data": map[string]any{},
	}, nil
}

type LocalQuickBooks struct {
	vendorSeq atomic.Int64
	billSeq   atomic.Int64
}

func NewLocalQuickBooks() *LocalQuickBooks {
	return &LocalQuickBooks{}
}

func (c *LocalQuickBooks) CreateVendor(_ context.Context, payload map[string]any) (map[string]any, error) {
	return map[string]any{
		"success":     true,
		"vendor_id":   c.vendorSeq.Add(1),
		"vendor_name": payload["name"],
	}, nil
}

func (c *LocalQuickBooks) CreateBill(_ context.Context, payload map[string]any) (map[string]any, error) {
	return map[string]any{
		"success":   true,
		"bill_id":   c.billSeq.Add(1),
		"vendor_id": payload["vendor_id"],
	}, nil
}
