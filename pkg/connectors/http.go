package connectors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultTimeoutSeconds = 30

// httpClient posts JSON payloads to a collaborator service and decodes the
// JSON response. All three remote connectors share it.
type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func newHTTPClient(baseURL string, logger *slog.Logger) *httpClient {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeoutSeconds * time.Second},
		logger:  logger,
	}
}

func (c *httpClient) post(ctx context.Context, path string, payload map[string]any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("Failed to close response body", "path", path, "error", err)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("request to %s returned status %d: %s", path, resp.StatusCode, string(data))
	}

	result := make(map[string]any)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}

	return result, nil
}

// HTTPCRM talks to a remote CRM service over JSON.
type HTTPCRM struct {
	*httpClient
}

func NewHTTPCRM(baseURL string, logger *slog.Logger) *HTTPCRM {
	return &HTTPCRM{httpClient: newHTTPClient(baseURL, logger.With("connector", "crm"))}
}

func (c *HTTPCRM) UpdateCommunication(ctx context.Context, params map[string]any) (map[string]any, error) {
	return c.post(ctx, "/communications/update", params)
}

func (c *HTTPCRM) CreateTask(ctx context.Context, params map[string]any) (map[string]any, error) {
	return c.post(ctx, "/tasks", params)
}

// HTTPVision talks to a remote vision extraction service over JSON.
type HTTPVision struct {
	*httpClient
}

func NewHTTPVision(baseURL string, logger *slog.Logger) *HTTPVision {
	return &HTTPVision{httpClient: newHTTPClient(baseURL, logger.With("connector", "vision"))}
}

func (c *HTTPVision) ExtractDocument(ctx context.Context, filePath, documentType string) (map[string]any, error) {
	return c.post(ctx, "/extract", map[string]any{
		"file_path":     filePath,
		"document_type": documentType,
	})
}

// HTTPQuickBooks talks to a remote QuickBooks bridge over JSON.
type HTTPQuickBooks struct {
	*httpClient
}

func NewHTTPQuickBooks(baseURL string, logger *slog.Logger) *HTTPQuickBooks {
	return &HTTPQuickBooks{httpClient: newHTTPClient(baseURL, logger.With("connector", "quickbooks"))}
}

func (c *HTTPQuickBooks) CreateVendor(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return c.post(ctx, "/vendors", payload)
}

func (c *HTTPQuickBooks) CreateBill(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return c.post(ctx, "/bills", payload)
}
