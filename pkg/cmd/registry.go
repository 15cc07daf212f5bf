// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"log/slog"

	"github.com/paperflow-io/paperflow/pkg/connectors"
	"github.com/paperflow-io/paperflow/pkg/registry"
	"github.com/paperflow-io/paperflow/pkg/tools/crm"
	"github.com/paperflow-io/paperflow/pkg/tools/entities"
	"github.com/paperflow-io/paperflow/pkg/tools/quickbooks"
	"github.com/paperflow-io/paperflow/pkg/tools/summarize"
	"github.com/paperflow-io/paperflow/pkg/tools/urgency"
	"github.com/paperflow-io/paperflow/pkg/tools/vision"
	"github.com/paperflow-io/paperflow/pkg/tools/worklog"
)

// ConnectorConfig selects the backing services for connector tools. Empty
// URLs fall back to in-process implementations.
type ConnectorConfig struct {
	CRMURL        string
	VisionURL     string
	QuickBooksURL string
}

func newCRM(config ConnectorConfig, logger *slog.Logger) connectors.CRM {
	if config.CRMURL != "" {
		return connectors.NewHTTPCRM(config.CRMURL, logger)
	}

	return connectors.NewLocalCRM()
}

func newVision(config ConnectorConfig, logger *slog.Logger) connectors.Vision {
	if config.VisionURL != "" {
		return connectors.NewHTTPVision(config.VisionURL, logger)
	}

	return connectors.NewLocalVision()
}

func newQuickBooks(config ConnectorConfig, logger *slog.Logger) connectors.QuickBooks {
	if config.QuickBooksURL != "" {
		return connectors.NewHTTPQuickBooks(config.QuickBooksURL, logger)
	}

	return connectors.NewLocalQuickBooks()
}

// NewRegistry builds the tool registry with all native tools registered.
func NewRegistry(logger *slog.Logger, config ConnectorConfig) *registry.Registry {
	reg := registry.NewRegistry(logger)

	crmClient := newCRM(config, logger)
	visionClient := newVision(config, logger)
	quickbooksClient := newQuickBooks(config, logger)

	reg.RegisterTool(summarize.NewToolFactory())
	reg.RegisterTool(entities.NewToolFactory())
	reg.RegisterTool(urgency.NewToolFactory())
	reg.RegisterTool(worklog.NewToolFactory())
	reg.RegisterTool(crm.NewUpdateCommunicationFactory(crmClient))
	reg.RegisterTool(crm.NewCreateTaskFactory(crmClient))
	reg.RegisterTool(vision.NewInvoiceFactory(visionClient))
	reg.RegisterTool(vision.NewDocumentFactory(visionClient))
	reg.RegisterTool(quickbooks.NewCreateVendorFactory(quickbooksClient))
	reg.RegisterTool(quickbooks.NewCreateBillFactory(quickbooksClient))

	return reg
}
