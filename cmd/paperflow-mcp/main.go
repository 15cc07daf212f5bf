// Package main provides the paperflow MCP server over stdio.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/paperflow-io/paperflow/internal/mcpserver"
	"github.com/paperflow-io/paperflow/pkg/cmd"
	"github.com/paperflow-io/paperflow/pkg/definitions"
	"github.com/paperflow-io/paperflow/pkg/log"
	"github.com/paperflow-io/paperflow/pkg/workflow"
)

const version = "0.1.0"

func main() {
	logger := log.WithModule("mcp")

	command := &cli.Command{
		Name:                  "paperflow-mcp",
		Usage:                 "Expose paperwork workflows as MCP tools over stdio",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "workflows-dir",
				Usage:   "Directory containing workflow definition YAML files",
				Value:   "./workflows",
				Sources: cli.EnvVars("WORKFLOWS_DIR"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Execution history URL (file path or postgres://)",
				Value:   "./data/executions",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "crm-url",
				Usage:   "Base URL of the CRM connector service",
				Sources: cli.EnvVars("CRM_URL"),
			},
			&cli.StringFlag{
				Name:    "vision-url",
				Usage:   "Base URL of the document vision connector service",
				Sources: cli.EnvVars("VISION_URL"),
			},
			&cli.StringFlag{
				Name:    "quickbooks-url",
				Usage:   "Base URL of the QuickBooks connector service",
				Sources: cli.EnvVars("QUICKBOOKS_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Paperflow MCP server")

			definitionStore := definitions.NewStore(command.String("workflows-dir"), logger)
			if err := definitionStore.Load(); err != nil {
				return err
			}

			registry := cmd.NewRegistry(logger, cmd.ConnectorConfig{
				CRMURL:        command.String("crm-url"),
				VisionURL:     command.String("vision-url"),
				QuickBooksURL: command.String("quickbooks-url"),
			})

			historyStore := cmd.NewHistory(ctx, logger, command.String("database-url"))

			defer func() {
				err := historyStore.Close(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close history store", "error", err)
				}
			}()

			executor := workflow.NewExecutor(logger, definitionStore, registry, historyStore)

			srv := mcpserver.NewServer(logger, definitionStore, executor, version)

			return srv.ServeStdio()
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
