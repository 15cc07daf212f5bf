package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/paperflow-io/paperflow/pkg/cmd"
	"github.com/paperflow-io/paperflow/pkg/definitions"
	"github.com/paperflow-io/paperflow/pkg/log"
)

const defaultPort = 9091

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "paperflow-api",
		Usage:                 "Manage and trigger paperwork workflows over HTTP",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
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
				Name:    "event-bus",
				Usage:   "Event bus provider (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS"),
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

			logger.InfoContext(ctx, "Initializing Paperflow API")

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

			eventBus := cmd.NewEventBus(command.String("event-bus"), logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			api := NewAPI(
				logger,
				definitionStore,
				historyStore,
				registry,
				eventBus,
			)

			err := api.Start(command.Int("port"))
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
