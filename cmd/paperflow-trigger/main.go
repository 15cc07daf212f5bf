// Package main provides the queue trigger worker that starts workflow runs
// from Redis messages.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/paperflow-io/paperflow/pkg/cmd"
	"github.com/paperflow-io/paperflow/pkg/definitions"
	"github.com/paperflow-io/paperflow/pkg/eventbus"
	"github.com/paperflow-io/paperflow/pkg/log"
	"github.com/paperflow-io/paperflow/pkg/triggers/queue"
	"github.com/paperflow-io/paperflow/pkg/workflow"
)

func main() {
	logger := log.WithModule("trigger")

	command := &cli.Command{
		Name:                  "paperflow-trigger",
		Usage:                 "Consume trigger messages from Redis and run workflows",
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
				Name:    "queue",
				Usage:   "Redis list to consume trigger messages from",
				Value:   "paperflow:triggers",
				Sources: cli.EnvVars("TRIGGER_QUEUE"),
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "Redis server address",
				Value:   "localhost:6379",
				Sources: cli.EnvVars("REDIS_ADDR"),
			},
			&cli.StringFlag{
				Name:    "redis-password",
				Usage:   "Redis password",
				Sources: cli.EnvVars("REDIS_PASSWORD"),
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

			logger.InfoContext(ctx, "Initializing Paperflow queue trigger worker")

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

			executor := workflow.NewExecutor(
				logger,
				definitionStore,
				registry,
				historyStore,
				workflow.WithEventBus(eventBus),
			)

			trigger, err := queue.NewTrigger(map[string]any{
				"queue": command.String("queue"),
				"connection": map[string]any{
					"addr":     command.String("redis-addr"),
					"password": command.String("redis-password"),
				},
			}, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			if err := eventbus.RegisterExecutionLogger(ctx, eventBus, logger); err != nil {
				return err
			}

			err = trigger.Start(ctx, func(ctx context.Context, workflowName, triggerEvent string, triggerData map[string]any) error {
				_, err := executor.Execute(ctx, workflowName, triggerEvent, triggerData)

				return err
			})
			if err != nil {
				return err
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			logger.InfoContext(ctx, "Shutting down queue trigger worker")

			return trigger.Stop(ctx)
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
