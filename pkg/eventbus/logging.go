package eventbus

import (
	"context"
	"log/slog"

	"github.com/paperflow-io/paperflow/pkg/events"
)

// RegisterExecutionLogger attaches handlers that log every workflow
// lifecycle event flowing over the bus, then starts consuming the topic.
// Long-running workers use it to surface run progress without polling the
// history store.
func RegisterExecutionLogger(ctx context.Context, bus EventSubscriber, logger *slog.Logger) error {
	handlers := map[events.EventType]EventHandler{
		events.ExecutionStartedEvent: func(ctx context.Context, event any) error {
			started, ok := event.(*events.ExecutionStarted)
			if !ok {
				return nil
			}

			logger.InfoContext(ctx, "Workflow execution started",
				"workflow_name", started.WorkflowName,
				"execution_id", started.ExecutionID,
				"trigger_event", started.TriggerEvent)

			return nil
		},
		events.StepFinishedEvent: func(ctx context.Context, event any) error {
			finished, ok := event.(*events.StepFinished)
			if !ok {
				return nil
			}

			if finished.Success {
				logger.InfoContext(ctx, "Workflow step finished",
					"workflow_name", finished.WorkflowName,
					"execution_id", finished.ExecutionID,
					"step_name", finished.StepName,
					"tool_name", finished.ToolName)

				return nil
			}

			logger.WarnContext(ctx, "Workflow step failed",
				"workflow_name", finished.WorkflowName,
				"execution_id", finished.ExecutionID,
				"step_name", finished.StepName,
				"tool_name", finished.ToolName,
				"error", finished.Error)

			return nil
		},
		events.ExecutionFinishedEvent: func(ctx context.Context, event any) error {
			finished, ok := event.(*events.ExecutionFinished)
			if !ok {
				return nil
			}

			logger.InfoContext(ctx, "Workflow execution finished",
				"workflow_name", finished.WorkflowName,
				"execution_id", finished.ExecutionID,
				"status", string(finished.Status),
				"failed_steps", finished.FailedSteps,
				"duration", finished.Duration)

			return nil
		},
	}

	for eventType, handler := range handlers {
		if err := bus.Handle(eventType, handler); err != nil {
			return err
		}
	}

	return bus.Subscribe(ctx)
}
