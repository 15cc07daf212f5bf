// Package workflow runs workflow definitions step by step and records the
// outcome in the execution history.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/paperflow-io/paperflow/pkg/definitions"
	"github.com/paperflow-io/paperflow/pkg/eventbus"
	"github.com/paperflow-io/paperflow/pkg/events"
	"github.com/paperflow-io/paperflow/pkg/history"
	"github.com/paperflow-io/paperflow/pkg/models"
	"github.com/paperflow-io/paperflow/pkg/otelhelper"
	"github.com/paperflow-io/paperflow/pkg/registry"
	"github.com/paperflow-io/paperflow/pkg/template"
)

// Executor runs workflows. A step failure marks the step result and moves
// on; only a missing definition or an unparsable condition fails the run.
type Executor struct {
	logger      *slog.Logger
	definitions *definitions.Store
	registry    *registry.Registry
	history     history.Store
	eventBus    eventbus.EventPublisher
	tracer      trace.Tracer

	mu     sync.RWMutex
	active map[string]*models.WorkflowExecution
}

type Option func(*Executor)

// WithEventBus publishes lifecycle events to the given bus.
func WithEventBus(bus eventbus.EventPublisher) Option {
	return func(e *Executor) {
		e.eventBus = bus
	}
}

// WithTracer records a span per execution and per step.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Executor) {
		e.tracer = tracer
	}
}

func NewExecutor(
	logger *slog.Logger,
	definitionStore *definitions.Store,
	toolRegistry *registry.Registry,
	historyStore history.Store,
	options ...Option,
) *Executor {
	executor := &Executor{
		logger:      logger.With("module", "workflow_executor"),
		definitions: definitionStore,
		registry:    toolRegistry,
		history:     historyStore,
		active:      make(map[string]*models.WorkflowExecution),
	}

	for _, option := range options {
		option(executor)
	}

	return executor
}

// Execute runs the named workflow. The returned execution is always non-nil
// when the definition exists: step failures are recorded in the step results
// rather than aborting the run.
func (e *Executor) Execute(
	ctx context.Context,
	workflowName string,
	triggerEvent string,
	triggerData map[string]any,
) (*models.WorkflowExecution, error) {
	if triggerData == nil {
		triggerData = make(map[string]any)
	}

	workflow, err := e.definitions.Get(workflowName)
	if err != nil {
		lookupErr := fmt.Errorf("failed to fetch workflow %s: %w", workflowName, err)

		// No steps are attempted, but the caller still gets a finalized
		// failed record and the history keeps the audit trail.
		execution := e.newExecution(workflowName, triggerEvent, triggerData)
		completedAt := time.Now().UTC()
		execution.CompletedAt = &completedAt
		execution.Status = models.ExecutionStatusFailed
		execution.Error = lookupErr.Error()

		if saveErr := e.history.Save(ctx, execution); saveErr != nil {
			e.logger.Error("Failed to persist execution record", "execution_id", execution.ID, "error", saveErr)
		}

		return execution, lookupErr
	}

	execution := e.newExecution(workflowName, triggerEvent, triggerData)

	logger := e.logger.With("workflow_name", workflowName, "execution_id", execution.ID)
	logger.Info("Starting workflow execution", "trigger_event", triggerEvent, "steps", len(workflow.Steps))

	e.trackExecution(execution)

	if e.tracer != nil {
		var span trace.Span

		ctx, span = otelhelper.StartSpan(ctx, e.tracer, "workflow.execute",
			attribute.String(otelhelper.WorkflowNameKey, workflowName),
			attribute.String(otelhelper.ExecutionIDKey, execution.ID),
			attribute.String(otelhelper.TriggerEventKey, triggerEvent),
		)
		defer span.End()
	}

	e.publishStarted(ctx, execution)

	execCtx := models.ExecutionContext{
		ExecutionID:  execution.ID,
		WorkflowName: workflowName,
		TriggerData:  triggerData,
		StepResults:  make(map[string]any),
	}

	runErr := e.runSteps(ctx, workflow, execution, &execCtx, logger)

	completedAt := time.Now().UTC()
	execution.CompletedAt = &completedAt

	if runErr != nil {
		execution.Status = models.ExecutionStatusFailed
		execution.Error = runErr.Error()

		logger.Error("Workflow execution failed", "error", runErr)
	} else {
		execution.Status = models.ExecutionStatusCompleted

		logger.Info("Workflow execution completed",
			"steps_run", len(execution.Steps),
			"steps_failed", execution.FailedSteps())
	}

	e.publishFinished(ctx, execution)

	if err := e.history.Save(ctx, execution); err != nil {
		logger.Error("Failed to persist execution record", "error", err)

		return execution, fmt.Errorf("failed to persist execution %s: %w", execution.ID, err)
	}

	e.untrackExecution(execution.ID)

	return execution, nil
}

func (e *Executor) newExecution(workflowName, triggerEvent string, triggerData map[string]any) *models.WorkflowExecution {
	return &models.WorkflowExecution{
		ID:           newExecutionID(workflowName),
		WorkflowName: workflowName,
		TriggerEvent: triggerEvent,
		TriggerData:  triggerData,
		Status:       models.ExecutionStatusRunning,
		Steps:        make([]*models.StepResult, 0),
		StartedAt:    time.Now().UTC(),
	}
}

func (e *Executor) runSteps(
	ctx context.Context,
	workflow *models.Workflow,
	execution *models.WorkflowExecution,
	execCtx *models.ExecutionContext,
	logger *slog.Logger,
) error {
	for _, step := range workflow.Steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("execution cancelled at step %s: %w", step.Name, err)
		}

		stepLogger := logger.With("step_name", step.Name, "tool", step.Tool)

		matched, err := models.MatchConditions(step.Conditions, execCtx.MatchView())
		if err != nil {
			return fmt.Errorf("failed to evaluate conditions for step %s: %w", step.Name, err)
		}

		if !matched {
			stepLogger.Info("Step conditions not met, skipping")

			continue
		}

		result := e.runStep(ctx, step, execCtx, stepLogger)
		execution.Steps = append(execution.Steps, result)

		if result.Success {
			execCtx.StepResults[step.Name] = result.Result
		}

		e.publishStepFinished(ctx, execution, result)
	}

	return nil
}

func (e *Executor) runStep(
	ctx context.Context,
	step *models.Step,
	execCtx *models.ExecutionContext,
	logger *slog.Logger,
) *models.StepResult {
	if e.tracer != nil {
		var span trace.Span

		ctx, span = otelhelper.StartSpan(ctx, e.tracer, "workflow.step",
			attribute.String(otelhelper.StepNameKey, step.Name),
			attribute.String(otelhelper.ToolNameKey, step.Tool),
		)
		defer span.End()
	}

	result := &models.StepResult{
		StepName:  step.Name,
		ToolName:  step.Tool,
		Timestamp: time.Now().UTC(),
	}

	output, err := e.dispatch(ctx, step, execCtx, logger)
	if err != nil {
		result.Error = err.Error()

		logger.Error("Step failed", "error", err)

		if e.tracer != nil {
			otelhelper.SetError(trace.SpanFromContext(ctx), err,
				attribute.String(otelhelper.StepNameKey, step.Name))
		}

		return result
	}

	result.Success = true
	result.Result = output

	logger.Info("Step completed")

	return result
}

func (e *Executor) dispatch(
	ctx context.Context,
	step *models.Step,
	execCtx *models.ExecutionContext,
	logger *slog.Logger,
) (output any, err error) {
	// A panicking tool becomes a failed step, not a dead process.
	defer func() {
		if r := recover(); r != nil {
			output = nil
			err = fmt.Errorf("tool %q panicked: %v", step.Tool, r)
		}
	}()

	params := template.ResolveParams(step.Params, execCtx)

	tool, err := e.registry.CreateTool(ctx, step.Tool, params)
	if err != nil {
		return nil, err
	}

	return tool.Execute(ctx, *execCtx, logger)
}

// LookupExecution finds an execution by ID, checking in-flight runs before
// the history store.
func (e *Executor) LookupExecution(ctx context.Context, executionID string) (*models.WorkflowExecution, error) {
	e.mu.RLock()
	execution, ok := e.active[executionID]
	e.mu.RUnlock()

	if ok {
		return execution, nil
	}

	return e.history.Get(ctx, executionID)
}

func (e *Executor) trackExecution(execution *models.WorkflowExecution) {
	e.mu.Lock()
	e.active[execution.ID] = execution
	e.mu.Unlock()
}

func (e *Executor) untrackExecution(executionID string) {
	e.mu.Lock()
	delete(e.active, executionID)
	e.mu.Unlock()
}

func (e *Executor) publishStarted(ctx context.Context, execution *models.WorkflowExecution) {
	if e.eventBus == nil {
		return
	}

	event := events.ExecutionStarted{
		BaseEvent:    e.baseEvent(events.ExecutionStartedEvent, execution),
		TriggerEvent: execution.TriggerEvent,
		TriggerData:  execution.TriggerData,
	}

	if err := e.eventBus.Publish(ctx, execution.WorkflowName, event); err != nil {
		e.logger.Warn("Failed to publish execution started event", "error", err)
	}
}

func (e *Executor) publishStepFinished(ctx context.Context, execution *models.WorkflowExecution, result *models.StepResult) {
	if e.eventBus == nil {
		return
	}

	event := events.StepFinished{
		BaseEvent: e.baseEvent(events.StepFinishedEvent, execution),
		StepName:  result.StepName,
		ToolName:  result.ToolName,
		Success:   result.Success,
		Error:     result.Error,
	}

	if err := e.eventBus.Publish(ctx, execution.WorkflowName, event); err != nil {
		e.logger.Warn("Failed to publish step finished event", "error", err)
	}
}

func (e *Executor) publishFinished(ctx context.Context, execution *models.WorkflowExecution) {
	if e.eventBus == nil {
		return
	}

	var duration time.Duration
	if execution.CompletedAt != nil {
		duration = execution.CompletedAt.Sub(execution.StartedAt)
	}

	event := events.ExecutionFinished{
		BaseEvent:   e.baseEvent(events.ExecutionFinishedEvent, execution),
		Status:      execution.Status,
		FailedSteps: execution.FailedSteps(),
		Error:       execution.Error,
		Duration:    duration,
	}

	if err := e.eventBus.Publish(ctx, execution.WorkflowName, event); err != nil {
		e.logger.Warn("Failed to publish execution finished event", "error", err)
	}
}

func (e *Executor) baseEvent(eventType events.EventType, execution *models.WorkflowExecution) events.BaseEvent {
	return events.BaseEvent{
		ID:           uuid.NewString(),
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		WorkflowName: execution.WorkflowName,
		ExecutionID:  execution.ID,
	}
}

// newExecutionID builds IDs like invoice_intake_20260831_140502_ab12cd34:
// sortable by start time and unique under concurrent triggers.
func newExecutionID(workflowName string) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	return fmt.Sprintf("%s_%s_%s", workflowName, timestamp, suffix)
}
