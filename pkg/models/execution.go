package models

import "time"

// ExecutionStatus represents the lifecycle state of a workflow execution.
type ExecutionStatus string

const (
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
)

// StepResult records one step attempt. Steps skipped by a failing condition
// produce no StepResult at all.
type StepResult struct {
	Success   bool      `json:"success"`
	StepName  string    `json:"step_name"`
	ToolName  string    `json:"tool_name"`
	Result    any       `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WorkflowExecution is the top-level run record. It is mutated in place by the
// executor while status is "running" and becomes read-only once finalized.
type WorkflowExecution struct {
	ID           string          `json:"execution_id"`
	WorkflowName string          `json:"workflow_name"`
	TriggerEvent string          `json:"trigger_event"`
	TriggerData  map[string]any  `json:"trigger_data"`
	Status       ExecutionStatus `json:"status"`
	Steps        []*StepResult   `json:"steps"`
	Error        string          `json:"error,omitempty"`
	StartedAt    time.Time       `json:"started_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}

// Finished reports whether the execution reached a terminal status.
func (e *WorkflowExecution) Finished() bool {
	return e.Status == ExecutionStatusCompleted || e.Status == ExecutionStatusFailed
}

// FailedSteps counts step results recorded as failures.
func (e *WorkflowExecution) FailedSteps() int {
	count := 0

	for _, step := range e.Steps {
		if !step.Success {
			count++
		}
	}

	return count
}

// ExecutionContext is the per-run accumulating namespace used for parameter
// resolution and condition matching. It lives for exactly one run.
type ExecutionContext struct {
	ExecutionID  string         `json:"execution_id"`
	WorkflowName string         `json:"workflow_name"`
	TriggerData  map[string]any `json:"trigger_data,omitempty"`
	StepResults  map[string]any `json:"step_results,omitempty"`
}

// Namespace returns the merged lookup view: trigger data under "trigger_data"
// plus each completed step's result keyed by the step name.
func (c *ExecutionContext) Namespace() map[string]any {
	ns := make(map[string]any, len(c.StepResults)+1)

	ns["trigger_data"] = c.TriggerData
	for name, result := range c.StepResults {
		ns[name] = result
	}

	return ns
}

// MatchView returns the flat field view condition predicates evaluate
// against: trigger-data fields plus the fields of every map-valued step
// result merged over them.
func (c *ExecutionContext) MatchView() map[string]any {
	view := make(map[string]any, len(c.TriggerData))

	for key, value := range c.TriggerData {
		view[key] = value
	}

	for _, result := range c.StepResults {
		fields, ok := result.(map[string]any)
		if !ok {
			continue
		}

		for key, value := range fields {
			view[key] = value
		}
	}

	return view
}
