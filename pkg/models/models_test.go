package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutionContext_Namespace(t *testing.T) {
	execCtx := &ExecutionContext{
		TriggerData: map[string]any{"sender_identifier": "x@y.com"},
		StepResults: map[string]any{
			"summarize": map[string]any{"summary": "short"},
		},
	}

	ns := execCtx.Namespace()

	assert.Equal(t, execCtx.TriggerData, ns["trigger_data"])
	assert.Equal(t, map[string]any{"summary": "short"}, ns["summarize"])
}

func TestExecutionContext_MatchView(t *testing.T) {
	execCtx := &ExecutionContext{
		TriggerData: map[string]any{
			"channel":       "email",
			"urgency_level": "stale",
		},
		StepResults: map[string]any{
			"classify_urgency": map[string]any{"urgency_level": "urgent", "urgency_score": 3},
			"summarize":        "plain string result",
		},
	}

	view := execCtx.MatchView()

	assert.Equal(t, "email", view["channel"])
	// Step result fields shadow trigger data on collision.
	assert.Equal(t, "urgent", view["urgency_level"])
	assert.Equal(t, 3, view["urgency_score"])
	// Non-map step results contribute no fields.
	assert.NotContains(t, view, "summarize")
}

func TestWorkflowExecution_Finished(t *testing.T) {
	execution := &WorkflowExecution{Status: ExecutionStatusRunning}
	assert.False(t, execution.Finished())

	execution.Status = ExecutionStatusCompleted
	assert.True(t, execution.Finished())

	execution.Status = ExecutionStatusFailed
	assert.True(t, execution.Finished())
}

func TestWorkflowExecution_FailedSteps(t *testing.T) {
	execution := &WorkflowExecution{
		Steps: []*StepResult{
			{StepName: "a", Success: true},
			{StepName: "b", Success: false, Error: "boom"},
			{StepName: "c", Success: true},
		},
	}

	assert.Equal(t, 1, execution.FailedSteps())
}
