// Package events defines event types and structures for workflow execution
// lifecycle notifications.
package events

import (
	"time"

	"github.com/paperflow-io/paperflow/pkg/models"
)

type EventType string

const Topic = "paperflow.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	ExecutionStartedEvent  EventType = "workflow.execution.started"
	StepFinishedEvent      EventType = "workflow.step.finished"
	ExecutionFinishedEvent EventType = "workflow.execution.finished"
)

type BaseEvent struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	WorkflowName string    `json:"workflow_name"`
	ExecutionID  string    `json:"execution_id"`
}

type ExecutionStarted struct {
	BaseEvent

	TriggerEvent string         `json:"trigger_event,omitempty"`
	TriggerData  map[string]any `json:"trigger_data,omitempty"`
}

func (e ExecutionStarted) GetType() EventType {
	return ExecutionStartedEvent
}

type StepFinished struct {
	BaseEvent

	StepName string `json:"step_name"`
	ToolName string `json:"tool_name"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

func (e StepFinished) GetType() EventType {
	return StepFinishedEvent
}

type ExecutionFinished struct {
	BaseEvent

	Status      models.ExecutionStatus `json:"status"`
	FailedSteps int                    `json:"failed_steps"`
	Error       string                 `json:"error,omitempty"`
	Duration    time.Duration          `json:"duration"`
}

func (e ExecutionFinished) GetType() EventType {
	return ExecutionFinishedEvent
}
