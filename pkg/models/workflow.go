// Package models defines the core domain models for declarative workflow automation.
package models

// Workflow is a named, ordered sequence of steps triggered by an event.
// Definitions are loaded from YAML files and are immutable once loaded.
type Workflow struct {
	Name        string   `json:"name"                  yaml:"name"        validate:"required,min=1"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Triggers    []string `json:"triggers,omitempty"    yaml:"triggers"`
	Steps       []*Step  `json:"steps"                 yaml:"steps"       validate:"required,min=1,dive"`
}

// WorkflowSummary is the listing shape: enough to pick a workflow without
// shipping every step definition.
type WorkflowSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Triggers    []string `json:"triggers,omitempty"`
	StepCount   int      `json:"step_count"`
}

func (w *Workflow) Summary() WorkflowSummary {
	return WorkflowSummary{
		Name:        w.Name,
		Description: w.Description,
		Triggers:    w.Triggers,
		StepCount:   len(w.Steps),
	}
}

// Step is one unit of work within a workflow: a tool to invoke, parameters,
// and optional guard conditions. Parameter values may be literals or
// placeholder expressions of the form ${dotted.path}.
type Step struct {
	Name       string         `json:"name"                 yaml:"name"       validate:"required"`
	Tool       string         `json:"tool"                 yaml:"tool"       validate:"required"`
	Params     map[string]any `json:"params,omitempty"     yaml:"params"`
	Conditions []string       `json:"conditions,omitempty" yaml:"conditions"`
}
