// Package registry holds the catalog of tool factories available to workflow
// steps and dispatches step invocations to them.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/paperflow-io/paperflow/pkg/models"
)

// ErrUnknownTool indicates a step referenced a tool identifier that is not
// registered. The executor records it as that step's failure.
var ErrUnknownTool = errors.New("unknown tool")

// Tool performs one step's work. Implementations return their result or an
// error; they never swallow failures, recovery is the executor's job.
type Tool interface {
	Execute(ctx context.Context, execCtx models.ExecutionContext, logger *slog.Logger) (any, error)
}

// ToolFactory creates Tool instances from resolved step parameters.
type ToolFactory interface {
	ID() string
	Name() string
	Description() string
	Schema() map[string]any
	Create(ctx context.Context, params map[string]any) (Tool, error)
}

type Registry struct {
	logger    *slog.Logger
	factories map[string]ToolFactory
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:    logger,
		factories: make(map[string]ToolFactory),
	}
}

func (r *Registry) RegisterTool(factory ToolFactory) {
	r.factories[factory.ID()] = factory
}

// CreateTool instantiates the tool registered under toolID with the given
// resolved parameters.
func (r *Registry) CreateTool(ctx context.Context, toolID string, params map[string]any) (Tool, error) {
	factory, ok := r.factories[toolID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, toolID)
	}

	return factory.Create(ctx, params)
}

// Tools returns the registered factories sorted by identifier.
func (r *Registry) Tools() []ToolFactory {
	factories := make([]ToolFactory, 0, len(r.factories))
	for _, factory := range r.factories {
		factories = append(factories, factory)
	}

	sort.Slice(factories, func(i, j int) bool {
		return factories[i].ID() < factories[j].ID()
	})

	return factories
}
