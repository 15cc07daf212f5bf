package registry_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/paperflow-io/paperflow/pkg/models"
	"github.com/paperflow-io/paperflow/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTool struct {
	params map[string]any
}

func (t *fakeTool) Execute(_ context.Context, _ models.ExecutionContext, _ *slog.Logger) (any, error) {
	return t.params, nil
}

type fakeFactory struct {
	id string
}

func (f *fakeFactory) ID() string { return f.id }
func (f *fakeFactory) Name() string { return f.id }
func (f *fakeFactory) Description() string { return "test factory" }
func (f *fakeFactory) Schema() map[string]any { return map[string]any{"type": "object"} }
func (f *fakeFactory) Create(_ context.Context, params map[string]any) (registry.Tool, error) {
	return &fakeTool{params: params}, nil
}

func newTestRegistry(ids ...string) *registry.Registry {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reg := registry.NewRegistry(logger)

	for _, id := range ids {
		reg.RegisterTool(&fakeFactory{id: id})
	}

	return reg
}

func TestRegistry_CreateTool(t *testing.T) {
	reg := newTestRegistry("ai_summarize")

	tool, err := reg.CreateTool(context.Background(), "ai_summarize", map[string]any{"content": "x"})
	require.NoError(t, err)
	assert.NotNil(t, tool)
}

func TestRegistry_CreateTool_Unknown(t *testing.T) {
	reg := newTestRegistry("ai_summarize")

	_, err := reg.CreateTool(context.Background(), "ai_translate", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrUnknownTool)
	assert.Contains(t, err.Error(), "ai_translate")
}

func TestRegistry_Tools_Sorted(t *testing.T) {
	reg := newTestRegistry("workflow_log", "ai_summarize", "crm_create_task")

	factories := reg.Tools()
	require.Len(t, factories, 3)
	assert.Equal(t, "ai_summarize", factories[0].ID())
	assert.Equal(t, "crm_create_task", factories[1].ID())
	assert.Equal(t, "workflow_log", factories[2].ID())
}
