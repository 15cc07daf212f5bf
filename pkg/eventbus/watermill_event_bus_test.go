package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperflow-io/paperflow/pkg/channels/gochannel"
	"github.com/paperflow-io/paperflow/pkg/events"
	"github.com/paperflow-io/paperflow/pkg/models"
)

func TestWatermillEventBusPublishSubscribe(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	defer func() {
		assert.NoError(t, bus.Close())
	}()

	received := make(chan *events.ExecutionFinished, 1)

	err = bus.Handle(events.ExecutionFinishedEvent, func(_ context.Context, event any) error {
		finished, ok := event.(*events.ExecutionFinished)
		require.True(t, ok)
		received <- finished

		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

	err = bus.Publish(ctx, "invoice_intake", events.ExecutionFinished{
		BaseEvent: events.BaseEvent{
			ID:           bus.GenerateID(),
			Type:         events.ExecutionFinishedEvent,
			Timestamp:    time.Now().UTC(),
			WorkflowName: "invoice_intake",
			ExecutionID:  "run_1",
		},
		Status:      models.ExecutionStatusCompleted,
		FailedSteps: 0,
	})
	require.NoError(t, err)

	select {
	case finished := <-received:
		assert.Equal(t, "run_1", finished.ExecutionID)
		assert.Equal(t, models.ExecutionStatusCompleted, finished.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBusIgnoresUnhandledTypes(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	defer func() {
		assert.NoError(t, bus.Close())
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

	// No handler registered for step events; publish must still succeed.
	err = bus.Publish(ctx, "invoice_intake", events.StepFinished{
		BaseEvent: events.BaseEvent{ID: bus.GenerateID(), ExecutionID: "run_1"},
		StepName:  "extract",
		ToolName:  "vision_extract_invoice",
		Success:   true,
	})
	assert.NoError(t, err)
}
