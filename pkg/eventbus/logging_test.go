package eventbus

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperflow-io/paperflow/pkg/channels/gochannel"
	"github.com/paperflow-io/paperflow/pkg/events"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func waitForLog(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), want) {
			return
		}

		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("log output never contained %q", want)
}

func TestRegisterExecutionLogger(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	defer func() {
		assert.NoError(t, bus.Close())
	}()

	buf := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, RegisterExecutionLogger(ctx, bus, logger))

	base := events.BaseEvent{
		ID:           bus.GenerateID(),
		Timestamp:    time.Now().UTC(),
		WorkflowName: "invoice_intake",
		ExecutionID:  "run_1",
	}

	require.NoError(t, bus.Publish(ctx, "invoice_intake", events.ExecutionStarted{
		BaseEvent:    base,
		TriggerEvent: "invoice_received",
	}))
	waitForLog(t, buf, "Workflow execution started")

	require.NoError(t, bus.Publish(ctx, "invoice_intake", events.StepFinished{
		BaseEvent: base,
		StepName:  "extract",
		ToolName:  "vision_extract_invoice",
		Success:   false,
		Error:     "connector unavailable",
	}))
	waitForLog(t, buf, "Workflow step failed")

	require.NoError(t, bus.Publish(ctx, "invoice_intake", events.ExecutionFinished{
		BaseEvent: base,
	}))
	waitForLog(t, buf, "Workflow execution finished")
}
