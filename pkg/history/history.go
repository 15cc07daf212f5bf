// Package history provides storage for finished and in-flight workflow
// executions, with file-based and PostgreSQL implementations.
package history

import (
	"context"
	"errors"

	"github.com/paperflow-io/paperflow/pkg/models"
)

// ErrExecutionNotFound indicates no execution record exists for the given ID.
var ErrExecutionNotFound = errors.New("execution not found")

// IsExecutionNotFound checks if an error indicates a missing execution record.
func IsExecutionNotFound(err error) bool {
	return errors.Is(err, ErrExecutionNotFound)
}

type Store interface {
	// Save writes an execution record, replacing any existing record with
	// the same execution ID.
	Save(ctx context.Context, execution *models.WorkflowExecution) error
	Get(ctx context.Context, executionID string) (*models.WorkflowExecution, error)
	// List returns executions for a workflow, newest first. An empty
	// workflowName returns executions across all workflows. limit <= 0
	// means no limit.
	List(ctx context.Context, workflowName string, limit int) ([]*models.WorkflowExecution, error)
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
