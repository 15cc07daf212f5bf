package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	// PostgreSQL driver.
	_ "github.com/lib/pq"

	"github.com/paperflow-io/paperflow/pkg/models"
)

// PostgresStore persists executions in a PostgreSQL table, replacing
// records on conflict so repeated saves of the same execution upsert.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStore connects to PostgreSQL and runs schema migrations.
func NewPostgresStore(ctx context.Context, logger *slog.Logger, databaseURL string) (*PostgresStore, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{
		db:     database,
		logger: logger,
	}

	err = newMigrationManager(logger, database, migrations()).RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) Save(ctx context.Context, execution *models.WorkflowExecution) error {
	if execution == nil || execution.ID == "" {
		return fmt.Errorf("execution with an ID is required")
	}

	triggerData, err := json.Marshal(execution.TriggerData)
	if err != nil {
		return fmt.Errorf("failed to marshal trigger data for %s: %w", execution.ID, err)
	}

	steps, err := json.Marshal(execution.Steps)
	if err != nil {
		return fmt.Errorf("failed to marshal step results for %s: %w", execution.ID, err)
	}

	query := `
		INSERT INTO workflow_executions (
			execution_id
		  , workflow_name
		  , trigger_event
		  , trigger_data
		  , status
		  , steps
		  , error
		  , started_at
		  , completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (execution_id) DO UPDATE SET
			status = EXCLUDED.status
		  , steps = EXCLUDED.steps
		  , error = EXCLUDED.error
		  , completed_at = EXCLUDED.completed_at
	`

	_, err = s.db.ExecContext(ctx, query,
		execution.ID,
		execution.WorkflowName,
		execution.TriggerEvent,
		triggerData,
		execution.Status,
		steps,
		execution.Error,
		execution.StartedAt,
		execution.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save execution %s: %w", execution.ID, err)
	}

	return nil
}

func (s *PostgresStore) Get(ctx context.Context, executionID string) (*models.WorkflowExecution, error) {
	query := `
		SELECT
			execution_id
		  , workflow_name
		  , trigger_event
		  , trigger_data
		  , status
		  , steps
		  , error
		  , started_at
		  , completed_at
		FROM workflow_executions
		WHERE execution_id = $1
	`

	execution, err := scanExecution(s.db.QueryRowContext(ctx, query, executionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrExecutionNotFound, executionID)
		}

		return nil, fmt.Errorf("failed to scan execution %s: %w", executionID, err)
	}

	return execution, nil
}

func (s *PostgresStore) List(ctx context.Context, workflowName string, limit int) ([]*models.WorkflowExecution, error) {
	query := `
		SELECT
			execution_id
		  , workflow_name
		  , trigger_event
		  , trigger_data
		  , status
		  , steps
		  , error
		  , started_at
		  , completed_at
		FROM workflow_executions
		WHERE ($1 = '' OR workflow_name = $1)
		ORDER BY started_at DESC
	`

	args := []any{workflowName}

	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	executions := make([]*models.WorkflowExecution, 0)

	for rows.Next() {
		execution, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}

		executions = append(executions, execution)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating executions: %w", err)
	}

	return executions, nil
}

func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	err := s.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close(_ context.Context) error {
	if s.db != nil {
		err := s.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExecution(row rowScanner) (*models.WorkflowExecution, error) {
	var (
		execution   models.WorkflowExecution
		triggerData []byte
		steps       []byte
	)

	err := row.Scan(
		&execution.ID,
		&execution.WorkflowName,
		&execution.TriggerEvent,
		&triggerData,
		&execution.Status,
		&steps,
		&execution.Error,
		&execution.StartedAt,
		&execution.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(triggerData) > 0 {
		if err := json.Unmarshal(triggerData, &execution.TriggerData); err != nil {
			return nil, fmt.Errorf("failed to decode trigger data: %w", err)
		}
	}

	if len(steps) > 0 {
		if err := json.Unmarshal(steps, &execution.Steps); err != nil {
			return nil, fmt.Errorf("failed to decode step results: %w", err)
		}
	}

	return &execution, nil
}
