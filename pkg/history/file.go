package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/paperflow-io/paperflow/pkg/models"
)

// FileStore persists each execution as a JSON file under a root directory.
type FileStore struct {
	root string
}

// NewFileStore creates a file-backed execution store. root accepts a plain
// directory path or a file:// URL.
func NewFileStore(root string) (*FileStore, error) {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	if err := os.MkdirAll(cleanRoot, 0750); err != nil {
		return nil, fmt.Errorf("failed to create history directory %s: %w", cleanRoot, err)
	}

	return &FileStore{root: cleanRoot}, nil
}

func (s *FileStore) Save(_ context.Context, execution *models.WorkflowExecution) error {
	if execution == nil || execution.ID == "" {
		return fmt.Errorf("execution with an ID is required")
	}

	data, err := json.MarshalIndent(execution, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal execution %s: %w", execution.ID, err)
	}

	filePath := s.executionPath(execution.ID)

	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write execution %s: %w", execution.ID, err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("failed to store execution %s: %w", execution.ID, err)
	}

	return nil
}

func (s *FileStore) Get(_ context.Context, executionID string) (*models.WorkflowExecution, error) {
	data, err := os.ReadFile(s.executionPath(executionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrExecutionNotFound, executionID)
		}

		return nil, fmt.Errorf("failed to read execution %s: %w", executionID, err)
	}

	var execution models.WorkflowExecution
	if err := json.Unmarshal(data, &execution); err != nil {
		return nil, fmt.Errorf("failed to decode execution %s: %w", executionID, err)
	}

	return &execution, nil
}

func (s *FileStore) List(ctx context.Context, workflowName string, limit int) ([]*models.WorkflowExecution, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list history directory: %w", err)
	}

	executions := make([]*models.WorkflowExecution, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		execution, err := s.Get(ctx, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}

		if workflowName != "" && execution.WorkflowName != workflowName {
			continue
		}

		executions = append(executions, execution)
	}

	sort.Slice(executions, func(i, j int) bool {
		return executions[i].StartedAt.After(executions[j].StartedAt)
	})

	if limit > 0 && len(executions) > limit {
		executions = executions[:limit]
	}

	return executions, nil
}

func (s *FileStore) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (s *FileStore) Close(_ context.Context) error {
	return nil
}

func (s *FileStore) executionPath(executionID string) string {
	name := strings.ReplaceAll(executionID, string(os.PathSeparator), "_")

	return filepath.Clean(path.Join(s.root, name+".json"))
}
