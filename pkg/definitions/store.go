// Package definitions loads declarative workflow definitions from YAML files
// and exposes them as an atomically replaceable in-memory snapshot.
package definitions

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/paperflow-io/paperflow/pkg/models"
	"gopkg.in/yaml.v3"
)

// ErrWorkflowNotFound indicates no definition is loaded under the given name.
var ErrWorkflowNotFound = errors.New("workflow not found")

// IsWorkflowNotFound checks if an error indicates a missing definition.
func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

// Store holds the currently loaded workflow definitions. Reload swaps the
// whole table at once, so readers always observe a complete snapshot.
type Store struct {
	dir      string
	logger   *slog.Logger
	validate *validator.Validate

	mu        sync.RWMutex
	workflows map[string]*models.Workflow
}

func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{
		dir:       dir,
		logger:    logger.With("module", "definitions"),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		workflows: make(map[string]*models.Workflow),
	}
}

// Load reads every *.yml / *.yaml file in the store directory. A file that
// fails to parse or validate is logged and skipped; it never prevents the
// remaining definitions from loading.
func (s *Store) Load() error {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("failed to create definitions directory %s: %w", s.dir, err)
	}

	root := os.DirFS(s.dir)

	var files []string

	for _, pattern := range []string{"*.yml", "*.yaml"} {
		matches, err := fs.Glob(root, pattern)
		if err != nil {
			return fmt.Errorf("failed to list definition files: %w", err)
		}

		files = append(files, matches...)
	}

	loaded := make(map[string]*models.Workflow, len(files))

	for _, file := range files {
		workflow, err := s.parseFile(path.Join(s.dir, file))
		if err != nil {
			s.logger.Warn("Skipping workflow definition", "file", file, "error", err)

			continue
		}

		loaded[workflow.Name] = workflow
		s.logger.Info("Loaded workflow definition", "name", workflow.Name, "steps", len(workflow.Steps))
	}

	s.mu.Lock()
	s.workflows = loaded
	s.mu.Unlock()

	return nil
}

// Reload re-reads the directory, replacing the snapshot atomically.
func (s *Store) Reload() error {
	return s.Load()
}

// Get returns the definition loaded under name.
func (s *Store) Get(name string) (*models.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workflow, ok := s.workflows[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrWorkflowNotFound, name)
	}

	return workflow, nil
}

// List returns all loaded definitions sorted by name.
func (s *Store) List() []*models.Workflow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workflows := make([]*models.Workflow, 0, len(s.workflows))
	for _, workflow := range s.workflows {
		workflows = append(workflows, workflow)
	}

	sort.Slice(workflows, func(i, j int) bool {
		return workflows[i].Name < workflows[j].Name
	})

	return workflows
}

// ListSummaries returns the listing shape for every loaded workflow,
// sorted by name.
func (s *Store) ListSummaries() []models.WorkflowSummary {
	workflows := s.List()

	summaries := make([]models.WorkflowSummary, 0, len(workflows))
	for _, workflow := range workflows {
		summaries = append(summaries, workflow.Summary())
	}

	return summaries
}

// Create validates and writes a new definition file, then reloads the store.
func (s *Store) Create(name string, definition map[string]any) error {
	if name == "" {
		return errors.New("workflow name is required")
	}

	if definition == nil {
		return errors.New("workflow definition is required")
	}

	if definition["name"] == nil || definition["name"] == "" {
		definition["name"] = name
	}

	data, err := yaml.Marshal(definition)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow %s: %w", name, err)
	}

	if _, err := s.parse(data, name); err != nil {
		return fmt.Errorf("invalid workflow %s: %w", name, err)
	}

	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("failed to create definitions directory %s: %w", s.dir, err)
	}

	filePath := filepath.Clean(path.Join(s.dir, name+".yml"))
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write workflow %s: %w", name, err)
	}

	return s.Reload()
}

func (s *Store) parseFile(filePath string) (*models.Workflow, error) {
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	stem := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))

	return s.parse(data, stem)
}

// parse decodes and validates a definition document. fallbackName is used
// when the document carries no name field (the filename stem).
func (s *Store) parse(data []byte, fallbackName string) (*models.Workflow, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var workflow models.Workflow
	if err := yaml.Unmarshal(data, &workflow); err != nil {
		return nil, fmt.Errorf("failed to decode workflow: %w", err)
	}

	if workflow.Name == "" {
		workflow.Name = fallbackName
	}

	if err := s.validate.Struct(&workflow); err != nil {
		return nil, fmt.Errorf("workflow validation failed: %w", err)
	}

	return &workflow, nil
}
