// Package entities implements the ai_extract_entities workflow tool: pattern
// based extraction of dates, monetary amounts, vehicle identifiers, and
// deadlines from communication text. Extraction is heuristic, not NLP.
package entities

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/paperflow-io/paperflow/pkg/models"
)

var defaultTypes = []string{"dates", "amounts", "vehicles", "deadlines"}

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
		regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),
		regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`),
	}
	amountPattern = regexp.MustCompile(`\$[\d,]+\.?\d*`)

	vehiclePatterns = []*regexp.Regexp{
		regexp.MustCompile(`License:\s*([A-Z0-9]+)`),
		regexp.MustCompile(`VIN:\s*([A-Z0-9]+)`),
		regexp.MustCompile(`\d{4}\s+[A-Za-z]+`), // year + make
	}
	deadlinePattern = regexp.MustCompile(`(?i)(?:by|before|deadline|due)\s+(\d{1,2}/\d{1,2}/\d{4})`)
)

type Tool struct {
	Content string
	Types   []string
}

func NewTool(params map[string]any) *Tool {
	if params == nil {
		params = map[string]any{}
	}

	content, _ := params["content"].(string)

	types := defaultTypes

	if raw, ok := params["types"].([]any); ok {
		parsed := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				parsed = append(parsed, s)
			}
		}

		if len(parsed) > 0 {
			types = parsed
		}
	}

	return &Tool{Content: content, Types: types}
}

func (t *Tool) Execute(_ context.Context, _ models.ExecutionContext, logger *slog.Logger) (any, error) {
	extracted := map[string][]string{
		"dates":     extractDates(t.Content),
		"amounts":   amountPattern.FindAllString(t.Content, -1),
		"vehicles":  extractVehicles(t.Content),
		"deadlines": extractDeadlines(t.Content),
	}

	result := make(map[string]any, len(t.Types))

	for _, entityType := range t.Types {
		values, ok := extracted[entityType]
		if !ok {
			continue
		}

		if values == nil {
			values = []string{}
		}

		result[entityType] = values
	}

	logger.Debug("Extracted entities", "types", t.Types)

	return map[string]any{"entities": result}, nil
}

func extractDates(content string) []string {
	var dates []string

	for _, pattern := range datePatterns {
		dates = append(dates, pattern.FindAllString(content, -1)...)
	}

	return dates
}

func extractVehicles(content string) []string {
	var vehicles []string

	for _, pattern := range vehiclePatterns {
		matches := pattern.FindAllStringSubmatch(content, -1)
		for _, match := range matches {
			if len(match) > 1 {
				vehicles = append(vehicles, match[1])
			} else {
				vehicles = append(vehicles, match[0])
			}
		}
	}

	return vehicles
}

func extractDeadlines(content string) []string {
	var deadlines []string

	for _, match := range deadlinePattern.FindAllStringSubmatch(content, -1) {
		deadlines = append(deadlines, match[1])
	}

	return deadlines
}
