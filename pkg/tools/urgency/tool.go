// Package urgency implements the ai_classify_urgency workflow tool: keyword
// hit counting against a configurable list, producing a tiered label.
package urgency

import (
	"context"
	"log/slog"
	"strings"

	"github.com/paperflow-io/paperflow/pkg/models"
)

const (
	LevelNormal = "normal"
	LevelHigh   = "high"
	LevelUrgent = "urgent"
)

type Tool struct {
	Content  string
	Keywords []string
}

func NewTool(params map[string]any) *Tool {
	if params == nil {
		params = map[string]any{}
	}

	content, _ := params["content"].(string)

	var keywords []string

	if raw, ok := params["keywords"].([]any); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				keywords = append(keywords, s)
			}
		}
	}

	return &Tool{Content: content, Keywords: keywords}
}

func (t *Tool) Execute(_ context.Context, _ models.ExecutionContext, logger *slog.Logger) (any, error) {
	content := strings.ToLower(t.Content)

	score := 0

	for _, keyword := range t.Keywords {
		if keyword != "" && strings.Contains(content, strings.ToLower(keyword)) {
			score++
		}
	}

	level := LevelNormal

	switch {
	case score >= 2:
		level = LevelUrgent
	case score == 1:
		level = LevelHigh
	}

	logger.Debug("Classified urgency", "score", score, "level", level)

	return map[string]any{
		"urgency_level": level,
		"urgency_score": score,
	}, nil
}
