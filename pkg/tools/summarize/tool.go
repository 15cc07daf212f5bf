// Package summarize implements the ai_summarize workflow tool: a bounded
// extractive summary of a piece of communication text.
package summarize

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/paperflow-io/paperflow/pkg/models"
)

const defaultMaxLength = 200

var (
	whitespace    = regexp.MustCompile(`\s+`)
	sentenceSplit = regexp.MustCompile(`(?:[.!?])\s+`)
)

type Tool struct {
	Content   string
	MaxLength int
}

func NewTool(params map[string]any) *Tool {
	if params == nil {
		params = map[string]any{}
	}

	content, _ := params["content"].(string)

	maxLength := defaultMaxLength

	switch v := params["max_length"].(type) {
	case int:
		maxLength = v
	case float64:
		maxLength = int(v)
	}

	if maxLength <= 0 {
		maxLength = defaultMaxLength
	}

	return &Tool{Content: content, MaxLength: maxLength}
}

func (t *Tool) Execute(_ context.Context, _ models.ExecutionContext, logger *slog.Logger) (any, error) {
	summary := summarize(t.Content, t.MaxLength)

	logger.Debug("Summarized content",
		"original_length", len(t.Content),
		"summary_length", len(summary))

	return map[string]any{
		"summary":         summary,
		"original_length": len(t.Content),
	}, nil
}

// summarize keeps leading sentences while they fit within maxLength. A first
// sentence longer than maxLength is hard-truncated so the output is never
// empty for non-empty input.
func summarize(content string, maxLength int) string {
	text := strings.TrimSpace(whitespace.ReplaceAllString(content, " "))
	if len(text) <= maxLength {
		return text
	}

	var builder strings.Builder

	for _, sentence := range splitSentences(text) {
		if builder.Len() > 0 && builder.Len()+len(sentence)+1 > maxLength {
			break
		}

		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}

		builder.WriteString(sentence)

		if builder.Len() > maxLength {
			break
		}
	}

	summary := builder.String()
	if len(summary) > maxLength {
		// No room for the ellipsis on tiny limits, hard-cut instead.
		if maxLength <= 3 {
			return summary[:maxLength]
		}

		summary = strings.TrimSpace(summary[:maxLength-3]) + "..."
	}

	return summary
}

func splitSentences(text string) []string {
	ends := sentenceSplit.FindAllStringIndex(text, -1)

	sentences := make([]string, 0, len(ends)+1)
	start := 0

	for _, end := range ends {
		sentences = append(sentences, strings.TrimSpace(text[start:end[1]]))
		start = end[1]
	}

	if start < len(text) {
		sentences = append(sentences, strings.TrimSpace(text[start:]))
	}

	return sentences
}
