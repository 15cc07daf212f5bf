package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/paperflow-io/paperflow/pkg/history"
)

// NewHistory creates an execution history store from a database URL.
// postgres:// URLs use PostgreSQL; anything else is treated as a file path.
func NewHistory(ctx context.Context, logger *slog.Logger, databaseURL string) history.Store {
	provider := parseHistoryProvider(databaseURL)

	switch provider {
	case "postgres", "postgresql":
		store, err := history.NewPostgresStore(ctx, logger, databaseURL)
		if err != nil {
			panic(err)
		}

		return store
	default:
		store, err := history.NewFileStore(databaseURL)
		if err != nil {
			panic(err)
		}

		return store
	}
}

func parseHistoryProvider(databaseURL string) string {
	parts := strings.Split(databaseURL, "://")

	return parts[0]
}
