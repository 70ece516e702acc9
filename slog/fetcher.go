// Package slog provides logging decorators for scholarslide interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/scholarslide/scholarslide"
)

// Ensure LoggingFetcher implements scholarslide.Fetcher.
var _ scholarslide.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-attempt diagnostic logging.
type LoggingFetcher struct {
	next   scholarslide.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next scholarslide.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Name delegates to the wrapped fetcher.
func (f *LoggingFetcher) Name() string {
	return f.next.Name()
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Warn("fetch",
			"strategy", f.next.Name(),
			"url", url,
			"duration", time.Since(begin),
			"err", err.Error(),
		)
		return "", err
	}
	f.logger.Info("fetch",
		"strategy", f.next.Name(),
		"url", url,
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return html, nil
}
