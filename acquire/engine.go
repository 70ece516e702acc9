// Package acquire provides the multi-strategy acquisition engine. It tries
// an ordered list of fetch strategies against a single URL and returns the
// first result that passes the success predicate.
package acquire

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/scholarslide/scholarslide"
)

// DefaultMinContentLength is the default minimum markup length for an
// attempt to count as a success. Shorter responses are treated as consent
// walls or error stubs masquerading as content.
const DefaultMinContentLength = 500

// DefaultAttemptTimeout bounds a single strategy attempt, browser page-load
// waits included.
const DefaultAttemptTimeout = 40 * time.Second

// Ensure Engine implements scholarslide.Acquirer at compile time.
var _ scholarslide.Acquirer = (*Engine)(nil)

// Engine orchestrates fetch strategies in a fixed priority order: most
// stealthy and highest fidelity first, cheapest and most compatible last.
// Each strategy is tried exactly once per acquisition; there is no retry
// within a strategy and no backoff. Falling back to a different mechanism
// is the effective retry.
type Engine struct {
	// Strategies in priority order. Required.
	Strategies []scholarslide.Fetcher

	// AttemptTimeout bounds each strategy attempt. Defaults to
	// DefaultAttemptTimeout when zero.
	AttemptTimeout time.Duration

	// MinContentLength is the success-predicate threshold. Defaults to
	// DefaultMinContentLength when zero.
	MinContentLength int

	// Logger receives per-attempt diagnostics. Optional.
	Logger *slog.Logger
}

// ExhaustedError is returned when every configured strategy has been
// attempted and rejected. It carries all attempt records so callers can
// inspect individual failures in verbose mode.
type ExhaustedError struct {
	URL      string
	Attempts []scholarslide.AcquisitionAttempt
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d acquisition strategies failed for %s", len(e.Attempts), e.URL)
}

// Acquire tries each strategy in order and returns the first acceptable
// markup as a RawDocument recording the winning strategy. No strategy after
// the winner is invoked. It fails with *ExhaustedError only after every
// strategy has been attempted.
func (e *Engine) Acquire(ctx context.Context, url string) (*scholarslide.RawDocument, error) {
	minLen := e.MinContentLength
	if minLen <= 0 {
		minLen = DefaultMinContentLength
	}
	timeout := e.AttemptTimeout
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}

	attempts := make([]scholarslide.AcquisitionAttempt, 0, len(e.Strategies))

	for _, strategy := range e.Strategies {
		attempt := e.tryStrategy(ctx, strategy, url, timeout, minLen)
		attempts = append(attempts, attempt.record)

		if attempt.record.Succeeded {
			e.log(slog.LevelInfo, "strategy succeeded",
				"strategy", attempt.record.StrategyName,
				"url", url,
				"bytes", attempt.record.ContentLength,
			)
			return &scholarslide.RawDocument{
				URL:         url,
				HTML:        attempt.html,
				Method:      attempt.record.StrategyName,
				ContentHash: hashContent(attempt.html),
				FetchedAt:   time.Now().UTC(),
			}, nil
		}

		e.log(slog.LevelWarn, "strategy failed",
			"strategy", attempt.record.StrategyName,
			"url", url,
			"bytes", attempt.record.ContentLength,
			"err", attempt.record.Err,
		)
	}

	return nil, &ExhaustedError{URL: url, Attempts: attempts}
}

// attemptResult pairs the attempt record with the markup it produced.
type attemptResult struct {
	record scholarslide.AcquisitionAttempt
	html   string
}

// tryStrategy invokes one strategy with a bounded timeout and classifies
// the outcome: success requires a non-error return and content longer than
// the minimum threshold.
func (e *Engine) tryStrategy(ctx context.Context, strategy scholarslide.Fetcher, url string, timeout time.Duration, minLen int) attemptResult {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	record := scholarslide.AcquisitionAttempt{StrategyName: strategy.Name()}

	html, err := strategy.Fetch(attemptCtx, url)
	record.ContentLength = len(html)
	if err != nil {
		record.Err = err
		return attemptResult{record: record}
	}
	if len(html) <= minLen {
		record.Err = scholarslide.Errorf(scholarslide.EUNAVAILABLE,
			"content too short: %d bytes (minimum %d)", len(html), minLen)
		return attemptResult{record: record}
	}

	record.Succeeded = true
	return attemptResult{record: record, html: html}
}

func (e *Engine) log(level slog.Level, msg string, args ...any) {
	if e.Logger != nil {
		e.Logger.Log(context.Background(), level, msg, args...)
	}
}

// hashContent computes an xxhash of the markup as a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
