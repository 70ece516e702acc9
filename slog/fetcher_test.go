package slog_test

import (
	"bytes"
	"context"
	"errors"
	stdslog "log/slog"
	"testing"

	"github.com/scholarslide/scholarslide/mock"
	scslog "github.com/scholarslide/scholarslide/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs successful fetches with byte counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

		next := &mock.Fetcher{
			NameFn: func() string { return "http" },
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>article</html>", nil
			},
		}

		f := scslog.NewLoggingFetcher(next, logger)
		html, err := f.Fetch(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "<html>article</html>", html)

		out := buf.String()
		assert.Contains(t, out, "strategy=http")
		assert.Contains(t, out, "url=https://example.com/a")
		assert.Contains(t, out, "bytes=20")
	})

	t.Run("logs failures as warnings and propagates the error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

		next := &mock.Fetcher{
			NameFn: func() string { return "rod (stealth)" },
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("navigation timed out")
			},
		}

		f := scslog.NewLoggingFetcher(next, logger)
		_, err := f.Fetch(context.Background(), "https://example.com/a")

		require.Error(t, err)
		assert.EqualError(t, err, "navigation timed out")

		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "navigation timed out")
	})

	t.Run("name delegates to the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		next := &mock.Fetcher{NameFn: func() string { return "headless" }}
		f := scslog.NewLoggingFetcher(next, stdslog.New(stdslog.NewTextHandler(&bytes.Buffer{}, nil)))

		assert.Equal(t, "headless", f.Name())
	})
}
