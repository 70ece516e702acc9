package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/scholarslide/scholarslide"
	"github.com/scholarslide/scholarslide/acquire"
	"github.com/scholarslide/scholarslide/convert"
	"github.com/scholarslide/scholarslide/extract"
	"github.com/scholarslide/scholarslide/goquery"
	schttp "github.com/scholarslide/scholarslide/http"
	"github.com/scholarslide/scholarslide/rod"
	scslog "github.com/scholarslide/scholarslide/slog"
	"github.com/scholarslide/scholarslide/sqlite"
	"github.com/scholarslide/scholarslide/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose     bool          `short:"v" help:"Enable verbose diagnostics"`
	Timeout     time.Duration `short:"t" default:"40s" help:"Timeout per acquisition attempt"`
	MinContent  int           `default:"500" help:"Minimum content length for an attempt to count as success"`
	FullBrowser bool          `help:"Enable the full visible-browser fallback strategy"`
	Output      string        `short:"o" help:"Write the field mapping JSON to a file instead of stdout"`
	DB          string        `help:"Record conversion history in a SQLite database at this path"`
	URL         string        `arg:"" required:"" help:"Article URL to convert"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scholarslide"),
		kong.Description("Convert a scholarly article URL to bounded slide fields"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Strategy priority order: most stealthy first, cheapest in the
	// middle, plain headless after it, full browser as the last resort.
	strategies := []scholarslide.Fetcher{
		rod.NewStealthFetcher(),
		schttp.NewFetcher(schttp.WithTimeout(cli.Timeout)),
		rod.NewHeadlessFetcher(),
	}
	if cli.FullBrowser {
		strategies = append(strategies, rod.NewFullFetcher())
	}
	if cli.Verbose {
		for i, s := range strategies {
			strategies[i] = scslog.NewLoggingFetcher(s, logger)
		}
	}

	engine := &acquire.Engine{
		Strategies:       strategies,
		AttemptTimeout:   cli.Timeout,
		MinContentLength: cli.MinContent,
		Logger:           logger,
	}

	converter := &convert.Converter{
		Acquirer: engine,
		Parser:   goquery.NewParser(),
		Fields:   extract.NewExtractor(),
		Text:     trafilatura.NewExtractor(),
		Logger:   logger,
	}

	if cli.DB != "" {
		db := sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		converter.Conversions = sqlite.NewConversionService(db)
	}

	record, err := converter.Convert(ctx, cli.URL)
	if err != nil {
		var exhausted *acquire.ExhaustedError
		if errors.As(err, &exhausted) && cli.Verbose {
			for _, attempt := range exhausted.Attempts {
				fmt.Fprintf(stderr, "  %s: %v\n", attempt.StrategyName, attempt.Err)
			}
		}
		return err
	}

	fmt.Fprintf(stderr, "Fetched via: %s\n", record.Method)

	return writeRecord(record, cli.Output, stdout)
}

// writeRecord encodes the field mapping as JSON to a file, or to stdout
// when no output path is given.
func writeRecord(record *scholarslide.ArticleRecord, path string, stdout io.Writer) error {
	out, err := json.MarshalIndent(record.FieldMap(), "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if path == "" {
		_, err = stdout.Write(out)
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
