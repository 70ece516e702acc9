package scholarslide

import "context"

// Fetcher is one concrete mechanism for retrieving a page's markup: a plain
// HTTP request or one of several browser-automation modes with different
// stealth and fidelity tradeoffs. A Fetcher is stateless per invocation and
// must release any process or session it opens on every exit path.
type Fetcher interface {
	// Name identifies the strategy in diagnostics (e.g. "rod (stealth)").
	Name() string

	// Fetch retrieves the page markup for url. For browser-automation
	// strategies the rendered DOM snapshot is the effective response.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// AcquisitionAttempt records the outcome of trying one fetch strategy.
// Attempts exist only for diagnostics and for selecting the terminal
// success; they are immutable once created.
type AcquisitionAttempt struct {
	StrategyName  string
	Succeeded     bool
	ContentLength int
	Err           error
}

// Acquirer obtains an article's markup, trying fetch strategies in priority
// order until one yields acceptable content.
type Acquirer interface {
	// Acquire returns the raw document for url, or an error only after
	// every configured strategy has been attempted and rejected.
	Acquire(ctx context.Context, url string) (*RawDocument, error)
}
