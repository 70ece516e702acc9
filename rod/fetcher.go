// Package rod provides browser-automation implementations of
// scholarslide.Fetcher using Chrome via go-rod. Three modes mirror the
// acquisition tiers: stealth (automation markers disabled), plain headless,
// and a full visible browser as the last-resort fallback.
package rod

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/scholarslide/scholarslide"
)

// DefaultUserAgent is presented by the stealth mode instead of the headless
// Chrome default, which anti-automation checks key on.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultWaitSelector is the element the browser modes wait for before
// snapshotting the DOM. Scholarly article pages render their content inside
// an article element.
const DefaultWaitSelector = "article"

// Ensure Fetcher implements scholarslide.Fetcher at compile time.
var _ scholarslide.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered markup by driving a Chrome browser. The
// browser process is launched inside each Fetch call and torn down on every
// exit path, so no automation session outlives an attempt.
type Fetcher struct {
	name         string
	headless     bool
	stealth      bool
	userAgent    string
	waitSelector string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent overrides the user agent presented by the browser.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithWaitSelector sets the CSS selector to wait for after navigation.
// An empty selector skips the wait.
func WithWaitSelector(selector string) Option {
	return func(f *Fetcher) {
		f.waitSelector = selector
	}
}

// NewStealthFetcher creates the highest-priority strategy: headless Chrome
// with automation-control markers disabled and a desktop user agent.
func NewStealthFetcher(opts ...Option) *Fetcher {
	return newFetcher("rod (stealth)", true, true, opts)
}

// NewHeadlessFetcher creates a plain headless Chrome strategy.
func NewHeadlessFetcher(opts ...Option) *Fetcher {
	return newFetcher("rod (headless)", true, false, opts)
}

// NewFullFetcher creates the last-resort strategy: a full, visible browser.
func NewFullFetcher(opts ...Option) *Fetcher {
	return newFetcher("rod (full browser)", false, false, opts)
}

func newFetcher(name string, headless, stealth bool, opts []Option) *Fetcher {
	f := &Fetcher{
		name:         name,
		headless:     headless,
		stealth:      stealth,
		userAgent:    DefaultUserAgent,
		waitSelector: DefaultWaitSelector,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name identifies the strategy in diagnostics.
func (f *Fetcher) Name() string {
	return f.name
}

// Fetch launches a browser, navigates to the URL, waits for the page to
// render, and returns the DOM snapshot. The browser and its launcher are
// released before Fetch returns, success or failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lnchr := launcher.New().
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(f.headless)
	if f.stealth {
		lnchr = lnchr.
			Set("disable-blink-features", "AutomationControlled").
			Set("user-agent", f.userAgent)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return "", fmt.Errorf("launching browser: %w", err)
	}
	defer lnchr.Kill()

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connecting to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Wait for the article content before snapshotting; dynamic pages
	// finish loading after the load event fires.
	if f.waitSelector != "" {
		if _, err := page.Element(f.waitSelector); err != nil {
			return "", err
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}
