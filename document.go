package scholarslide

import "time"

// RawDocument owns the acquired markup for one conversion. It is never
// mutated after acquisition.
type RawDocument struct {
	URL         string
	HTML        string
	Method      string // name of the strategy that produced the markup
	ContentHash string
	FetchedAt   time.Time
}

// ArticleDocument is a parsed, queryable view of acquired markup shared by
// all extraction logic. Parsing is best-effort and tolerant of malformed
// input; implementations memoize the structured abstract so repeated field
// lookups within one conversion reuse a single parse.
type ArticleDocument interface {
	// Metadata extracts citation metadata (title, authors, date, DOI).
	// Missing values carry their field sentinels; a missing date falls
	// back to the current month and year.
	Metadata() Metadata

	// StructuredAbstract returns the embedded machine-readable abstract
	// decomposed into ordered labeled sections. An empty abstract means
	// "no structured abstract present" and is not an error.
	StructuredAbstract() *StructuredAbstract

	// AbstractText returns the human-rendered abstract text located via
	// document selectors, or "" when no abstract region is found.
	AbstractText() string
}

// ArticleParser turns raw markup into an ArticleDocument.
type ArticleParser interface {
	Parse(html string) (ArticleDocument, error)
}

// TextExtractor pulls readable body text out of a whole page. It is the
// last-resort source of fallback text when a document exposes neither a
// structured abstract nor a recognizable abstract region.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}
