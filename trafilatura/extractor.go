// Package trafilatura provides a go-trafilatura based implementation of
// scholarslide.TextExtractor. It is the last-resort source of fallback
// text: when a page exposes neither a structured abstract nor a
// recognizable abstract region, the whole-document body text feeds the
// regex fallback path.
package trafilatura

import (
	"errors"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/scholarslide/scholarslide"
)

// Ensure Extractor implements scholarslide.TextExtractor at compile time.
var _ scholarslide.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull readable body text out of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText processes raw HTML and returns the main body text with
// boilerplate removed.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	return result.ContentText, nil
}
