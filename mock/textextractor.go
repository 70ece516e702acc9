package mock

import "github.com/scholarslide/scholarslide"

var _ scholarslide.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of scholarslide.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
