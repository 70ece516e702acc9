package mock

import "github.com/scholarslide/scholarslide"

var (
	_ scholarslide.ArticleParser   = (*ArticleParser)(nil)
	_ scholarslide.ArticleDocument = (*ArticleDocument)(nil)
)

// ArticleParser is a mock implementation of scholarslide.ArticleParser.
type ArticleParser struct {
	ParseFn func(html string) (scholarslide.ArticleDocument, error)
}

func (p *ArticleParser) Parse(html string) (scholarslide.ArticleDocument, error) {
	return p.ParseFn(html)
}

// ArticleDocument is a mock implementation of scholarslide.ArticleDocument.
type ArticleDocument struct {
	MetadataFn           func() scholarslide.Metadata
	StructuredAbstractFn func() *scholarslide.StructuredAbstract
	AbstractTextFn       func() string
}

func (d *ArticleDocument) Metadata() scholarslide.Metadata {
	return d.MetadataFn()
}

func (d *ArticleDocument) StructuredAbstract() *scholarslide.StructuredAbstract {
	return d.StructuredAbstractFn()
}

func (d *ArticleDocument) AbstractText() string {
	return d.AbstractTextFn()
}
