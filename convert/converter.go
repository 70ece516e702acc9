// Package convert orchestrates one URL-to-fields conversion: acquisition,
// document parsing, field and metadata extraction, and optional history
// persistence. Everything after acquisition is pure in-memory computation;
// each conversion owns an independent instance graph.
package convert

import (
	"context"
	"log/slog"

	"github.com/scholarslide/scholarslide"
	"github.com/scholarslide/scholarslide/extract"
)

// Converter turns an article URL into an ArticleRecord.
type Converter struct {
	// Acquirer obtains the article markup. Required.
	Acquirer scholarslide.Acquirer

	// Parser builds the document model. Required.
	Parser scholarslide.ArticleParser

	// Fields extracts the six slide fields. Required.
	Fields *extract.Extractor

	// Text supplies last-resort fallback text when the document exposes
	// neither a structured abstract nor an abstract region. Optional.
	Text scholarslide.TextExtractor

	// Conversions persists a history record per completed conversion.
	// Optional; persistence failures do not fail the conversion.
	Conversions scholarslide.ConversionService

	// Logger receives progress diagnostics. Optional.
	Logger *slog.Logger
}

// Convert acquires the article at url and extracts the full field mapping.
// Only total acquisition exhaustion terminates a conversion; every
// extraction gap degrades to the field's sentinel, so a successful
// acquisition always yields a complete record.
func (c *Converter) Convert(ctx context.Context, url string) (*scholarslide.ArticleRecord, error) {
	raw, err := c.Acquirer.Acquire(ctx, url)
	if err != nil {
		return nil, err
	}
	c.log("article acquired", "url", url, "method", raw.Method, "bytes", len(raw.HTML))

	doc, err := c.Parser.Parse(raw.HTML)
	if err != nil {
		return nil, err
	}

	abstract := doc.StructuredAbstract()
	fallback := c.fallbackText(doc, abstract, raw.HTML)

	record := &scholarslide.ArticleRecord{
		URL:      url,
		Method:   raw.Method,
		Metadata: doc.Metadata(),
		Fields:   c.Fields.ExtractAll(abstract, fallback),
	}
	c.log("extraction complete", "url", url, "sections", abstract.Len())

	if c.Conversions != nil {
		conv := &scholarslide.Conversion{
			URL:         url,
			Method:      raw.Method,
			Title:       record.Metadata.Title,
			Authors:     record.Metadata.Authors,
			Date:        record.Metadata.Date,
			DOI:         record.Metadata.DOI,
			Fields:      record.FieldMap(),
			ContentHash: raw.ContentHash,
		}
		if err := c.Conversions.CreateConversion(ctx, conv); err != nil {
			c.log("history record not saved", "url", url, "err", err)
		}
	}

	return record, nil
}

// fallbackText resolves the whole-abstract text for the regex fallback
// path: structured abstract bodies first, then the document's abstract
// region, then trafilatura-style body text as a last resort.
func (c *Converter) fallbackText(doc scholarslide.ArticleDocument, abstract *scholarslide.StructuredAbstract, rawHTML string) string {
	if !abstract.Empty() {
		return abstract.Text()
	}
	if text := doc.AbstractText(); text != "" {
		return text
	}
	if c.Text != nil {
		if text, err := c.Text.ExtractText(rawHTML); err == nil {
			return text
		}
	}
	return ""
}

func (c *Converter) log(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Info(msg, args...)
	}
}
