package convert_test

import (
	"context"
	"errors"
	"testing"

	"github.com/scholarslide/scholarslide"
	"github.com/scholarslide/scholarslide/acquire"
	"github.com/scholarslide/scholarslide/convert"
	"github.com/scholarslide/scholarslide/extract"
	"github.com/scholarslide/scholarslide/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleURL = "https://example.com/article/123"

func acquirerReturning(method, html string) *mock.Acquirer {
	return &mock.Acquirer{
		AcquireFn: func(ctx context.Context, url string) (*scholarslide.RawDocument, error) {
			return &scholarslide.RawDocument{URL: url, HTML: html, Method: method, ContentHash: "abc123"}, nil
		},
	}
}

func documentWith(abstract *scholarslide.StructuredAbstract, abstractText string) *mock.ArticleDocument {
	return &mock.ArticleDocument{
		MetadataFn: func() scholarslide.Metadata {
			return scholarslide.Metadata{
				Title:   "Effect of Thing on Outcome",
				Authors: "Alice Ada, Bob Boole et al.",
				Date:    "March 2024",
				DOI:     "10.1001/jama.2024.1234",
			}
		},
		StructuredAbstractFn: func() *scholarslide.StructuredAbstract { return abstract },
		AbstractTextFn:       func() string { return abstractText },
	}
}

func parserReturning(doc scholarslide.ArticleDocument) *mock.ArticleParser {
	return &mock.ArticleParser{
		ParseFn: func(html string) (scholarslide.ArticleDocument, error) { return doc, nil },
	}
}

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("complete record from a structured abstract", func(t *testing.T) {
		t.Parallel()

		abstract := scholarslide.NewStructuredAbstract([]scholarslide.AbstractSection{
			{Label: "Participants", Text: "500 adults aged 60-75 with hypertension."},
			{Label: "Interventions", Text: "Drug X versus placebo."},
			{Label: "Results", Text: "Mortality was 12.5% with treatment. Control mortality was 18.2% overall."},
		})

		c := &convert.Converter{
			Acquirer: acquirerReturning("http", "<html>...</html>"),
			Parser:   parserReturning(documentWith(abstract, "")),
			Fields:   extract.NewExtractor(),
		}

		record, err := c.Convert(context.Background(), articleURL)

		require.NoError(t, err)
		assert.Equal(t, articleURL, record.URL)
		assert.Equal(t, "http", record.Method)
		assert.Equal(t, "Effect of Thing on Outcome", record.Metadata.Title)
		assert.Equal(t, "500 adults aged 60-75 with hypertension.", record.Fields[scholarslide.FieldPopulation].Text)
		assert.Equal(t, "Drug X versus placebo.", record.Fields[scholarslide.FieldIntervention].Text)
		assert.Equal(t, "Mortality was 12.5% with treatment", record.Fields[scholarslide.FieldFinding1].Text)
	})

	t.Run("field map always carries all ten keys", func(t *testing.T) {
		t.Parallel()

		c := &convert.Converter{
			Acquirer: acquirerReturning("http", "<html>...</html>"),
			Parser:   parserReturning(documentWith(scholarslide.NewStructuredAbstract(nil), "")),
			Fields:   extract.NewExtractor(),
		}

		record, err := c.Convert(context.Background(), articleURL)

		require.NoError(t, err)
		m := record.FieldMap()
		require.Len(t, m, 10)
		for _, name := range scholarslide.FieldNames() {
			assert.NotEmpty(t, m[name], name)
		}
		assert.Equal(t, "Population data not found", m[scholarslide.FieldPopulation])
		assert.Equal(t, "Finding 2 not found", m[scholarslide.FieldFinding2])
	})

	t.Run("acquisition exhaustion terminates the conversion", func(t *testing.T) {
		t.Parallel()

		c := &convert.Converter{
			Acquirer: &mock.Acquirer{
				AcquireFn: func(ctx context.Context, url string) (*scholarslide.RawDocument, error) {
					return nil, &acquire.ExhaustedError{URL: url}
				},
			},
			Parser: parserReturning(nil),
			Fields: extract.NewExtractor(),
		}

		record, err := c.Convert(context.Background(), articleURL)

		require.Error(t, err)
		assert.Nil(t, record)

		var exhausted *acquire.ExhaustedError
		assert.ErrorAs(t, err, &exhausted)
	})

	t.Run("abstract region feeds the fallback path when structure is missing", func(t *testing.T) {
		t.Parallel()

		abstractText := "Population: elderly adults with diabetes across two provinces. Results: Mortality fell to 9.1% with treatment. Conclusions: effective."
		c := &convert.Converter{
			Acquirer: acquirerReturning("rod (stealth)", "<html>...</html>"),
			Parser:   parserReturning(documentWith(scholarslide.NewStructuredAbstract(nil), abstractText)),
			Fields:   extract.NewExtractor(),
		}

		record, err := c.Convert(context.Background(), articleURL)

		require.NoError(t, err)
		assert.Equal(t, "elderly adults with diabetes across two provinces", record.Fields[scholarslide.FieldPopulation].Text)
		assert.Equal(t, "Mortality fell to 9.1% with treatment", record.Fields[scholarslide.FieldFinding1].Text)
	})

	t.Run("body text extraction is the last-resort fallback", func(t *testing.T) {
		t.Parallel()

		var extracted bool
		c := &convert.Converter{
			Acquirer: acquirerReturning("http", "<html>body</html>"),
			Parser:   parserReturning(documentWith(scholarslide.NewStructuredAbstract(nil), "")),
			Fields:   extract.NewExtractor(),
			Text: &mock.TextExtractor{
				ExtractTextFn: func(html string) (string, error) {
					extracted = true
					return "Intervention: metformin twice daily. Results follow.", nil
				},
			},
		}

		record, err := c.Convert(context.Background(), articleURL)

		require.NoError(t, err)
		assert.True(t, extracted)
		assert.Equal(t, "metformin twice daily", record.Fields[scholarslide.FieldIntervention].Text)
	})

	t.Run("structured abstract suppresses the body text extractor", func(t *testing.T) {
		t.Parallel()

		abstract := scholarslide.NewStructuredAbstract([]scholarslide.AbstractSection{
			{Label: "Results", Text: "Mortality was 12.5% with treatment."},
		})
		c := &convert.Converter{
			Acquirer: acquirerReturning("http", "<html>body</html>"),
			Parser:   parserReturning(documentWith(abstract, "region text")),
			Fields:   extract.NewExtractor(),
			Text: &mock.TextExtractor{
				ExtractTextFn: func(html string) (string, error) {
					t.Error("text extractor should not run")
					return "", nil
				},
			},
		}

		_, err := c.Convert(context.Background(), articleURL)

		require.NoError(t, err)
	})

	t.Run("completed conversion is persisted to history", func(t *testing.T) {
		t.Parallel()

		var saved *scholarslide.Conversion
		c := &convert.Converter{
			Acquirer: acquirerReturning("http", "<html>...</html>"),
			Parser:   parserReturning(documentWith(scholarslide.NewStructuredAbstract(nil), "")),
			Fields:   extract.NewExtractor(),
			Conversions: &mock.ConversionService{
				CreateConversionFn: func(ctx context.Context, conv *scholarslide.Conversion) error {
					saved = conv
					return nil
				},
			},
		}

		_, err := c.Convert(context.Background(), articleURL)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, articleURL, saved.URL)
		assert.Equal(t, "http", saved.Method)
		assert.Equal(t, "Effect of Thing on Outcome", saved.Title)
		assert.Equal(t, "abc123", saved.ContentHash)
		assert.Len(t, saved.Fields, 10)
	})

	t.Run("persistence failure does not fail the conversion", func(t *testing.T) {
		t.Parallel()

		c := &convert.Converter{
			Acquirer: acquirerReturning("http", "<html>...</html>"),
			Parser:   parserReturning(documentWith(scholarslide.NewStructuredAbstract(nil), "")),
			Fields:   extract.NewExtractor(),
			Conversions: &mock.ConversionService{
				CreateConversionFn: func(ctx context.Context, conv *scholarslide.Conversion) error {
					return errors.New("disk full")
				},
			},
		}

		record, err := c.Convert(context.Background(), articleURL)

		require.NoError(t, err)
		assert.NotNil(t, record)
	})

	t.Run("parse failure propagates", func(t *testing.T) {
		t.Parallel()

		c := &convert.Converter{
			Acquirer: acquirerReturning("http", "<html>...</html>"),
			Parser: &mock.ArticleParser{
				ParseFn: func(html string) (scholarslide.ArticleDocument, error) {
					return nil, scholarslide.Errorf(scholarslide.EINTERNAL, "parse failed")
				},
			},
			Fields: extract.NewExtractor(),
		}

		record, err := c.Convert(context.Background(), articleURL)

		require.Error(t, err)
		assert.Nil(t, record)
		assert.Equal(t, scholarslide.EINTERNAL, scholarslide.ErrorCode(err))
	})
}
