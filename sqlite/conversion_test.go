package sqlite_test

import (
	"context"
	"testing"

	"github.com/scholarslide/scholarslide"
	"github.com/scholarslide/scholarslide/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MustOpenDB opens an in-memory database for testing.
func MustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	return db
}

func newConversion(url, doi string) *scholarslide.Conversion {
	return &scholarslide.Conversion{
		URL:     url,
		Method:  "http",
		Title:   "Effect of Thing on Outcome",
		Authors: "Alice Ada, Bob Boole et al.",
		Date:    "March 2024",
		DOI:     doi,
		Fields: map[string]string{
			scholarslide.FieldTitle:      "Effect of Thing on Outcome",
			scholarslide.FieldPopulation: "500 adults aged 60-75 with hypertension.",
			scholarslide.FieldFinding1:   "Mortality was 12.5% with treatment",
		},
		ContentHash: "abc123",
	}
}

func TestConversionService_CreateConversion(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewConversionService(MustOpenDB(t))
		conv := newConversion("https://example.com/a", "10.1001/jama.2024.1234")

		require.NoError(t, s.CreateConversion(context.Background(), conv))
		require.NotEmpty(t, conv.ID)
		require.False(t, conv.CreatedAt.IsZero())

		found, err := s.FindConversionByID(context.Background(), conv.ID)
		require.NoError(t, err)
		assert.Equal(t, conv.URL, found.URL)
		assert.Equal(t, conv.Method, found.Method)
		assert.Equal(t, conv.Title, found.Title)
		assert.Equal(t, conv.DOI, found.DOI)
		assert.Equal(t, conv.ContentHash, found.ContentHash)
		assert.Equal(t, conv.Fields, found.Fields)
		assert.True(t, found.CreatedAt.Equal(conv.CreatedAt))
	})

	t.Run("missing URL is invalid", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewConversionService(MustOpenDB(t))
		conv := newConversion("", "10.1/x")

		err := s.CreateConversion(context.Background(), conv)

		require.Error(t, err)
		assert.Equal(t, scholarslide.EINVALID, scholarslide.ErrorCode(err))
	})
}

func TestConversionService_FindConversionByID(t *testing.T) {
	t.Parallel()

	t.Run("unknown id yields not found", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewConversionService(MustOpenDB(t))

		_, err := s.FindConversionByID(context.Background(), "does-not-exist")

		require.Error(t, err)
		assert.Equal(t, scholarslide.ENOTFOUND, scholarslide.ErrorCode(err))
	})
}

func TestConversionService_FindConversions(t *testing.T) {
	t.Parallel()

	t.Run("filters by URL and DOI", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewConversionService(MustOpenDB(t))
		ctx := context.Background()
		require.NoError(t, s.CreateConversion(ctx, newConversion("https://example.com/a", "10.1/a")))
		require.NoError(t, s.CreateConversion(ctx, newConversion("https://example.com/b", "10.1/b")))
		require.NoError(t, s.CreateConversion(ctx, newConversion("https://example.com/a", "10.1/a")))

		url := "https://example.com/a"
		byURL, err := s.FindConversions(ctx, scholarslide.ConversionFilter{URL: &url})
		require.NoError(t, err)
		assert.Len(t, byURL, 2)

		doi := "10.1/b"
		byDOI, err := s.FindConversions(ctx, scholarslide.ConversionFilter{DOI: &doi})
		require.NoError(t, err)
		require.Len(t, byDOI, 1)
		assert.Equal(t, "https://example.com/b", byDOI[0].URL)
	})

	t.Run("newest first with limit and offset", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewConversionService(MustOpenDB(t))
		ctx := context.Background()
		first := newConversion("https://example.com/1", "10.1/1")
		second := newConversion("https://example.com/2", "10.1/2")
		third := newConversion("https://example.com/3", "10.1/3")
		require.NoError(t, s.CreateConversion(ctx, first))
		require.NoError(t, s.CreateConversion(ctx, second))
		require.NoError(t, s.CreateConversion(ctx, third))

		page, err := s.FindConversions(ctx, scholarslide.ConversionFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, third.ID, page[0].ID)
		assert.Equal(t, second.ID, page[1].ID)

		rest, err := s.FindConversions(ctx, scholarslide.ConversionFilter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, first.ID, rest[0].ID)
	})

	t.Run("no matches yields an empty result", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewConversionService(MustOpenDB(t))
		url := "https://example.com/none"

		convs, err := s.FindConversions(context.Background(), scholarslide.ConversionFilter{URL: &url})

		require.NoError(t, err)
		assert.Empty(t, convs)
	})
}

func TestConversionService_DeleteConversion(t *testing.T) {
	t.Parallel()

	t.Run("removes the record", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewConversionService(MustOpenDB(t))
		ctx := context.Background()
		conv := newConversion("https://example.com/a", "10.1/a")
		require.NoError(t, s.CreateConversion(ctx, conv))

		require.NoError(t, s.DeleteConversion(ctx, conv.ID))

		_, err := s.FindConversionByID(ctx, conv.ID)
		assert.Equal(t, scholarslide.ENOTFOUND, scholarslide.ErrorCode(err))
	})

	t.Run("unknown id yields not found", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewConversionService(MustOpenDB(t))

		err := s.DeleteConversion(context.Background(), "does-not-exist")

		require.Error(t, err)
		assert.Equal(t, scholarslide.ENOTFOUND, scholarslide.ErrorCode(err))
	})
}
