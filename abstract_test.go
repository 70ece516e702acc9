package scholarslide_test

import (
	"testing"

	"github.com/scholarslide/scholarslide"
	"github.com/stretchr/testify/assert"
)

func TestStructuredAbstract(t *testing.T) {
	t.Parallel()

	t.Run("preserves document order and label case", func(t *testing.T) {
		t.Parallel()

		a := scholarslide.NewStructuredAbstract([]scholarslide.AbstractSection{
			{Label: "Importance", Text: "Hypertension is common."},
			{Label: "Participants", Text: "500 adults."},
			{Label: "Results", Text: "Mortality fell."},
		})

		assert.Equal(t, []string{"Importance", "Participants", "Results"}, a.Labels())
		assert.Equal(t, 3, a.Len())
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		t.Parallel()

		a := scholarslide.NewStructuredAbstract([]scholarslide.AbstractSection{
			{Label: "Participants", Text: "500 adults."},
		})

		text, ok := a.Get("Participants")
		assert.True(t, ok)
		assert.Equal(t, "500 adults.", text)

		_, ok = a.Get("participants")
		assert.False(t, ok)
	})

	t.Run("empty mapping is a valid state", func(t *testing.T) {
		t.Parallel()

		a := scholarslide.NewStructuredAbstract(nil)

		assert.True(t, a.Empty())
		assert.Equal(t, 0, a.Len())
		assert.Empty(t, a.Text())
	})

	t.Run("nil abstract behaves as empty", func(t *testing.T) {
		t.Parallel()

		var a *scholarslide.StructuredAbstract

		assert.True(t, a.Empty())
		_, ok := a.Get("Results")
		assert.False(t, ok)
	})

	t.Run("joins section bodies with single spaces", func(t *testing.T) {
		t.Parallel()

		a := scholarslide.NewStructuredAbstract([]scholarslide.AbstractSection{
			{Label: "Participants", Text: "500 adults."},
			{Label: "Results", Text: "Mortality fell."},
		})

		assert.Equal(t, "500 adults. Mortality fell.", a.Text())
	})

	t.Run("duplicate labels keep the first occurrence", func(t *testing.T) {
		t.Parallel()

		a := scholarslide.NewStructuredAbstract([]scholarslide.AbstractSection{
			{Label: "Results", Text: "first"},
			{Label: "Results", Text: "second"},
		})

		text, ok := a.Get("Results")
		assert.True(t, ok)
		assert.Equal(t, "first", text)
		assert.Equal(t, 1, a.Len())
	})
}
