package facet

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionMembership(t *testing.T) {
	format := newTestAdapter(t, "format", "format_f")
	language := newTestAdapter(t, "language", "language_f")

	c := NewCollection(format, language)

	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Has("format"))
	assert.Same(t, language, c.Get("language"))
	assert.Nil(t, c.Get("missing"))

	// re-adding a name keeps its position
	replacement := newTestAdapter(t, "format", "format_other_f")
	c.Add(replacement)

	assert.Equal(t, []string{"format", "language"}, c.Names())
	assert.Same(t, replacement, c.Get("format"))
	assert.Equal(t, []*Adapter{replacement, language}, slices.Collect(c.All()))
}

func TestCollectionState(t *testing.T) {
	c := NewCollection(newTestAdapter(t, "format", "format_f"), newTestAdapter(t, "language", "language_f"))

	s := NewState()
	s.Params.Set("q", "cats")
	s.Filters["format"] = []string{"Book"}
	c.SetComponentState(s)

	state := c.ComponentState()
	assert.Equal(t, []string{"Book"}, state.Filters["format"])
	assert.Empty(t, state.Filters["language"])
	assert.False(t, state.Params.Has("q"))
}

func TestCollectionSearchParameters(t *testing.T) {
	format := newTestAdapter(t, "format", "format_f")
	format.SetFilterValues([]string{"Book"})

	c := NewCollection(format, newTestAdapter(t, "language", "language_f"))

	params := c.SearchParameters()

	assert.Equal(t, []string{"true"}, params["facet"])
	assert.Equal(t, []string{"format_f", "language_f"}, params["facet.field"])
	assert.Equal(t, []string{`{!q.op=AND}format_f:("Book")`}, params["fq"])
}

func TestCollectionRecordCollection(t *testing.T) {
	c := NewCollection(newTestAdapter(t, "format", "format_f"), newTestAdapter(t, "language", "language_f"))

	r := countsResponse{
		"format_f":   {{"Book", 3}, {"Map", 1}},
		"language_f": {{"English", 4}},
	}

	require.NoError(t, c.SetRecordCollection(r))
	assert.Equal(t, 3, c.AggregatedCount())
}
