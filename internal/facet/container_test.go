package facet

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func labels(seq func(func(*Value) bool)) []string {
	var res []string
	for v := range seq {
		res = append(res, v.DisplayLabel())
	}
	return res
}

func labeled(label string, count int) *Value {
	v := NewValue(label, count, false)
	v.Label = label
	return v
}

func TestValue(t *testing.T) {
	v := NewValue("bk", UnknownCount, false)

	assert.Equal(t, "bk", v.DisplayLabel())
	assert.False(t, v.HasCount())

	v.Label = "Book"
	v.Count = 0
	assert.Equal(t, "Book", v.DisplayLabel())
	assert.True(t, v.HasCount())
}

func TestCollators(t *testing.T) {
	assert.Equal(t, -1, BinaryCollator.CompareString("Banana", "apricot"))
	assert.Equal(t, -1, NewCollator(language.English).CompareString("apricot", "Banana"))
}

func TestListAdd(t *testing.T) {
	l := NewList()

	book := NewValue("Book", 10, true)
	l.Add(book)
	l.Add(book)
	l.Add(NewValue("Journal", 3, false))

	assert.Equal(t, 2, l.Count())
	assert.True(t, l.HasSelectedValue())

	// equal but distinct values are both kept
	l.Add(NewValue("Journal", 3, false))
	assert.Equal(t, 3, l.Count())
	assert.True(t, l.HasSelectedValue())

	assert.Equal(t, []string{"Book"}, labels(l.Selected()))
	assert.Equal(t, []string{"Journal", "Journal"}, labels(l.Unselected()))
}

func TestListSort(t *testing.T) {
	t.Run("label", func(t *testing.T) {
		l := NewList()
		for _, label := range []string{"b", "a", "c"} {
			l.Add(labeled(label, 0))
		}

		l.SortByLabel(BinaryCollator, false)
		assert.Equal(t, []string{"a", "b", "c"}, labels(l.All()))

		l.SortByLabel(BinaryCollator, true)
		assert.Equal(t, []string{"c", "b", "a"}, labels(l.All()))
	})

	t.Run("count is numeric and stable", func(t *testing.T) {
		l := NewList()
		l.Add(labeled("x", 10))
		l.Add(labeled("y", 9))
		l.Add(labeled("z", 10))
		l.Add(labeled("w", 100))

		l.SortByCount(false)
		assert.Equal(t, []string{"y", "x", "z", "w"}, labels(l.All()))

		l.SortByCount(true)
		assert.Equal(t, []string{"w", "z", "x", "y"}, labels(l.All()))
	})

	t.Run("sort funcs", func(t *testing.T) {
		l := NewList()
		l.Add(labeled("b", 1))
		l.Add(labeled("a", 2))

		SortByLabel(BinaryCollator, false)(l)
		assert.Equal(t, []string{"a", "b"}, labels(l.All()))

		SortByCount(true)(l)
		assert.Equal(t, []string{"a", "b"}, labels(l.All()))
	})
}

func TestFilterStopsEarly(t *testing.T) {
	values := []*Value{NewValue("a", 1, true), NewValue("b", 1, true), NewValue("c", 1, false)}

	var seen []string
	for v := range Filter(slices.Values(values), IsSelected) {
		seen = append(seen, v.Value)
		break
	}

	assert.Equal(t, []string{"a"}, seen)

	// sequences restart
	assert.Len(t, slices.Collect(Filter(slices.Values(values), IsSelected)), 2)
	assert.Len(t, slices.Collect(Filter(slices.Values(values), IsSelected)), 2)
}
