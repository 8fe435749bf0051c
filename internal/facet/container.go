package facet

import (
	"iter"
	"slices"
)

// Container aggregates the facet values of one facet for display.
type Container interface {
	Add(v *Value)
	All() iter.Seq[*Value]
	Selected() iter.Seq[*Value]
	HasSelectedValue() bool
	SortByLabel(c Collator, reverse bool)
	SortByCount(reverse bool)
	Count() int
}

// SortFunc is applied to an adapter's container every time it is retrieved.
type SortFunc func(Container)

func SortByLabel(c Collator, reverse bool) SortFunc {
	return func(container Container) {
		container.SortByLabel(c, reverse)
	}
}

func SortByCount(reverse bool) SortFunc {
	return func(container Container) {
		container.SortByCount(reverse)
	}
}

// List is a flat, deduplicated container.
type List struct {
	values           []*Value
	hasSelectedValue bool
}

func NewList() *List {
	return &List{}
}

// Add appends v unless this exact value is already present. Adding a selected
// value marks the list as having a selection; the mark is never cleared.
func (l *List) Add(v *Value) {
	if v.Selected == true {
		l.hasSelectedValue = true
	}

	if slices.Contains(l.values, v) == false {
		l.values = append(l.values, v)
	}
}

func (l *List) All() iter.Seq[*Value] {
	return slices.Values(l.values)
}

func (l *List) Selected() iter.Seq[*Value] {
	return Filter(l.All(), IsSelected)
}

func (l *List) Unselected() iter.Seq[*Value] {
	return Filter(l.All(), IsNotSelected)
}

func (l *List) HasSelectedValue() bool {
	return l.hasSelectedValue
}

func (l *List) SortByLabel(c Collator, reverse bool) {
	sortValues(l.values, CompareByLabel(c), reverse)
}

func (l *List) SortByCount(reverse bool) {
	sortValues(l.values, CompareByCount, reverse)
}

func (l *List) Count() int {
	return len(l.values)
}

func sortValues(values []*Value, compare func(a, b *Value) int, reverse bool) {
	slices.SortStableFunc(values, compare)

	if reverse == true {
		slices.Reverse(values)
	}
}
