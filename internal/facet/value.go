package facet

import (
	"cmp"
	"iter"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// UnknownCount marks a value whose count the backend did not report.
const UnknownCount = -1

// Value is a single facet value as reported by the backend, decorated with
// its display label and the request state that toggles it.
type Value struct {
	Value    string
	Count    int
	Selected bool
	Label    string
	Query    State
}

func NewValue(value string, count int, selected bool) *Value {
	return &Value{
		Value:    value,
		Count:    count,
		Selected: selected,
	}
}

// DisplayLabel returns the label, falling back to the raw value.
func (v *Value) DisplayLabel() string {
	if v.Label != "" {
		return v.Label
	}

	return v.Value
}

// HasCount reports whether the backend supplied a count for this value.
func (v *Value) HasCount() bool {
	return v.Count != UnknownCount
}

// Collator compares two strings in some locale-specific order.
// *collate.Collator satisfies it.
type Collator interface {
	CompareString(a, b string) int
}

// NewCollator returns a collator for the given language. Collators are not
// safe for concurrent use; create one per request.
func NewCollator(tag language.Tag) Collator {
	return collate.New(tag)
}

type binaryCollator struct{}

func (binaryCollator) CompareString(a, b string) int {
	return strings.Compare(a, b)
}

// BinaryCollator orders strings by their bytes.
var BinaryCollator Collator = binaryCollator{}

// CompareByLabel returns a comparison function ordering values by display label.
func CompareByLabel(c Collator) func(a, b *Value) int {
	return func(a, b *Value) int {
		return c.CompareString(a.DisplayLabel(), b.DisplayLabel())
	}
}

// CompareByCount orders values by count, ascending.
func CompareByCount(a, b *Value) int {
	return cmp.Compare(a.Count, b.Count)
}

// Filter yields the values of seq for which keep returns true.
func Filter(seq iter.Seq[*Value], keep func(*Value) bool) iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		for v := range seq {
			if keep(v) == false {
				continue
			}

			if yield(v) == false {
				return
			}
		}
	}
}

func IsSelected(v *Value) bool {
	return v.Selected
}

func IsNotSelected(v *Value) bool {
	return v.Selected == false
}
