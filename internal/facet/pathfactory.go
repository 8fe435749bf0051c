package facet

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// PathFactory maps a facet value to its location in a Tree.
type PathFactory interface {
	// EncodesPath reports whether v can be placed in the tree at all.
	EncodesPath(v *Value) bool
	// Path returns the node ids from the root down to the node holding v.
	Path(v *Value) []string
}

// DigitBucket is the alphabetic browse bucket for values starting with a digit.
const DigitBucket = "0-9"

// AlphabrowsePathFactory files values under their upper-cased first letter,
// giving a two-level tree (letter, decomposed value). Values starting with a digit are
// stored on the DigitBucket node itself. An optional prefix restricts the tree
// to values carrying it and is stripped before bucketing.
type AlphabrowsePathFactory struct {
	prefix string
}

func NewAlphabrowsePathFactory(prefix string) *AlphabrowsePathFactory {
	return &AlphabrowsePathFactory{prefix: prefix}
}

func (a *AlphabrowsePathFactory) Prefix() string {
	return a.prefix
}

func (a *AlphabrowsePathFactory) EncodesPath(v *Value) bool {
	return len(a.Path(v)) > 0
}

func (a *AlphabrowsePathFactory) Path(v *Value) []string {
	if strings.HasPrefix(v.Value, a.prefix) == false {
		return nil
	}

	stripped := strings.TrimPrefix(v.Value, a.prefix)
	if stripped == "" {
		return nil
	}

	// decomposed, accented letters bucket under their base letter
	normalized := norm.NFD.String(stripped)

	first, _ := utf8.DecodeRuneInString(normalized)
	first = unicode.ToUpper(first)

	switch {
	case first >= 'A' && first <= 'Z':
		return []string{string(first), normalized}

	case first >= '0' && first <= '9':
		return []string{DigitBucket}
	}

	return nil
}
