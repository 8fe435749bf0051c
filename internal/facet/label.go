package facet

import (
	"fmt"
	"regexp"
)

// LabelFactory derives a display label from a raw facet value.
type LabelFactory interface {
	Label(value string) string
}

// LabelFunc adapts a function to LabelFactory.
type LabelFunc func(value string) string

func (f LabelFunc) Label(value string) string {
	return f(value)
}

// IdentityLabels uses the value itself as its label.
var IdentityLabels LabelFactory = LabelFunc(func(value string) string { return value })

// MapLabels looks values up in a fixed map, falling back to the value.
type MapLabels map[string]string

func (m MapLabels) Label(value string) string {
	if label, ok := m[value]; ok == true && value != "" {
		return label
	}

	return value
}

// RegexpLabels rewrites values matching a pattern using a replacement
// template ($1, ${name}); other values are used as-is.
type RegexpLabels struct {
	re       *regexp.Regexp
	template string
}

func NewRegexpLabels(pattern, template string) (*RegexpLabels, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: label pattern %q: %s", ErrInvalidInput, pattern, err.Error())
	}

	return &RegexpLabels{re: re, template: template}, nil
}

func (r *RegexpLabels) Label(value string) string {
	if r.re.MatchString(value) == false {
		return value
	}

	return r.re.ReplaceAllString(value, r.template)
}
