package facet

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
)

// FilterNamespace is the request parameter namespace holding facet
// selections: f[<facet name>]=<value>.
const FilterNamespace = "f"

// State is the request-serializable state of a faceted search: facet
// selections keyed by facet name, plus every other request parameter.
type State struct {
	Params  url.Values
	Filters map[string][]string
}

func NewState() State {
	return State{
		Params:  url.Values{},
		Filters: make(map[string][]string),
	}
}

// ParseState splits a request query into facet selections (f[name] and
// f[name][] keys) and the remaining parameters.
func ParseState(query url.Values) State {
	s := NewState()

	for key, values := range query {
		if name, ok := filterName(key); ok == true {
			s.Filters[name] = append(s.Filters[name], values...)
			continue
		}

		s.Params[key] = append([]string{}, values...)
	}

	return s
}

func filterName(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, FilterNamespace+"[")
	if ok == false {
		return "", false
	}

	rest = strings.TrimSuffix(rest, "[]")

	name, ok := strings.CutSuffix(rest, "]")
	if ok == false || name == "" {
		return "", false
	}

	return name, true
}

func filterKey(name string) string {
	return fmt.Sprintf("%s[%s]", FilterNamespace, name)
}

// Values renders the state as request parameters, repeating f[name] once per
// selected value.
func (s State) Values() url.Values {
	v := url.Values{}

	for key, vals := range s.Params {
		v[key] = append([]string{}, vals...)
	}

	for name, vals := range s.Filters {
		if len(vals) == 0 {
			continue
		}

		v[filterKey(name)] = append([]string{}, vals...)
	}

	return v
}

// Encode renders the state as a URL query string.
func (s State) Encode() string {
	return s.Values().Encode()
}

func (s State) Clone() State {
	c := NewState()

	for key, vals := range s.Params {
		c.Params[key] = append([]string{}, vals...)
	}

	for name, vals := range s.Filters {
		c.Filters[name] = append([]string{}, vals...)
	}

	return c
}

// Merge returns s combined with o. Selections for the same facet are
// concatenated; other parameters present in both are taken from o.
func (s State) Merge(o State) State {
	m := s.Clone()

	for key, vals := range o.Params {
		m.Params[key] = append([]string{}, vals...)
	}

	for name, vals := range o.Filters {
		m.Filters[name] = append(m.Filters[name], vals...)
	}

	return m
}

func (s State) Selection(name string) []string {
	return s.Filters[name]
}

func (s State) HasSelection(name string) bool {
	_, ok := s.Filters[name]
	return ok
}

// FilterNames returns the names of facets with a selection, sorted.
func (s State) FilterNames() []string {
	return slices.Sorted(maps.Keys(s.Filters))
}
