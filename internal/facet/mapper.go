package facet

import (
	"sort"
	"strings"
)

// ValueMapper translates between the values carried in request parameters
// and the values the backend indexes.
type ValueMapper interface {
	FromRequest(values []string) []string
	ToRequest(values []string) []string
	FromRequestValue(value string) (string, bool)
	ToRequestValue(value string) (string, bool)
}

// IdentityMapper passes values through unchanged.
type IdentityMapper struct{}

func (IdentityMapper) FromRequest(values []string) []string {
	return append([]string{}, values...)
}

func (IdentityMapper) ToRequest(values []string) []string {
	return append([]string{}, values...)
}

func (IdentityMapper) FromRequestValue(value string) (string, bool) {
	return value, true
}

func (IdentityMapper) ToRequestValue(value string) (string, bool) {
	return value, true
}

// PrefixMapper adds a prefix to request values, and strips it from facet values
// that carry it.
type PrefixMapper struct {
	prefix string
}

func NewPrefixMapper(prefix string) *PrefixMapper {
	return &PrefixMapper{prefix: prefix}
}

func (m *PrefixMapper) FromRequest(values []string) []string {
	res := []string{}

	for _, value := range values {
		v, _ := m.FromRequestValue(value)
		res = append(res, v)
	}

	return res
}

func (m *PrefixMapper) ToRequest(values []string) []string {
	res := []string{}

	for _, value := range values {
		v, _ := m.ToRequestValue(value)
		res = append(res, v)
	}

	return res
}

func (m *PrefixMapper) FromRequestValue(value string) (string, bool) {
	return m.prefix + value, true
}

func (m *PrefixMapper) ToRequestValue(value string) (string, bool) {
	return strings.TrimPrefix(value, m.prefix), true
}

// MapMapper translates through an explicit request value -> facet value map.
// Values without an entry are dropped.
type MapMapper struct {
	toFacet   map[string]string
	toRequest map[string]string
}

func NewMapMapper(m map[string]string) *MapMapper {
	mm := MapMapper{
		toFacet:   make(map[string]string),
		toRequest: make(map[string]string),
	}

	// when several request values map to one facet value, the
	// lexically smallest request value wins the reverse mapping
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		val := m[key]

		mm.toFacet[key] = val

		if _, ok := mm.toRequest[val]; ok == false {
			mm.toRequest[val] = key
		}
	}

	return &mm
}

func (m *MapMapper) FromRequest(values []string) []string {
	res := []string{}

	for _, value := range values {
		if v, ok := m.FromRequestValue(value); ok == true {
			res = append(res, v)
		}
	}

	return res
}

func (m *MapMapper) ToRequest(values []string) []string {
	res := []string{}

	for _, value := range values {
		if v, ok := m.ToRequestValue(value); ok == true {
			res = append(res, v)
		}
	}

	return res
}

func (m *MapMapper) FromRequestValue(value string) (string, bool) {
	v, ok := m.toFacet[value]
	return v, ok
}

func (m *MapMapper) ToRequestValue(value string) (string, bool) {
	v, ok := m.toRequest[value]
	return v, ok
}
