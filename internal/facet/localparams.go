package facet

import (
	"fmt"
	"strings"
)

// LocalParams is an ordered multi-map serialized in Solr's inline
// parameter syntax, e.g. {!q.op=AND tag=format.abc}.
type LocalParams struct {
	keys   []string
	values map[string][]string
}

func NewLocalParams() *LocalParams {
	return &LocalParams{values: make(map[string][]string)}
}

// Set replaces all values of key.
func (p *LocalParams) Set(key, value string) {
	if _, ok := p.values[key]; ok == false {
		p.keys = append(p.keys, key)
	}

	p.values[key] = []string{value}
}

// Add appends a value to key.
func (p *LocalParams) Add(key, value string) {
	if _, ok := p.values[key]; ok == false {
		p.keys = append(p.keys, key)
	}

	p.values[key] = append(p.values[key], value)
}

func (p *LocalParams) Remove(key string) {
	if _, ok := p.values[key]; ok == false {
		return
	}

	delete(p.values, key)

	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

func (p *LocalParams) Get(key string) []string {
	return p.values[key]
}

func (p *LocalParams) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

func (p *LocalParams) Len() int {
	return len(p.keys)
}

func (p *LocalParams) Clone() *LocalParams {
	c := NewLocalParams()

	for _, key := range p.keys {
		c.keys = append(c.keys, key)
		c.values[key] = append([]string{}, p.values[key]...)
	}

	return c
}

func (p *LocalParams) String() string {
	if len(p.keys) == 0 {
		return ""
	}

	var pairs []string

	for _, key := range p.keys {
		for _, value := range p.values[key] {
			if strings.Contains(value, " ") {
				value = quote(value)
			}

			pairs = append(pairs, fmt.Sprintf("%s=%s", key, value))
		}
	}

	return fmt.Sprintf("{!%s}", strings.Join(pairs, " "))
}

// quote wraps a value in double quotes, backslash-escaping embedded quotes.
func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}
