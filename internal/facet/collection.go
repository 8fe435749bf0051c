package facet

import (
	"iter"
	"net/url"
	"slices"
)

// Collection is a set of adapters keyed by name, iterated in the order the
// names were first added.
type Collection struct {
	names    []string
	adapters map[string]*Adapter
}

func NewCollection(adapters ...*Adapter) *Collection {
	c := Collection{adapters: make(map[string]*Adapter)}

	for _, a := range adapters {
		c.Add(a)
	}

	return &c
}

// Add registers a under its name, replacing any adapter of the same name.
func (c *Collection) Add(a *Adapter) {
	if _, ok := c.adapters[a.Name()]; ok == false {
		c.names = append(c.names, a.Name())
	}

	c.adapters[a.Name()] = a
}

// Get returns the named adapter, or nil.
func (c *Collection) Get(name string) *Adapter {
	return c.adapters[name]
}

func (c *Collection) Has(name string) bool {
	_, ok := c.adapters[name]
	return ok
}

func (c *Collection) Len() int {
	return len(c.names)
}

func (c *Collection) Names() []string {
	return slices.Clone(c.names)
}

func (c *Collection) All() iter.Seq[*Adapter] {
	return func(yield func(*Adapter) bool) {
		for _, name := range c.names {
			if yield(c.adapters[name]) == false {
				return
			}
		}
	}
}

func (c *Collection) SetComponentState(s State) {
	for a := range c.All() {
		a.SetComponentState(s)
	}
}

// ComponentState merges the selections of every adapter.
func (c *Collection) ComponentState() State {
	s := NewState()

	for a := range c.All() {
		s = s.Merge(a.ComponentState())
	}

	return s
}

// SearchParameters merges the parameters of every adapter. Values of a
// repeated key accumulate; a key/value pair already present is not repeated.
func (c *Collection) SearchParameters() url.Values {
	params := url.Values{}

	for a := range c.All() {
		for key, values := range a.SearchParameters() {
			for _, value := range values {
				if slices.Contains(params[key], value) == false {
					params.Add(key, value)
				}
			}
		}
	}

	return params
}

// SetRecordCollection hands r to every adapter, stopping at the first error.
func (c *Collection) SetRecordCollection(r Response) error {
	for a := range c.All() {
		if err := a.SetRecordCollection(r); err != nil {
			return err
		}
	}

	return nil
}

// AggregatedCount sums the value counts of every adapter's container.
func (c *Collection) AggregatedCount() int {
	total := 0

	for a := range c.All() {
		total += a.Container().Count()
	}

	return total
}
