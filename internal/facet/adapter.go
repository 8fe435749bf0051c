package facet

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// updater is implemented by containers whose flat value view must be rebuilt
// after bulk insertion.
type updater interface {
	Update()
}

// Adapter ties one facet implementation to the request/response cycle: it
// maps request selections onto the facet, and turns the facet's counts into
// a container of values that each carry the request state toggling them.
type Adapter struct {
	name      string
	label     string
	impl      Impl
	container Container
	mapper    ValueMapper
	labels    LabelFactory
	sort      SortFunc
	state     State
}

// NewAdapter creates an adapter named name around impl. The name keys the
// adapter's selections in request state and must not be empty.
func NewAdapter(name string, impl Impl) (*Adapter, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: facet adapter name must not be empty", ErrInvalidInput)
	}

	if impl == nil {
		return nil, fmt.Errorf("%w: facet adapter [%s] has no facet implementation", ErrInvalidInput, name)
	}

	a := Adapter{
		name:   name,
		impl:   impl,
		mapper: IdentityMapper{},
		labels: IdentityLabels,
		state:  NewState(),
	}

	return &a, nil
}

func (a *Adapter) Name() string {
	return a.name
}

// Label returns the display label, falling back to the name.
func (a *Adapter) Label() string {
	if a.label != "" {
		return a.label
	}

	return a.name
}

func (a *Adapter) SetLabel(label string) {
	a.label = label
}

func (a *Adapter) Impl() Impl {
	return a.impl
}

func (a *Adapter) SetContainer(c Container) {
	a.container = c
}

// Container returns the value container, creating a flat list on first use.
// The sort directive, if any, is applied on every call.
func (a *Adapter) Container() Container {
	if a.container == nil {
		a.container = NewList()
	}

	if a.sort != nil {
		a.sort(a.container)
	}

	return a.container
}

func (a *Adapter) SetSort(sort SortFunc) {
	a.sort = sort
}

func (a *Adapter) SetMapper(m ValueMapper) {
	if m == nil {
		m = IdentityMapper{}
	}

	a.mapper = m
}

func (a *Adapter) Mapper() ValueMapper {
	return a.mapper
}

func (a *Adapter) SetLabelFactory(l LabelFactory) {
	if l == nil {
		l = IdentityLabels
	}

	a.labels = l
}

func (a *Adapter) LabelFactory() LabelFactory {
	return a.labels
}

// SetFilterValues selects the given request values on the facet.
func (a *Adapter) SetFilterValues(values []string) {
	a.impl.SetSelected(a.mapper.FromRequest(values))
}

// FilterValues returns the facet's selection as request values.
func (a *Adapter) FilterValues() []string {
	return a.mapper.ToRequest(a.impl.Selected())
}

// SetComponentState applies the state's selection for this adapter, if any,
// and keeps the whole state for building toggle queries.
func (a *Adapter) SetComponentState(s State) {
	if s.HasSelection(a.name) == true {
		a.SetFilterValues(s.Selection(a.name))
	}

	a.state = s.Clone()
}

// ComponentState returns this adapter's selection alone.
func (a *Adapter) ComponentState() State {
	s := NewState()
	s.Filters[a.name] = a.FilterValues()

	return s
}

// State returns the full request state last applied to the adapter.
func (a *Adapter) State() State {
	return a.state.Clone()
}

func (a *Adapter) SearchParameters() url.Values {
	return a.impl.SearchParameters()
}

// SetRecordCollection reads the facet's counts from r and adds every value,
// labeled and carrying its toggle query, to the container.
func (a *Adapter) SetRecordCollection(r Response) error {
	a.impl.SetRecordCollection(r)

	values, err := a.impl.Counts()
	if err != nil {
		return fmt.Errorf("facet [%s]: %w", a.name, err)
	}

	container := a.Container()

	for _, v := range values {
		v.Query = a.toggleQuery(v)
		v.Label = a.labels.Label(v.Value)

		container.Add(v)
	}

	if u, ok := container.(updater); ok == true {
		u.Update()
	}

	return nil
}

// toggleQuery returns the request state selecting v when it is unselected,
// and deselecting it otherwise.
func (a *Adapter) toggleQuery(v *Value) State {
	selected := a.impl.Selected()

	if v.Selected == true {
		selected = slices.DeleteFunc(selected, func(s string) bool { return s == v.Value })
	} else {
		selected = append(selected, v.Value)
	}

	q := a.state.Clone()

	if filter := a.mapper.ToRequest(selected); len(filter) > 0 {
		q.Filters[a.name] = filter
	} else {
		delete(q.Filters, a.name)
	}

	return q
}
