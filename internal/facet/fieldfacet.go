package facet

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/google/uuid"
)

const (
	OperatorAnd = "AND"
	OperatorOr  = "OR"
)

// Count is one raw value count from a backend response.
type Count struct {
	Value string
	Count int
}

// Response exposes the facet counts of a decoded backend response.
type Response interface {
	FieldFacetCounts(field string) ([]Count, bool)
}

// Impl is a backend-specific facet implementation driven by an Adapter.
type Impl interface {
	SearchParameters() url.Values
	SetRecordCollection(r Response)
	Counts() ([]*Value, error)
	SetSelected(values []string)
	Selected() []string
}

// FieldFacet facets on the values of a single Solr field and filters on
// the values selected for it.
type FieldFacet struct {
	field       string
	id          string
	selected    []string
	operator    string
	multiselect bool
	options     map[string]string
	local       *LocalParams
	counts      []*Value
	ready       bool
}

// NewFieldFacet creates a facet on field. Options are Solr facet parameters
// (limit, mincount, sort, ...) scoped to the field as f.<field>.<option>.
func NewFieldFacet(field string, options map[string]string) (*FieldFacet, error) {
	if strings.TrimSpace(field) == "" {
		return nil, fmt.Errorf("%w: facet field must not be empty", ErrInvalidInput)
	}

	f := FieldFacet{
		field:    field,
		id:       uuid.NewString(),
		selected: []string{},
		operator: OperatorAnd,
		local:    NewLocalParams(),
	}

	f.SetOptions(options)

	return &f, nil
}

func (f *FieldFacet) Field() string {
	return f.field
}

// FilterQueryTag identifies this facet's filter query so that its own counts
// can exclude it. It is fixed for the life of the facet.
func (f *FieldFacet) FilterQueryTag() string {
	return fmt.Sprintf("%s.%s", f.field, f.id)
}

func (f *FieldFacet) SetOptions(options map[string]string) {
	f.options = make(map[string]string)

	for key, val := range options {
		f.options[fmt.Sprintf("f.%s.%s", f.field, key)] = val
	}
}

// Options returns the field-scoped facet options.
func (f *FieldFacet) Options() map[string]string {
	return maps.Clone(f.options)
}

func (f *FieldFacet) LocalParams() *LocalParams {
	return f.local
}

func (f *FieldFacet) SearchParameters() url.Values {
	params := url.Values{}

	for _, key := range slices.Sorted(maps.Keys(f.options)) {
		params.Set(key, f.options[key])
	}

	params.Set("facet", "true")
	params.Set("facet.field", f.local.String()+f.field)

	if fq := f.FilterQuery(); fq != "" {
		params.Set("fq", fq)
	}

	return params
}

// SetSelected replaces the selection. Repeated values are kept once, in
// order of first appearance.
func (f *FieldFacet) SetSelected(values []string) {
	f.selected = []string{}

	for _, value := range values {
		if slices.Contains(f.selected, value) == false {
			f.selected = append(f.selected, value)
		}
	}
}

func (f *FieldFacet) Selected() []string {
	return append([]string{}, f.selected...)
}

func (f *FieldFacet) IsSelected(value string) bool {
	return slices.Contains(f.selected, value)
}

// SetOperator sets the boolean operator joining selected values in the
// filter query: AND (the default) or OR, case-insensitive.
func (f *FieldFacet) SetOperator(operator string) error {
	op := strings.ToUpper(strings.TrimSpace(operator))

	if op != OperatorAnd && op != OperatorOr {
		return fmt.Errorf("%w: filter query operator must be AND or OR, got [%s]", ErrInvalidInput, operator)
	}

	f.operator = op

	return nil
}

func (f *FieldFacet) Operator() string {
	return f.operator
}

// EnableMultiselect excludes this facet's own filter query from its counts,
// so that selecting a value keeps its siblings' counts visible.
func (f *FieldFacet) EnableMultiselect(enable bool) {
	if enable == true {
		f.local.Set("ex", f.FilterQueryTag())
	} else {
		f.local.Remove("ex")
	}

	f.multiselect = enable
}

func (f *FieldFacet) Multiselect() bool {
	return f.multiselect
}

// FilterQuery returns the filter query for the current selection, e.g.
// {!q.op=OR tag=format.<id>}format:("Book" "Journal"), or "" without one.
func (f *FieldFacet) FilterQuery() string {
	if len(f.selected) == 0 {
		return ""
	}

	local := NewLocalParams()
	local.Add("q.op", f.operator)

	if f.multiselect == true {
		local.Add("tag", f.FilterQueryTag())
	}

	var terms []string
	for _, value := range f.selected {
		terms = append(terms, quote(value))
	}

	return fmt.Sprintf("%s%s:(%s)", local.String(), f.field, strings.Join(terms, " "))
}

// SetRecordCollection takes this field's counts from a response. A response
// without counts for the field leaves earlier counts in place.
func (f *FieldFacet) SetRecordCollection(r Response) {
	f.ready = true

	if counts, ok := r.FieldFacetCounts(f.field); ok == true {
		f.SetCounts(counts)
	}
}

func (f *FieldFacet) SetCounts(counts []Count) {
	f.ready = true
	f.counts = []*Value{}

	for _, c := range counts {
		f.counts = append(f.counts, NewValue(c.Value, c.Count, f.IsSelected(c.Value)))
	}
}

// Counts returns the values reported by the last response, in backend order.
func (f *FieldFacet) Counts() ([]*Value, error) {
	if f.ready == false {
		return nil, fmt.Errorf("field [%s]: %w", f.field, ErrNotReady)
	}

	return append([]*Value{}, f.counts...), nil
}

// Clone returns an independent copy of the facet with its own filter query tag.
func (f *FieldFacet) Clone() *FieldFacet {
	c := *f

	c.id = uuid.NewString()
	c.selected = append([]string{}, f.selected...)
	c.options = maps.Clone(f.options)
	c.local = f.local.Clone()
	c.counts = append([]*Value{}, f.counts...)

	if c.multiselect == true {
		c.local.Set("ex", c.FilterQueryTag())
	}

	return &c
}
