package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/facet"
)

type prefixMapperOptions struct {
	Prefix string `mapstructure:"prefix"`
}

type mapMapperOptions struct {
	Values map[string]string `mapstructure:"values"`
}

type mapLabelOptions struct {
	Labels map[string]string `mapstructure:"labels"`
}

type regexpLabelOptions struct {
	Pattern  string `mapstructure:"pattern"`
	Template string `mapstructure:"template"`
}

type localizedLabelOptions struct {
	Prefix string `mapstructure:"prefix"` // prepended to a value to form its message id
}

func decodeOptions(input map[string]interface{}, output interface{}) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           output,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	}

	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return dec.Decode(input)
}

// BuildOptions carry the per-request context that facets are built for.
type BuildOptions struct {
	// Authenticated selects each facet's field_auth field, when set.
	Authenticated bool

	// Collator orders label sorts. Defaults to binary order.
	Collator facet.Collator

	// Translate returns the translation of a message id, if there is one.
	// Facet labels and localized value labels are untranslated without it.
	Translate func(messageID string) (string, bool)
}

func (o BuildOptions) translate(messageID string) (string, bool) {
	if o.Translate == nil || messageID == "" {
		return "", false
	}

	return o.Translate(messageID)
}

// SolrField returns the field faceted on for the given session type.
func (f FacetConfig) SolrField(authenticated bool) string {
	if authenticated == true && f.FieldAuth != "" {
		return f.FieldAuth
	}

	return f.Field
}

// NewAdapter builds a facet adapter from the definition.
func (f FacetConfig) NewAdapter(opts BuildOptions) (*facet.Adapter, error) {
	ff, err := facet.NewFieldFacet(f.SolrField(opts.Authenticated), f.Options)
	if err != nil {
		return nil, err
	}

	if f.Operator != "" {
		if err := ff.SetOperator(f.Operator); err != nil {
			return nil, err
		}
	}

	ff.EnableMultiselect(f.Multiselect)

	a, err := facet.NewAdapter(f.Name, ff)
	if err != nil {
		return nil, err
	}

	if label, ok := opts.translate(f.XID); ok == true {
		a.SetLabel(label)
	}

	switch f.Container.Type {
	case "alphabrowse":
		a.SetContainer(facet.NewTree(facet.NewAlphabrowsePathFactory(f.Container.Prefix)))
	default:
		a.SetContainer(facet.NewList())
	}

	collator := opts.Collator
	if collator == nil {
		collator = facet.BinaryCollator
	}

	switch f.Sort {
	case "label":
		a.SetSort(facet.SortByLabel(collator, false))
	case "label_desc":
		a.SetSort(facet.SortByLabel(collator, true))
	case "count":
		a.SetSort(facet.SortByCount(false))
	case "count_desc":
		a.SetSort(facet.SortByCount(true))
	}

	mapper, err := f.Mapper.build()
	if err != nil {
		return nil, fmt.Errorf("facet [%s] mapper: %w", f.Name, err)
	}

	a.SetMapper(mapper)

	labels, err := f.Labels.build(opts)
	if err != nil {
		return nil, fmt.Errorf("facet [%s] labels: %w", f.Name, err)
	}

	a.SetLabelFactory(labels)

	return a, nil
}

func (m FacetMapperConfig) build() (facet.ValueMapper, error) {
	switch m.Type {
	case "", "identity":
		return facet.IdentityMapper{}, nil

	case "prefix":
		var opts prefixMapperOptions
		if err := decodeOptions(m.Options, &opts); err != nil {
			return nil, fmt.Errorf("%w: %s", facet.ErrInvalidInput, err.Error())
		}

		return facet.NewPrefixMapper(opts.Prefix), nil

	case "map":
		var opts mapMapperOptions
		if err := decodeOptions(m.Options, &opts); err != nil {
			return nil, fmt.Errorf("%w: %s", facet.ErrInvalidInput, err.Error())
		}

		return facet.NewMapMapper(opts.Values), nil
	}

	return nil, fmt.Errorf("%w: unknown mapper type [%s]", facet.ErrInvalidInput, m.Type)
}

func (l FacetLabelsConfig) build(buildOpts BuildOptions) (facet.LabelFactory, error) {
	switch l.Type {
	case "", "identity":
		return facet.IdentityLabels, nil

	case "map":
		var opts mapLabelOptions
		if err := decodeOptions(l.Options, &opts); err != nil {
			return nil, fmt.Errorf("%w: %s", facet.ErrInvalidInput, err.Error())
		}

		return facet.MapLabels(opts.Labels), nil

	case "regexp":
		var opts regexpLabelOptions
		if err := decodeOptions(l.Options, &opts); err != nil {
			return nil, fmt.Errorf("%w: %s", facet.ErrInvalidInput, err.Error())
		}

		return facet.NewRegexpLabels(opts.Pattern, opts.Template)

	case "localized":
		var opts localizedLabelOptions
		if err := decodeOptions(l.Options, &opts); err != nil {
			return nil, fmt.Errorf("%w: %s", facet.ErrInvalidInput, err.Error())
		}

		return facet.LabelFunc(func(value string) string {
			if label, ok := buildOpts.translate(opts.Prefix + value); ok == true {
				return label
			}

			return value
		}), nil
	}

	return nil, fmt.Errorf("%w: unknown labels type [%s]", facet.ErrInvalidInput, l.Type)
}

// NewCollection builds adapters for every configured facet, in order.
func (cfg *Config) NewCollection(opts BuildOptions) (*facet.Collection, error) {
	c := facet.NewCollection()

	for _, f := range cfg.Facets {
		a, err := f.NewAdapter(opts)
		if err != nil {
			return nil, err
		}

		c.Add(a)
	}

	return c, nil
}
