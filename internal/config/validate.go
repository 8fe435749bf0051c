package config

import (
	"fmt"
	"log"
	"regexp"
	"slices"
)

var (
	operators      = []string{"", "AND", "OR", "and", "or"}
	sortTypes      = []string{"", "label", "label_desc", "count", "count_desc"}
	containerTypes = []string{"", "list", "alphabrowse"}
	mapperTypes    = []string{"", "identity", "prefix", "map"}
	labelTypes     = []string{"", "identity", "map", "regexp", "localized"}
)

type stringValidator struct {
	values  []string
	invalid bool
	prefix  string
	postfix string
}

func (v *stringValidator) addValue(value string) {
	if value != "" {
		v.values = append(v.values, value)
	}
}

func (v *stringValidator) setPrefix(prefix string) {
	v.prefix = prefix
}

func (v *stringValidator) requireValue(value string, label string) {
	if value == "" {
		log.Printf("[VALIDATE] %smissing %s%s", v.prefix, label, v.postfix)
		v.invalid = true
		return
	}

	v.addValue(value)
}

func (v *stringValidator) requireOneOf(value string, allowed []string, label string) {
	if slices.Contains(allowed, value) == false {
		log.Printf("[VALIDATE] %sunknown %s: [%s]%s", v.prefix, label, value, v.postfix)
		v.invalid = true
	}
}

func (v *stringValidator) fail(format string, args ...interface{}) {
	log.Printf("[VALIDATE] %s%s%s", v.prefix, fmt.Sprintf(format, args...), v.postfix)
	v.invalid = true
}

func (v *stringValidator) Values() []string {
	return v.values
}

func (v *stringValidator) Invalid() bool {
	return v.invalid
}

// Validate logs every problem found in the configuration and fails if there
// were any. When hasMessage is not nil, it must report every facet
// translation id as translated.
func (cfg *Config) Validate(hasMessage func(messageID string) bool) error {
	var misc stringValidator
	var messageIDs stringValidator

	misc.requireValue(cfg.Service.Port, "service port")
	misc.requireValue(cfg.Solr.Host, "solr host")
	misc.requireValue(cfg.Solr.Core, "solr core")
	misc.requireValue(cfg.Solr.Handler, "solr handler")

	if cfg.Service.MaxRows < 0 || cfg.Service.DefaultRows < 0 {
		misc.fail("negative row limits")
	}

	if len(cfg.Facets) == 0 {
		misc.fail("no facets configured")
	}

	seen := make(map[string]bool)

	for i := range cfg.Facets {
		f := &cfg.Facets[i]

		var v stringValidator
		v.setPrefix(fmt.Sprintf("facet %d [%s]: ", i, f.Name))

		v.requireValue(f.Name, "name")
		v.requireValue(f.Field, "solr field")

		if f.Name != "" && seen[f.Name] == true {
			v.fail("duplicate name")
		}
		seen[f.Name] = true

		v.requireOneOf(f.Operator, operators, "operator")
		v.requireOneOf(f.Sort, sortTypes, "sort")
		v.requireOneOf(f.Container.Type, containerTypes, "container type")
		v.requireOneOf(f.Mapper.Type, mapperTypes, "mapper type")
		v.requireOneOf(f.Labels.Type, labelTypes, "labels type")

		if f.Labels.Type == "regexp" {
			var opts regexpLabelOptions
			if err := decodeOptions(f.Labels.Options, &opts); err != nil {
				v.fail("labels options: %s", err.Error())
			} else if _, err := regexp.Compile(opts.Pattern); err != nil {
				v.fail("labels pattern: %s", err.Error())
			}
		}

		messageIDs.addValue(f.XID)

		if v.Invalid() == true {
			misc.invalid = true
		}
	}

	if hasMessage != nil {
		for _, id := range messageIDs.Values() {
			if hasMessage(id) == false {
				misc.fail("missing translation for message id [%s]", id)
			}
		}
	}

	if misc.Invalid() == true {
		return fmt.Errorf("invalid configuration; see problems logged above")
	}

	return nil
}
