package config

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/uvalib/virgo4-solr-facet-ws/internal/solr"
)

const (
	// EnvJSONPrefix names the environment variables holding JSON configuration,
	// applied in sorted order.
	EnvJSONPrefix = "VIRGO4_SOLR_FACET_WS_JSON_"

	// EnvSolrHost overrides the configured Solr host.
	EnvSolrHost = "VIRGO4_SOLR_FACET_WS_SOLR_HOST"
)

type ServiceConfig struct {
	Port            string `json:"port,omitempty"`
	JWTKey          string `json:"jwt_key,omitempty"`
	DefaultLanguage string `json:"default_language,omitempty"`
	DefaultRows     int    `json:"default_rows,omitempty"`
	MaxRows         int    `json:"max_rows,omitempty"`
	Verbose         bool   `json:"verbose,omitempty"` // log every solr request and response
}

type SolrParams struct {
	Qt      string   `json:"qt,omitempty"`
	DefType string   `json:"deftype,omitempty"`
	Fq      []string `json:"fq,omitempty"`
	Fl      []string `json:"fl,omitempty"`
}

// Values returns the parameters sent with every search.
func (p SolrParams) Values() url.Values {
	params := url.Values{}

	if p.Qt != "" {
		params.Set("qt", p.Qt)
	}

	if p.DefType != "" {
		params.Set("defType", p.DefType)
	}

	for _, fq := range p.Fq {
		params.Add("fq", fq)
	}

	if len(p.Fl) > 0 {
		params.Set("fl", strings.Join(p.Fl, ","))
	}

	return params
}

type SolrConfig struct {
	solr.Config
	Params SolrParams `json:"params,omitempty"`
}

type FacetContainerConfig struct {
	Type   string `json:"type,omitempty"` // "list" (default) or "alphabrowse"
	Prefix string `json:"prefix,omitempty"`
}

// FacetMapperConfig selects a value mapper. Options are decoded per type.
type FacetMapperConfig struct {
	Type    string                 `json:"type,omitempty"` // "identity" (default), "prefix" or "map"
	Options map[string]interface{} `json:"options,omitempty"`
}

// FacetLabelsConfig selects a label factory. Options are decoded per type.
type FacetLabelsConfig struct {
	Type    string                 `json:"type,omitempty"` // "identity" (default), "map", "regexp" or "localized"
	Options map[string]interface{} `json:"options,omitempty"`
}

type FacetConfig struct {
	Name        string               `json:"name,omitempty"`
	XID         string               `json:"xid,omitempty"` // translation ID
	Field       string               `json:"field,omitempty"`
	FieldAuth   string               `json:"field_auth,omitempty"` // used for authenticated sessions, if set
	Operator    string               `json:"operator,omitempty"`
	Multiselect bool                 `json:"multiselect,omitempty"`
	Options     map[string]string    `json:"options,omitempty"` // solr f.<field>.<option> facet parameters
	Sort        string               `json:"sort,omitempty"`
	Container   FacetContainerConfig `json:"container,omitempty"`
	Mapper      FacetMapperConfig    `json:"mapper,omitempty"`
	Labels      FacetLabelsConfig    `json:"labels,omitempty"`
}

type Config struct {
	Service ServiceConfig `json:"service,omitempty"`
	Solr    SolrConfig    `json:"solr,omitempty"`
	Facets  []FacetConfig `json:"facets,omitempty"`
}

func sortedJSONEnvVars() []string {
	var keys []string

	for _, keyval := range os.Environ() {
		key := strings.Split(keyval, "=")[0]
		if strings.HasPrefix(key, EnvJSONPrefix) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}

// Load builds the configuration from the environment. Every document is
// decoded before returning, so that all decode problems get logged.
func Load() (*Config, error) {
	cfg := Config{}

	valid := true

	for _, env := range sortedJSONEnvVars() {
		log.Printf("[CONFIG] loading %s ...", env)

		if val := os.Getenv(env); val != "" {
			if err := cfg.Decode(val); err != nil {
				log.Printf("[CONFIG] error decoding %s: %s", env, err.Error())
				valid = false
			}
		}
	}

	if valid == false {
		return nil, fmt.Errorf("json decode error(s) in %s* environment variables", EnvJSONPrefix)
	}

	// optional convenience override to simplify terraform config
	if host := os.Getenv(EnvSolrHost); host != "" {
		cfg.Solr.Host = host
	}

	return &cfg, nil
}

// LoadFile builds the configuration from one document.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Config{}

	if err := cfg.Decode(string(data)); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}

	if host := os.Getenv(EnvSolrHost); host != "" {
		cfg.Solr.Host = host
	}

	return &cfg, nil
}

// Decode overlays one JSON document, raw or gzip+base64 encoded, onto cfg.
func (cfg *Config) Decode(val string) error {
	data := []byte(val)

	if trimmed := strings.TrimSpace(val); strings.HasPrefix(trimmed, "{") == false {
		var err error

		if data, err = DecodeValue(trimmed); err != nil {
			return err
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	return dec.Decode(cfg)
}

// EncodeValue gzips and base64 encodes a JSON document for use as an
// environment variable value.
func EncodeValue(data []byte) (string, error) {
	var gzBuf bytes.Buffer

	gz := gzip.NewWriter(&gzBuf)

	if _, err := gz.Write(data); err != nil {
		return "", err
	}

	if err := gz.Close(); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(gzBuf.Bytes()), nil
}

// DecodeValue reverses EncodeValue.
func DecodeValue(val string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(val)
	if err != nil {
		return nil, fmt.Errorf("value is neither json nor base64: %w", err)
	}

	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("value is not gzipped: %w", err)
	}

	defer gz.Close()

	return io.ReadAll(gz)
}

// Composite returns the configuration as one JSON document, for logging.
func (cfg *Config) Composite() string {
	bytes, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("error encoding config json: %s", err.Error())
	}

	return string(bytes)
}

// Facet returns the named facet definition.
func (cfg *Config) Facet(name string) (FacetConfig, bool) {
	for _, f := range cfg.Facets {
		if f.Name == name {
			return f, true
		}
	}

	return FacetConfig{}, false
}
