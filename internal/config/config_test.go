package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceJSON = `{"service": {"port": "8080"}, "solr": {"host": "http://solr:8080/solr", "core": "core", "handler": "select"}}`

const facetsJSON = `{"facets": [
	{"name": "format", "xid": "FacetFormat", "field": "format_f", "multiselect": true, "operator": "OR", "sort": "count_desc"},
	{"name": "subject", "field": "subject_f", "field_auth": "subject_auth_f", "container": {"type": "alphabrowse"}}
]}`

func TestLoad(t *testing.T) {
	encoded, err := EncodeValue([]byte(facetsJSON))
	require.NoError(t, err)

	t.Setenv(EnvJSONPrefix+"01", serviceJSON)
	t.Setenv(EnvJSONPrefix+"02", encoded)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Service.Port)
	assert.Equal(t, "select", cfg.Solr.Handler)
	require.Len(t, cfg.Facets, 2)
	assert.Equal(t, "subject_auth_f", cfg.Facets[1].FieldAuth)

	f, ok := cfg.Facet("format")
	require.True(t, ok)
	assert.True(t, f.Multiselect)

	_, ok = cfg.Facet("missing")
	assert.False(t, ok)

	assert.Contains(t, cfg.Composite(), `"port":"8080"`)
}

func TestLoadHostOverride(t *testing.T) {
	t.Setenv(EnvJSONPrefix+"01", serviceJSON)
	t.Setenv(EnvSolrHost, "http://other:8983/solr")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://other:8983/solr", cfg.Solr.Host)
}

func TestLoadErrors(t *testing.T) {
	t.Run("unknown field", func(t *testing.T) {
		t.Setenv(EnvJSONPrefix+"01", `{"service": {"prot": "8080"}}`)

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Setenv(EnvJSONPrefix+"01", `not-base64!`)

		_, err := Load()
		require.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(facetsJSON), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Facets, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestEncodeValue(t *testing.T) {
	encoded, err := EncodeValue([]byte(serviceJSON))
	require.NoError(t, err)
	assert.NotContains(t, encoded, "{")

	decoded, err := DecodeValue(encoded)
	require.NoError(t, err)
	assert.Equal(t, serviceJSON, string(decoded))

	_, err = DecodeValue("aGVsbG8=")
	require.Error(t, err)
}

func TestSolrParamsValues(t *testing.T) {
	p := SolrParams{
		Qt:      "search",
		DefType: "lucene",
		Fq:      []string{"+shadowed_location_f:VISIBLE", "-format_f:Microfilm"},
		Fl:      []string{"id", "title_a", "score"},
	}

	params := p.Values()

	assert.Equal(t, "search", params.Get("qt"))
	assert.Equal(t, "lucene", params.Get("defType"))
	assert.Equal(t, []string{"+shadowed_location_f:VISIBLE", "-format_f:Microfilm"}, params["fq"])
	assert.Equal(t, "id,title_a,score", params.Get("fl"))

	assert.Empty(t, SolrParams{}.Values())
}
