package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/config"
)

const (
	serviceDoc = `{"service": {"port": "8080"}, "solr": {"host": "http://solr:8080/solr", "core": "core", "handler": "select"}}`
	facetsDoc  = `{"facets": [{"name": "format", "field": "format_f"}]}`
)

func writeDocs(t *testing.T, docs map[string]string) []string {
	t.Helper()

	dir := t.TempDir()

	var files []string
	for name, doc := range docs {
		f := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(f, []byte(doc), 0644))
		files = append(files, f)
	}

	return files
}

func TestWriteEnvScript(t *testing.T) {
	files := writeDocs(t, map[string]string{"01-service.json": serviceDoc})
	files = append(files, writeDocs(t, map[string]string{"02-facets.json": facetsDoc})...)

	var out bytes.Buffer
	require.NoError(t, writeEnvScript(files, "http://other:8080/solr", &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, "#!/bin/bash", lines[0])
	assert.Equal(t, "export "+config.EnvSolrHost+"=http://other:8080/solr", lines[2])

	// every export decodes back to its document
	for i, doc := range []string{serviceDoc, facetsDoc} {
		key, val, ok := strings.Cut(strings.TrimPrefix(lines[3+i], "export "), "=")
		require.True(t, ok)

		assert.True(t, strings.HasPrefix(key, config.EnvJSONPrefix))

		data, err := config.DecodeValue(val)
		require.NoError(t, err)
		assert.Equal(t, doc, string(data))
	}
}

func TestWriteEnvScriptInvalid(t *testing.T) {
	// unknown field
	files := writeDocs(t, map[string]string{"01.json": `{"service": {"port": "8080", "colour": "red"}}`})
	assert.Error(t, writeEnvScript(files, "", &bytes.Buffer{}))

	// decodes, but no facets
	files = writeDocs(t, map[string]string{"01.json": serviceDoc})
	assert.Error(t, writeEnvScript(files, "", &bytes.Buffer{}))
}
