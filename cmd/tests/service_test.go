package tests

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

type testConfig struct {
	Endpoint string `yaml:"endpoint"`
	Query    string `yaml:"query"`
}

var cfg = loadConfig()

func emptyFields(fields []string) bool {

	for _, field := range fields {
		if emptyField(field) == true {
			return true
		}
	}
	return false
}

func emptyField(field string) bool {
	return len(strings.TrimSpace(field)) == 0
}

func loadConfig() testConfig {

	var c testConfig

	data, err := os.ReadFile("service_test.yml")
	if err != nil {
		log.Printf("no test configuration: %s", err.Error())
	} else if err := yaml.Unmarshal(data, &c); err != nil {
		log.Fatal(err)
	}

	// allow environment variables to override the configuration file
	if len(os.Getenv("TC_ENDPOINT")) != 0 {
		c.Endpoint = os.Getenv("TC_ENDPOINT")
	}

	log.Printf("endpoint [%s]\n", c.Endpoint)

	return c
}

// requireEndpoint skips tests that need a running service when none is configured.
func requireEndpoint(t *testing.T) {
	t.Helper()

	if emptyField(cfg.Endpoint) == true {
		t.Skip("no service endpoint configured (set TC_ENDPOINT)")
	}
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

func httpGet(endpoint string) (int, []byte) {

	resp, err := httpClient.Get(endpoint)
	if err != nil {
		log.Printf("GET %s failed: %s", endpoint, err.Error())
		return http.StatusInternalServerError, nil
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("reading %s failed: %s", endpoint, err.Error())
		return http.StatusInternalServerError, nil
	}

	return resp.StatusCode, body
}

// VersionCheck returns the status and build version reported by the service.
func VersionCheck(endpoint string) (int, string) {

	status, body := httpGet(fmt.Sprintf("%s/version", endpoint))
	if status != http.StatusOK {
		return status, ""
	}

	var version struct {
		Build string `json:"build"`
	}

	if err := json.Unmarshal(body, &version); err != nil {
		return http.StatusInternalServerError, ""
	}

	return status, version.Build
}

// HealthCheck returns the status of the service health check.
func HealthCheck(endpoint string) int {

	status, _ := httpGet(fmt.Sprintf("%s/healthcheck", endpoint))

	return status
}

type identifyFacet struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Field     string `json:"field"`
	Container string `json:"container"`
}

// Identify returns the facets the service is configured with.
func Identify(endpoint string) (int, []identifyFacet) {

	status, body := httpGet(fmt.Sprintf("%s/identify", endpoint))
	if status != http.StatusOK {
		return status, nil
	}

	var res struct {
		Facets []identifyFacet `json:"facets"`
	}

	if err := json.Unmarshal(body, &res); err != nil {
		return http.StatusInternalServerError, nil
	}

	return status, res.Facets
}

type facetValue struct {
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
	Link     string `json:"link"`
}

type facetNode struct {
	ID       string      `json:"id"`
	Value    *facetValue `json:"value"`
	Children []facetNode `json:"children"`
}

type facetResult struct {
	Name             string       `json:"name"`
	HasSelectedValue bool         `json:"has_selected_value"`
	Values           []facetValue `json:"values"`
	Nodes            []facetNode  `json:"nodes"`
}

type searchResult struct {
	Total      int           `json:"total"`
	Facets     []facetResult `json:"facets"`
	StatusCode int           `json:"status_code"`
}

// Search runs a search with the given query and facet selections.
func Search(endpoint string, query string, filters map[string]string) (int, *searchResult) {

	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}

	for name, value := range filters {
		params.Add(fmt.Sprintf("f[%s]", name), value)
	}

	status, body := httpGet(fmt.Sprintf("%s/api/search?%s", endpoint, params.Encode()))
	if body == nil {
		return status, nil
	}

	var res searchResult
	if err := json.Unmarshal(body, &res); err != nil {
		return http.StatusInternalServerError, nil
	}

	return status, &res
}

//
// end of file
//
