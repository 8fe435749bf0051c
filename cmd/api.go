package main

import "github.com/uvalib/virgo4-solr-facet-ws/internal/solr"

// schemas

// searchRequest holds the non-facet parameters of a search request.
// Facet selections arrive as f[<facet name>]=<value> and are read separately.
type searchRequest struct {
	Query string `schema:"q"`
	Start int    `schema:"start"`
	Rows  int    `schema:"rows"`
}

// facetValueResult is one facet value, with the link that toggles it.
type facetValueResult struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
	Link     string `json:"link"`
}

// facetNodeResult is one node of a browse tree.
type facetNodeResult struct {
	ID       string            `json:"id"`
	Label    string            `json:"label,omitempty"`
	Value    *facetValueResult `json:"value,omitempty"`
	Children []facetNodeResult `json:"children,omitempty"`
}

type facetResult struct {
	Name             string             `json:"name"`
	Label            string             `json:"label"`
	Field            string             `json:"field"`
	Container        string             `json:"container"` // "list" or "tree"
	HasSelectedValue bool               `json:"has_selected_value"`
	Values           []facetValueResult `json:"values,omitempty"` // list containers
	Nodes            []facetNodeResult  `json:"nodes,omitempty"`  // tree containers
}

type searchResultDebug struct {
	RequestID  string              `json:"request_id"`
	SolrQuery  string              `json:"solr_query"`
	SolrParams map[string][]string `json:"solr_params"`
	QTime      int                 `json:"qtime"`
}

type searchResult struct {
	Query         string             `json:"query"`
	Start         int                `json:"start"`
	Rows          int                `json:"rows"`
	Total         int                `json:"total"`
	Docs          []solr.Document    `json:"docs,omitempty"`
	Facets        []facetResult      `json:"facets,omitempty"`
	ElapsedMS     int64              `json:"elapsed_ms,omitempty"`
	StatusCode    int                `json:"status_code"`
	StatusMessage string             `json:"status_msg,omitempty"`
	Debug         *searchResultDebug `json:"debug,omitempty"`
}

type identifyFacet struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Field       string `json:"field"`
	Multiselect bool   `json:"multiselect"`
	Container   string `json:"container"`
	Sort        string `json:"sort,omitempty"`
}

type identifyResult struct {
	Facets []identifyFacet `json:"facets"`
}
