package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/schema"
	"github.com/uvalib/virgo4-api/v4api"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/config"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/facet"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/solr"
)

const (
	defaultRows = 10
	maxRows     = 100
)

type searchContext struct {
	pool    *poolContext
	client  *clientContext
	req     searchRequest
	state   facet.State
	facets  *facet.Collection
	parsed  *solrParserInfo
	params  url.Values
	solrRes *solr.RecordCollection
}

type searchResponse struct {
	status int         // http status code
	data   interface{} // data to return as JSON
	err    error       // error, if any
}

func (s *searchContext) init(p *poolContext, c *clientContext) {
	s.pool = p
	s.client = c
}

func (s *searchContext) log(format string, args ...interface{}) {
	s.client.log(format, args...)
}

func (s *searchContext) err(format string, args ...interface{}) {
	s.client.err(format, args...)
}

func (s *searchContext) rowLimits() (int, int) {
	def := s.pool.config.Service.DefaultRows
	if def <= 0 {
		def = defaultRows
	}

	limit := s.pool.config.Service.MaxRows
	if limit <= 0 {
		limit = maxRows
	}

	return def, limit
}

// parseRequest reads the query, paging and facet selections from the URL.
func (s *searchContext) parseRequest() error {
	query := s.client.ginCtx.Request.URL.Query()

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	if err := decoder.Decode(&s.req, query); err != nil {
		return fmt.Errorf("%w: %s", facet.ErrInvalidInput, err.Error())
	}

	def, limit := s.rowLimits()

	if query.Has("rows") == false {
		s.req.Rows = def
	}

	if s.req.Start < 0 || s.req.Rows < 0 {
		return fmt.Errorf("%w: start and rows must not be negative", facet.ErrInvalidInput)
	}

	if s.req.Rows > limit {
		s.req.Rows = limit
	}

	s.state = facet.ParseState(query)

	// following a facet link starts over at the first page
	s.state.Params.Del("start")

	// client options are not part of the search
	s.state.Params.Del("debug")
	s.state.Params.Del("verbose")

	s.log("[SEARCH] query: [%s] start: [%d] rows: [%d] filters: %v", s.req.Query, s.req.Start, s.req.Rows, s.state.Filters)

	return nil
}

func (s *searchContext) initFacets() error {
	opts := config.BuildOptions{
		Authenticated: s.client.isAuthenticated(),
		Collator:      s.client.collator(),
		Translate:     s.client.translate,
	}

	facets, err := s.pool.config.NewCollection(opts)
	if err != nil {
		return err
	}

	for _, name := range s.state.FilterNames() {
		if facets.Has(name) == false {
			return fmt.Errorf("%w: received unrecognized filter: [%s]", facet.ErrInvalidInput, name)
		}
	}

	facets.SetComponentState(s.state)

	s.facets = facets

	return nil
}

func (s *searchContext) solrParams() url.Values {
	params := s.facets.SearchParameters()

	params.Set("q", s.parsed.query)
	params.Set("start", strconv.Itoa(s.req.Start))
	params.Set("rows", strconv.Itoa(s.req.Rows))

	for key, vals := range s.pool.config.Solr.Params.Values() {
		for _, val := range vals {
			params.Add(key, val)
		}
	}

	return params
}

func (s *searchContext) performQuery() searchResponse {
	s.log("**********  START SOLR QUERY  **********")

	s.params = s.solrParams()

	start := time.Now()
	res, err := s.pool.solr.Search(s.client.ginCtx.Request.Context(), s.params)
	solrDuration.Observe(time.Since(start).Seconds())

	s.log("**********   END SOLR QUERY   **********")

	if err != nil {
		solrErrors.Inc()
		s.err("query execution error: %s", err.Error())

		var solrErr *solr.Error
		if errors.As(err, &solrErr) && solrErr.Code == http.StatusBadRequest {
			return searchResponse{status: http.StatusBadRequest, err: err}
		}

		return searchResponse{status: http.StatusInternalServerError, err: err}
	}

	s.solrRes = res

	s.log("[SOLR] res: header: { status = %d, QTime = %d }, body: { start = %d, total = %d }", res.Header.Status, res.Header.QTime, res.Start, res.Total)

	return searchResponse{status: http.StatusOK}
}

func (s *searchContext) handleSearchOrFacetsRequest() searchResponse {
	var err error

	if err = s.parseRequest(); err != nil {
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	if err = s.initFacets(); err != nil {
		if errors.Is(err, facet.ErrInvalidInput) {
			return searchResponse{status: http.StatusBadRequest, err: err}
		}

		return searchResponse{status: http.StatusInternalServerError, err: err}
	}

	if s.parsed, err = s.virgoQueryConvertToSolr(s.req.Query); err != nil {
		return searchResponse{status: http.StatusBadRequest, err: fmt.Errorf("invalid query: %w", err)}
	}

	if resp := s.performQuery(); resp.err != nil {
		return resp
	}

	if err = s.facets.SetRecordCollection(s.solrRes); err != nil {
		return searchResponse{status: http.StatusInternalServerError, err: err}
	}

	for a := range s.facets.All() {
		facetValues.WithLabelValues(a.Name()).Add(float64(a.Container().Count()))
	}

	s.log("[FACET] %d facet values across %d facets", s.facets.AggregatedCount(), s.facets.Len())

	return searchResponse{status: http.StatusOK}
}

func (s *searchContext) elapsedMS() int64 {
	return int64(time.Since(s.client.start) / time.Millisecond)
}

func (s *searchContext) handleSearchRequest() searchResponse {
	resp := s.handleSearchOrFacetsRequest()

	if resp.err != nil {
		resp.data = searchResult{Query: s.req.Query, StatusCode: resp.status, StatusMessage: resp.err.Error()}
		searchRequests.WithLabelValues("search", strconv.Itoa(resp.status)).Inc()
		return resp
	}

	docs, err := s.solrRes.Docs()
	if err != nil {
		searchRequests.WithLabelValues("search", strconv.Itoa(http.StatusInternalServerError)).Inc()
		return searchResponse{status: http.StatusInternalServerError, err: err, data: searchResult{StatusCode: http.StatusInternalServerError, StatusMessage: err.Error()}}
	}

	res := searchResult{
		Query:      s.req.Query,
		Start:      s.req.Start,
		Rows:       len(docs),
		Total:      s.solrRes.Total,
		Docs:       docs,
		Facets:     s.facetResults(),
		StatusCode: http.StatusOK,
	}

	if s.client.opts.debug == true {
		res.Debug = &searchResultDebug{
			RequestID:  s.client.reqID,
			SolrQuery:  s.parsed.query,
			SolrParams: s.params,
			QTime:      s.solrRes.Header.QTime,
		}
	}

	res.ElapsedMS = s.elapsedMS()

	searchRequests.WithLabelValues("search", strconv.Itoa(http.StatusOK)).Inc()

	return searchResponse{status: http.StatusOK, data: res}
}

func (s *searchContext) handleFacetsRequest() searchResponse {
	resp := s.handleSearchOrFacetsRequest()

	if resp.err != nil {
		resp.data = v4api.PoolFacets{StatusCode: resp.status, StatusMessage: resp.err.Error()}
		searchRequests.WithLabelValues("facets", strconv.Itoa(resp.status)).Inc()
		return resp
	}

	res := v4api.PoolFacets{
		FacetList:  s.poolFacets(),
		ElapsedMS:  s.elapsedMS(),
		StatusCode: http.StatusOK,
	}

	searchRequests.WithLabelValues("facets", strconv.Itoa(http.StatusOK)).Inc()

	return searchResponse{status: http.StatusOK, data: res}
}

func (s *searchContext) handlePingRequest() searchResponse {
	if err := s.pool.solr.Ping(s.client.ginCtx.Request.Context()); err != nil {
		return searchResponse{status: http.StatusInternalServerError, err: err}
	}

	return searchResponse{status: http.StatusOK}
}
