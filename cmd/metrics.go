package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solr_facet_ws_requests_total",
		Help: "The total number of processed search and facet requests",
	}, []string{"endpoint", "status"})

	solrDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solr_facet_ws_solr_duration_seconds",
		Help:    "Round-trip time of solr queries",
		Buckets: prometheus.DefBuckets,
	})

	solrErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solr_facet_ws_solr_errors_total",
		Help: "The total number of failed solr queries",
	})

	facetValues = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solr_facet_ws_facet_values_total",
		Help: "The total number of facet values returned, per facet",
	}, []string{"facet"})
)
