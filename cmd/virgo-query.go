package main

import (
	"github.com/uvalib/virgo4-parser/v4parser"
)

type solrParserInfo struct {
	query  string
	parser v4parser.SolrParser
}

// virgoQueryConvertToSolr converts a virgo query, e.g. keyword:{cats}, to
// solr syntax. An empty query matches everything.
func (s *searchContext) virgoQueryConvertToSolr(virgoQuery string) (*solrParserInfo, error) {
	var sp solrParserInfo
	var err error

	if virgoQuery == "" {
		sp.query = "*:*"
		return &sp, nil
	}

	if sp.query, err = v4parser.ConvertToSolrWithParserAndTimeout(&sp.parser, virgoQuery, 10); err != nil {
		return nil, err
	}

	for field, values := range sp.parser.FieldValues {
		s.log("[SEARCH] parsed %s: %v", field, values)
	}

	return &sp, nil
}
