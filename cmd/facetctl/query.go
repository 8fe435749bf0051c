package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/config"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/facet"
	"github.com/uvalib/virgo4-parser/v4parser"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/solr"
	"golang.org/x/text/language"
)

type queryOpts struct {
	configFile string
	query      string
	raw        bool
	filters    []string
	rows       int
	lang       string
	verbose    bool
	timeout    time.Duration
}

var queryFlags queryOpts

func init() {
	flags := queryCmd.Flags()
	flags.StringVarP(&queryFlags.configFile, "config", "c", "", "configuration file (default: read from the environment)")
	flags.StringVarP(&queryFlags.query, "query", "q", "", "virgo query, e.g. 'keyword:{cats}' (default: match everything)")
	flags.BoolVar(&queryFlags.raw, "raw", false, "send the query to solr as is")
	flags.StringArrayVarP(&queryFlags.filters, "filter", "f", nil, "facet selection as name=value; may be repeated")
	flags.IntVar(&queryFlags.rows, "rows", 0, "number of documents to request")
	flags.StringVar(&queryFlags.lang, "lang", "en", "language used to order labels")
	flags.BoolVarP(&queryFlags.verbose, "verbose", "v", false, "log solr requests and responses")
	flags.DurationVar(&queryFlags.timeout, "timeout", 30*time.Second, "overall query timeout")
}

var queryCmd = &cobra.Command{
	Use:     "query",
	Aliases: []string{"q", "search"},
	Args:    cobra.NoArgs,
	Short:   "Run a faceted search and print the facet values",
	Long: `
Builds the configured facets, applies any selections given with --filter, runs
the query against Solr and prints one table per facet. Browse trees are
printed indented by depth.

For example:

  facetctl query -c config.json -q 'title:{cats}' -f format=Book -f format=Journal
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(queryFlags.configFile)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), queryFlags.timeout)
		defer cancel()

		return runQuery(ctx, cfg, queryFlags, cmd.OutOrStdout())
	},
}

func loadConfig(file string) (*config.Config, error) {
	if file != "" {
		return config.LoadFile(file)
	}

	return config.Load()
}

// parseFilters turns name=value arguments into a facet selection state.
func parseFilters(filters []string) (facet.State, error) {
	state := facet.NewState()

	for _, f := range filters {
		name, value, ok := strings.Cut(f, "=")
		if ok == false || name == "" {
			return state, fmt.Errorf("%w: filter must be name=value, got [%s]", facet.ErrInvalidInput, f)
		}

		state.Filters[name] = append(state.Filters[name], value)
	}

	return state, nil
}

// solrQuery converts a virgo query to solr syntax unless raw is set.
func solrQuery(query string, raw bool) (string, error) {
	if query == "" {
		return "*:*", nil
	}

	if raw == true {
		return query, nil
	}

	var parser v4parser.SolrParser

	q, err := v4parser.ConvertToSolrWithParserAndTimeout(&parser, query, 10)
	if err != nil {
		return "", fmt.Errorf("invalid query [%s]: %w", query, err)
	}

	return q, nil
}

func runQuery(ctx context.Context, cfg *config.Config, opts queryOpts, w io.Writer) error {
	if err := cfg.Validate(nil); err != nil {
		return err
	}

	tag, err := language.Parse(opts.lang)
	if err != nil {
		return fmt.Errorf("invalid language [%s]: %w", opts.lang, err)
	}

	facets, err := cfg.NewCollection(config.BuildOptions{Collator: facet.NewCollator(tag)})
	if err != nil {
		return err
	}

	state, err := parseFilters(opts.filters)
	if err != nil {
		return err
	}

	for _, name := range state.FilterNames() {
		if facets.Has(name) == false {
			return fmt.Errorf("%w: unknown facet [%s]", facet.ErrInvalidInput, name)
		}
	}

	facets.SetComponentState(state)

	q, err := solrQuery(opts.query, opts.raw)
	if err != nil {
		return err
	}

	params := facets.SearchParameters()

	for key, vals := range cfg.Solr.Params.Values() {
		for _, val := range vals {
			params.Add(key, val)
		}
	}

	params.Set("q", q)
	params.Set("rows", strconv.Itoa(opts.rows))

	var logger *log.Logger
	if opts.verbose == true {
		logger = log.New(os.Stderr, "[SOLR] ", log.LstdFlags)
	}

	client := solr.NewClient(cfg.Solr.Config, logger)

	res, err := client.Search(ctx, params)
	if err != nil {
		return err
	}

	if err := facets.SetRecordCollection(res); err != nil {
		return err
	}

	fmt.Fprintf(w, "%d results (QTime %d ms, elapsed %d ms)\n\n", res.Total, res.Header.QTime, res.ElapsedMS)

	writeFacets(facets, w)

	return nil
}
