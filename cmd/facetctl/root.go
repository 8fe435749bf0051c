package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "facetctl",
	Short: "Inspect and deploy virgo4-solr-facet-ws facet configurations.",
	Long: `
Run faceted searches against Solr using a service configuration, without
running the service, and package configuration documents as environment
variables for deployment.

Configuration is read from the VIRGO4_SOLR_FACET_WS_JSON_* environment
variables unless a file is given with --config.
`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(envCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
