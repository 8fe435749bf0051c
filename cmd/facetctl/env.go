package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/config"
)

type envOpts struct {
	dir      string
	out      string
	solrHost string
}

var envFlags envOpts

func init() {
	flags := envCmd.Flags()
	flags.StringVarP(&envFlags.dir, "dir", "d", "", "directory of json configuration documents")
	flags.StringVarP(&envFlags.out, "out", "o", "setup_env.sh", "script to write")
	flags.StringVar(&envFlags.solrHost, "solr-host", "", "solr host override to export, if any")
	envCmd.MarkFlagRequired("dir")
}

var envCmd = &cobra.Command{
	Use:   "env",
	Args:  cobra.NoArgs,
	Short: "Package configuration documents as environment variables",
	Long: `
Reads every *.json document in --dir, in name order, checks that together
they form a valid configuration, and writes a shell script exporting each one
gzipped and base64 encoded as VIRGO4_SOLR_FACET_WS_JSON_<nn>.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := filepath.Glob(filepath.Join(envFlags.dir, "*.json"))
		if err != nil {
			return err
		}

		if len(files) == 0 {
			return fmt.Errorf("no json documents in %s", envFlags.dir)
		}

		sort.Strings(files)

		outF, err := os.Create(envFlags.out)
		if err != nil {
			return err
		}

		defer outF.Close()

		if err := writeEnvScript(files, envFlags.solrHost, outF); err != nil {
			return err
		}

		log.Printf("wrote %s from %d documents", envFlags.out, len(files))

		return os.Chmod(envFlags.out, 0755)
	},
}

// writeEnvScript validates the composite of files and writes the export script.
func writeEnvScript(files []string, solrHost string, w io.Writer) error {
	cfg := config.Config{}

	var exports []string

	for i, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return err
		}

		if err := cfg.Decode(string(data)); err != nil {
			return fmt.Errorf("error decoding %s: %w", f, err)
		}

		val, err := config.EncodeValue(data)
		if err != nil {
			return err
		}

		exports = append(exports, fmt.Sprintf("export %s%02d=%s", config.EnvJSONPrefix, i+1, val))
	}

	if solrHost != "" {
		cfg.Solr.Host = solrHost
	}

	if err := cfg.Validate(nil); err != nil {
		return err
	}

	fmt.Fprintf(w, "#!/bin/bash\n\n")

	if solrHost != "" {
		fmt.Fprintf(w, "export %s=%s\n", config.EnvSolrHost, solrHost)
	}

	for _, export := range exports {
		fmt.Fprintln(w, export)
	}

	return nil
}
