package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fonto-dev/fonto/cmd/fonto/commands"
	"github.com/fonto-dev/fonto/errors"
	"github.com/fonto-dev/fonto/logger"
)

var rootCmd = &cobra.Command{
	Use:   "fonto",
	Short: "fonto - FIBO ontology query engine",
	Long: `fonto - Query engine for the Financial Industry Business Ontology.

fonto ingests FIBO ontology documents (RDF/XML and Turtle) into in-memory
indices and answers vocabulary questions about the financial domain.

Available commands:
  ingest - Parse ontology sources and build the statement cache
  define - Resolve a term and show its labels, definitions, and parents
  search - Rank entities whose labels match a query
  tree   - Walk the class hierarchy up or down from a term
  locate - Show where in the ontology an entity is defined
  watch  - Keep the cache current as ontology sources change
  config - Manage fonto configuration

Examples:
  fonto ingest                       # Build indices and the cache
  fonto define "sovereign state"     # Look up one entity
  fonto search currency --limit 5    # Ranked label search
  fonto tree SovereignState --depth 2
  fonto locate Currency`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON instead of console output")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: ~/.fonto/config.toml)")

	rootCmd.AddCommand(commands.IngestCmd)
	rootCmd.AddCommand(commands.DefineCmd)
	rootCmd.AddCommand(commands.SearchCmd)
	rootCmd.AddCommand(commands.TreeCmd)
	rootCmd.AddCommand(commands.LocateCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
