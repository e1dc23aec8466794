package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fonto-dev/fonto/engine"
	"github.com/fonto-dev/fonto/errors"
	"github.com/fonto-dev/fonto/logger"
)

// IngestCmd represents the ingest command
var IngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse ontology sources and build the statement cache",
	Long: `Parse all ontology documents under the configured source directory,
build the in-memory indices, and write the statement cache so later
invocations start fast.

Examples:
  fonto ingest           # Use the cache when present
  fonto ingest --force   # Re-parse every source document`,
	RunE: runIngest,
}

func init() {
	IngestCmd.Flags().Bool("force", false, "Bypass the cache and re-parse all source documents")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	force, _ := cmd.Flags().GetBool("force")
	if force {
		cfg.ForceRefresh = true
	}

	eng := engine.New(cfg, logger.Logger)

	spinner, _ := pterm.DefaultSpinner.Start("Ingesting ontology sources...")
	report, err := eng.Load(cmd.Context())
	if err != nil {
		if spinner != nil {
			spinner.Fail("Ingestion failed")
		}
		return err
	}
	if spinner != nil {
		spinner.Success("Ingestion complete")
	}

	pterm.Println()
	if report.FromCache {
		pterm.Info.Printf("Loaded from cache: %s\n", cfg.CachePath)
	} else {
		pterm.Info.Printf("Parsed %d documents from %s\n", report.Documents, cfg.SourceDir)
	}
	pterm.Printf("  Statements: %d\n", report.Statements)
	pterm.Printf("  Entities:   %d\n", report.Entities)
	pterm.Printf("  Duration:   %s\n", report.Duration.Round(time.Millisecond))

	if len(report.Skipped) > 0 {
		pterm.Println()
		pterm.Warning.Printf("Skipped %d malformed documents:\n", len(report.Skipped))
		for _, skip := range report.Skipped {
			pterm.Printf("  %s: %v\n", skip.Path, skip.Err)
		}
	}

	if cfg.Engine.WatchSources {
		return watchSources(cmd, eng, cfg)
	}
	return nil
}
