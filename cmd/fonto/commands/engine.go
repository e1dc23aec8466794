package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fonto-dev/fonto/config"
	"github.com/fonto-dev/fonto/engine"
	"github.com/fonto-dev/fonto/errors"
	"github.com/fonto-dev/fonto/logger"
)

// loadConfig resolves configuration for a command invocation, honoring the
// --config persistent flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// loadEngine builds a ready engine for one-shot query commands.
func loadEngine(cmd *cobra.Command) (*engine.Engine, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load config")
	}

	eng := engine.New(cfg, logger.Logger)

	spinner, _ := pterm.DefaultSpinner.Start("Loading ontology indices...")
	report, err := eng.Load(cmd.Context())
	if err != nil {
		if spinner != nil {
			spinner.Fail("Failed to load ontology")
		}
		return nil, nil, err
	}
	if spinner != nil {
		if report.FromCache {
			spinner.Success(pterm.Sprintf("Loaded %d statements from cache", report.Statements))
		} else {
			spinner.Success(pterm.Sprintf("Parsed %d documents (%d statements)", report.Documents, report.Statements))
		}
	}
	return eng, cfg, nil
}
