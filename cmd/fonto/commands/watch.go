package commands

import (
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fonto-dev/fonto/config"
	"github.com/fonto-dev/fonto/engine"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the cache current as ontology sources change",
	Long: `Load the ontology, then watch the source directory and rebuild the
indices and statement cache whenever a document changes. Rapid bursts
of changes collapse into a single rebuild.

Runs until interrupted. Setting engine.watch_sources = true in the
config makes 'fonto ingest' behave the same way.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	eng, cfg, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	return watchSources(cmd, eng, cfg)
}

// watchSources blocks on the source watcher until interrupted.
func watchSources(cmd *cobra.Command, eng *engine.Engine, cfg *config.Config) error {
	watcher, err := engine.NewSourceWatcher(eng)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pterm.Info.Printf("Watching %s for changes (Ctrl-C to stop)\n", cfg.SourceDir)
	watcher.Run(ctx)
	pterm.Println()
	pterm.Info.Println("Stopped")
	return nil
}
