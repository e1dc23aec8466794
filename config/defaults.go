package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	dataDir := DefaultDataDir()

	v.SetDefault("source_dir", filepath.Join(dataDir, "fibo"))
	v.SetDefault("cache_path", filepath.Join(dataDir, "fibo.nt"))
	v.SetDefault("force_refresh", false)

	v.SetDefault("search.default_limit", DefaultSearchLimit)
	v.SetDefault("search.max_limit", MaxSearchLimit)

	v.SetDefault("engine.wait_for_ready", true)
	v.SetDefault("engine.watch_sources", false)

	v.SetDefault("ingest.timeout_seconds", DefaultIngestTimeout)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// DefaultDataDir returns ~/.fonto, falling back to the working directory
// when the home directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fonto"
	}
	return filepath.Join(home, ".fonto")
}
