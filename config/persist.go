package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/fonto-dev/fonto/errors"
)

// Write serializes the configuration to the given path as TOML, creating
// parent directories as needed. The file is replaced atomically.
func Write(cfg *Config, path string) error {
	content, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create config directory for %s", path)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}

// WriteDefaults writes a config file populated with default values,
// used by `fonto config write` to scaffold ~/.fonto/config.toml.
func WriteDefaults(path string) error {
	cfg := &Config{
		SourceDir:    filepath.Join(DefaultDataDir(), "fibo"),
		CachePath:    filepath.Join(DefaultDataDir(), "fibo.nt"),
		ForceRefresh: false,
		Search: SearchConfig{
			DefaultLimit: DefaultSearchLimit,
			MaxLimit:     MaxSearchLimit,
		},
		Engine: EngineConfig{
			WaitForReady: true,
			WatchSources: false,
		},
		Ingest: IngestConfig{
			TimeoutSeconds: DefaultIngestTimeout,
		},
	}
	return Write(cfg, path)
}
