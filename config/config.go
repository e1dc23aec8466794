// Package config loads FONTO configuration from defaults, an optional TOML
// file, and FONTO_-prefixed environment variables, in that precedence order.
package config

// Config represents the core FONTO configuration
type Config struct {
	SourceDir    string       `mapstructure:"source_dir" toml:"source_dir"`    // directory of RDF source documents
	CachePath    string       `mapstructure:"cache_path" toml:"cache_path"`    // consolidated N-Triples cache file
	ForceRefresh bool         `mapstructure:"force_refresh" toml:"force_refresh"` // bypass cache, re-parse all sources
	Search       SearchConfig `mapstructure:"search" toml:"search"`
	Engine       EngineConfig `mapstructure:"engine" toml:"engine"`
	Ingest       IngestConfig `mapstructure:"ingest" toml:"ingest"`
	Log          LogConfig    `mapstructure:"log" toml:"log"`
}

// SearchConfig bounds search result sizes
type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit" toml:"default_limit"` // results returned when caller passes no limit
	MaxLimit     int `mapstructure:"max_limit" toml:"max_limit"`     // hard cap on caller-supplied limits
}

// EngineConfig configures query engine lifecycle behavior
type EngineConfig struct {
	// WaitForReady makes queries block until indices are built instead of
	// rejecting with a not-ready condition.
	WaitForReady bool `mapstructure:"wait_for_ready" toml:"wait_for_ready"`
	// WatchSources rebuilds the engine when files under source_dir change.
	WatchSources bool `mapstructure:"watch_sources" toml:"watch_sources"`
}

// IngestConfig configures the ingestion pipeline
type IngestConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds" toml:"timeout_seconds"` // bound on source parsing + cache write
}

// LogConfig configures the global logger
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`      // JSON output instead of console lines
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"` // 0 = warnings only, 1 = info, 2+ = debug
}

// Default limits. DefaultSearchLimit mirrors the ranked-suggestion count the
// original server returned for fuzzy lookups.
const (
	DefaultSearchLimit   = 10
	MaxSearchLimit       = 50
	DefaultIngestTimeout = 300 // seconds; FIBO is ~2000 files on a cold parse
)
