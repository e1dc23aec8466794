// Package version carries build metadata stamped into the binary.
package version

import (
	"fmt"
	"runtime"
)

// Overridden at build time:
//
//	go build -ldflags "-X .../internal/version.Version=v1.2.3 ..."
var (
	// Version is the semantic version of a tagged release.
	Version = "dev"

	// CommitHash identifies the exact source revision.
	CommitHash = "dev"

	// BuildTime records when the binary was produced.
	BuildTime = "unknown"
)

// Info is the full build description, shaped for JSON output.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get collects the stamped values plus the runtime platform.
func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders a one-line description for terminal output.
func (i Info) String() string {
	if i.Version != "dev" {
		return fmt.Sprintf("fonto %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("fonto dev (commit %s, built %s)", i.CommitHash, i.BuildTime)
}

// Short abbreviates the commit hash for log prefixes.
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
