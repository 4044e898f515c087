// Package buildinfo holds the release the binary was built from.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/precice/config-format/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/precice/config-format/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/precice/config-format/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/precice-config-format
//
// Version is part of every cache key, so canonical markers written by one
// release are never trusted by another.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Short returns the version with an abbreviated commit, e.g. "v1.0.0 (3f2a9c1)".
func Short() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, commit)
}

// Fields returns the build information as key/value pairs for JSON output.
func Fields() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"built":   Date,
	}
}

// Template returns the --version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
