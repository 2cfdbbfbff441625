// Package version provides the arrowdb version string.
// The version is set at build time via -ldflags.
package version

// Version is the current arrowdb version.
// Override at build time: go build -ldflags "-X github.com/arrowdb/arrowdb/internal/version.Version=2.0.0"
var Version = "2.0.0"

// BuildTime is the build timestamp.
// Override at build time: go build -ldflags "-X github.com/arrowdb/arrowdb/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var BuildTime = "unknown"
