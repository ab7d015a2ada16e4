// Package version holds build metadata set by the linker:
//
//	go build -ldflags "-X github.com/dkoosis/sift/internal/version.Version=v1.2.0"
package version

import (
	"fmt"
	"runtime"
)

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Name is the program name reported in generated documents.
const Name = "sift"

// String renders the one-line version banner.
func String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", Name, Version, CommitHash, BuildDate, runtime.Version())
}
