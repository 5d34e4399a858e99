// trackbar - live progress display for long-running terminal operations
package main

import (
	"os"

	"github.com/rescale/trackbar/internal/cli"
	"github.com/rescale/trackbar/internal/version"
)

// Version information - overridden by ldflags for release builds
var (
	Version   = "v1.2.0"
	BuildTime = "2026-08-27"
)

func main() {
	// Set version in version package (canonical source for all packages)
	version.Version = Version
	version.BuildTime = BuildTime

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
