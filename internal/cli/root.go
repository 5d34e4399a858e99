// Package cli provides the command-line interface for trackbar.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/rescale/trackbar/internal/logging"
	"github.com/rescale/trackbar/internal/version"
)

var (
	// Global flags
	verbose bool
	debug   bool

	// Global logger
	logger *logging.Logger
)

// NewRootCmd creates the root command for CLI mode.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trackbar",
		Short: "Live progress display for long-running operations",
		Long: `trackbar ` + version.Version + ` - Built: ` + version.BuildTime + `
Renders a self-updating progress bar on interactive terminals and
append-only timestamped progress lines when output is redirected
to a file or log collector.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger
			logger = logging.NewDefaultCLILogger()
			if verbose || debug {
				logging.SetGlobalLevel(-1) // Debug level (zerolog.DebugLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"

	rootCmd.AddCommand(newRunCmd())

	return rootCmd
}

// Execute runs the root command for CLI mode.
func Execute() error {
	rootCmd := NewRootCmd()
	return rootCmd.Execute()
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return logger
}
