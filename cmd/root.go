package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/apimesh/apimesh/internal/logging"
	"github.com/apimesh/apimesh/internal/paths"
	"github.com/apimesh/apimesh/internal/telemetry"
	"github.com/apimesh/apimesh/internal/version"
)

// skipTelemetry lists commands that shouldn't be tracked
var skipTelemetry = map[string]bool{
	"completion": true, // shell completion
	"__complete": true, // internal completion
	"help":       true,
}

var debugFlag bool

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "apimesh",
	Short: "Stitch API specs into a single mesh",
	Long: `apimesh combines multiple API specifications into one coherent mesh
you can generate clients and gateways from.

Use 'apimesh <command> --help' for details.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Debug logging is a convenience; losing it must not fail the command
		_ = logging.Setup(debugFlag, paths.LogPath())

		// Track CLI command usage (skip completion and help plumbing)
		name := cmd.Name()
		if skipTelemetry[name] {
			return
		}
		if parent := cmd.Parent(); parent != nil && parent.Name() == "completion" {
			return
		}
		telemetry.CLICommandStart(name)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	telemetry.Init()

	err := RootCmd.Execute()
	telemetry.CLICommandEnd(err)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Set version for --version flag
	RootCmd.Version = version.Version

	// Don't show usage on errors - only show it when explicitly requested
	RootCmd.SilenceUsage = true

	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write debug logs to the state directory")
}
