// Command kibble-feeder runs the pet feeder controller.
//
// The controller watches the clock for interval boundaries, checks RFID tags
// against the whitelist and dispenses food once per window. Peripherals are
// simulated in-process; run with --interactive to drive them from a console.
//
// Usage:
//
//	kibble-feeder run [flags]
//	kibble-feeder whitelist show <image>
//	kibble-feeder whitelist image --out <image> [uid...]
//	kibble-feeder version
//
// Examples:
//
//	# Run with a config file and the simulation console
//	kibble-feeder run --config /etc/kibble/feeder.yaml --interactive
//
//	# Build a whitelist image from a tag list
//	kibble-feeder whitelist image --from tags.yaml --out whitelist.bin
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "kibble-feeder",
	Short:         "Automated pet feeder controller",
	Long:          `Dispenses food once per feeding interval for whitelisted RFID tags.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kibble-feeder %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newWhitelistCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
