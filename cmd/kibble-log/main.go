// Command kibble-log views and analyzes feeder journal files.
//
// Journal files are written by kibble-feeder when journal.path is set.
//
// Usage:
//
//	kibble-log <command> [flags] <file.klog>
//
// Commands:
//
//	view     View events in human-readable format
//	stats    Show feeding statistics
//	export   Export events to JSON lines or CSV
//	filter   Copy matching events into a new journal
//
// Examples:
//
//	# View all events
//	kibble-log view feeder.klog
//
//	# View one tag's history
//	kibble-log view --uid AA:BB:CC:DD feeder.klog
//
//	# Statistics for one afternoon
//	kibble-log stats --time-start 2026-06-01T12:00:00Z --time-end 2026-06-01T18:00:00Z feeder.klog
//
//	# Export dispenses to JSONL
//	kibble-log export --category dispense feeder.klog
package main

import (
	"fmt"
	"os"

	"github.com/kibble-feeder/kibble-go/cmd/kibble-log/commands"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kibble-log",
		Short:         "Feeder journal analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var opts commands.FilterOptions
	flags := root.PersistentFlags()
	flags.StringVar(&opts.RunID, "run-id", "", "Filter by run ID")
	flags.StringVar(&opts.Source, "source", "", "Filter by source (controller, clock, dispenser, configurator)")
	flags.StringVar(&opts.Category, "category", "", "Filter by category (window, tag, dispense, interval, lifecycle, error)")
	flags.StringVar(&opts.UID, "uid", "", "Filter tag and dispense events by UID")
	flags.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	flags.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")

	root.AddCommand(&cobra.Command{
		Use:   "view <file.klog>",
		Short: "View events in human-readable format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.BuildFilter()
			if err != nil {
				return err
			}
			return commands.RunView(args[0], filter, cmd.OutOrStdout())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "stats <file.klog>",
		Short: "Show feeding statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.BuildFilter()
			if err != nil {
				return err
			}
			return commands.RunStats(args[0], filter, cmd.OutOrStdout())
		},
	})

	var format, output string
	exportCmd := &cobra.Command{
		Use:   "export <file.klog>",
		Short: "Export events to JSON lines or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.BuildFilter()
			if err != nil {
				return err
			}
			return commands.RunExport(args[0], format, output, filter, cmd.OutOrStdout())
		},
	}
	exportCmd.Flags().StringVar(&format, "format", "jsonl", "Output format (jsonl, csv)")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	root.AddCommand(exportCmd)

	var filterOut string
	filterCmd := &cobra.Command{
		Use:   "filter -o <out.klog> <file.klog>",
		Short: "Copy matching events into a new journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if filterOut == "" {
				return fmt.Errorf("output file (-o) required")
			}
			filter, err := opts.BuildFilter()
			if err != nil {
				return err
			}
			return commands.RunFilter(args[0], filterOut, filter, cmd.OutOrStdout())
		},
	}
	filterCmd.Flags().StringVarP(&filterOut, "output", "o", "", "Output journal (required)")
	root.AddCommand(filterCmd)

	return root
}
