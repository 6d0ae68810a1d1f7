// Package commands implements the kibble-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/journal"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// RunView prints matching events in human-readable form.
func RunView(path string, filter journal.Filter, w io.Writer) error {
	reader, err := journal.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes one event: a header line and an indented summary.
func formatEvent(w io.Writer, event journal.Event) {
	ts := event.Timestamp.UTC().Format(timestampLayout)
	fmt.Fprintf(w, "%s [run:%s] %-12s %s\n", ts, shortenRunID(event.RunID), event.Source, event.Category)

	switch {
	case event.Window != nil:
		state := "hungry"
		if event.Window.WasFed {
			state = "fed"
		}
		fmt.Fprintf(w, "  Window opened (interval %d min, previous window %s)\n", event.Window.IntervalMinutes, state)
	case event.Tag != nil:
		fmt.Fprintf(w, "  Tag %s: %s", event.Tag.UID, event.Tag.Decision)
		if event.Tag.Slot >= 0 {
			fmt.Fprintf(w, " (slot %d)", event.Tag.Slot)
		}
		fmt.Fprintln(w)
	case event.Dispense != nil:
		fmt.Fprintf(w, "  Dispensed for %s: %d steps to %d, took %s\n",
			event.Dispense.UID, event.Dispense.Steps, event.Dispense.PeakPosition,
			event.Dispense.Duration.Round(time.Millisecond))
	case event.Interval != nil:
		if event.Interval.Rejected {
			fmt.Fprintf(w, "  %s rejected at %d min\n", event.Interval.Button, event.Interval.OldMinutes)
		} else {
			fmt.Fprintf(w, "  %s: %d -> %d min\n", event.Interval.Button, event.Interval.OldMinutes, event.Interval.NewMinutes)
		}
	case event.Lifecycle != nil:
		fmt.Fprintf(w, "  %s", event.Lifecycle.State)
		if event.Lifecycle.Detail != "" {
			fmt.Fprintf(w, " (%s)", event.Lifecycle.Detail)
		}
		fmt.Fprintln(w)
	case event.Error != nil:
		fmt.Fprintf(w, "  Error: %s", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, " [%s]", event.Error.Context)
		}
		fmt.Fprintln(w)
	}
}

// shortenRunID returns the first 8 characters of the run ID.
func shortenRunID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
