package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/journal"
)

// exportedEvent is the JSON form of an event, with names instead of codes.
type exportedEvent struct {
	Timestamp time.Time               `json:"timestamp"`
	RunID     string                  `json:"run_id"`
	Source    string                  `json:"source"`
	Category  string                  `json:"category"`
	Window    *exportedWindow    `json:"window,omitempty"`
	Tag       *exportedTag       `json:"tag,omitempty"`
	Dispense  *exportedDispense  `json:"dispense,omitempty"`
	Interval  *exportedInterval  `json:"interval,omitempty"`
	Lifecycle *exportedLifecycle `json:"lifecycle,omitempty"`
	Error     *exportedError     `json:"error,omitempty"`
}

type exportedWindow struct {
	IntervalMinutes int  `json:"interval_minutes"`
	WasFed          bool `json:"was_fed"`
}

type exportedTag struct {
	UID      string `json:"uid"`
	Decision string `json:"decision"`
	Slot     int    `json:"slot"`
}

type exportedDispense struct {
	UID          string  `json:"uid"`
	Steps        int     `json:"steps"`
	PeakPosition int     `json:"peak_position"`
	Seconds      float64 `json:"seconds"`
}

type exportedInterval struct {
	Button     string `json:"button"`
	OldMinutes int    `json:"old_minutes"`
	NewMinutes int    `json:"new_minutes"`
	Rejected   bool   `json:"rejected,omitempty"`
}

type exportedLifecycle struct {
	State  string `json:"state"`
	Detail string `json:"detail,omitempty"`
}

type exportedError struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

func toExported(e journal.Event) exportedEvent {
	out := exportedEvent{
		Timestamp: e.Timestamp.UTC(),
		RunID:     e.RunID,
		Source:    e.Source.String(),
		Category:  e.Category.String(),
	}
	if e.Window != nil {
		out.Window = &exportedWindow{IntervalMinutes: e.Window.IntervalMinutes, WasFed: e.Window.WasFed}
	}
	if e.Lifecycle != nil {
		out.Lifecycle = &exportedLifecycle{State: e.Lifecycle.State, Detail: e.Lifecycle.Detail}
	}
	if e.Error != nil {
		out.Error = &exportedError{Message: e.Error.Message, Context: e.Error.Context}
	}
	if e.Tag != nil {
		out.Tag = &exportedTag{UID: e.Tag.UID.String(), Decision: e.Tag.Decision.String(), Slot: e.Tag.Slot}
	}
	if e.Dispense != nil {
		out.Dispense = &exportedDispense{
			UID:          e.Dispense.UID.String(),
			Steps:        e.Dispense.Steps,
			PeakPosition: e.Dispense.PeakPosition,
			Seconds:      e.Dispense.Duration.Seconds(),
		}
	}
	if e.Interval != nil {
		out.Interval = &exportedInterval{
			Button:     e.Interval.Button.String(),
			OldMinutes: e.Interval.OldMinutes,
			NewMinutes: e.Interval.NewMinutes,
			Rejected:   e.Interval.Rejected,
		}
	}
	return out
}

// RunExport exports matching events to format (jsonl or csv). An empty output
// writes to w.
func RunExport(path, format, output string, filter journal.Filter, w io.Writer) error {
	reader, err := journal.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *journal.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toExported(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

func exportCSV(reader *journal.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "run_id", "source", "category", "uid", "decision", "interval_minutes"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var uid, decision, interval string
		switch {
		case event.Window != nil:
			interval = strconv.Itoa(event.Window.IntervalMinutes)
		case event.Tag != nil:
			uid = event.Tag.UID.String()
			decision = event.Tag.Decision.String()
		case event.Dispense != nil:
			uid = event.Dispense.UID.String()
			decision = "DISPENSED"
		case event.Interval != nil:
			interval = strconv.Itoa(event.Interval.NewMinutes)
			if event.Interval.Rejected {
				decision = "REJECTED"
			}
		}

		row := []string{
			event.Timestamp.UTC().Format(timestampLayout),
			event.RunID,
			event.Source.String(),
			event.Category.String(),
			uid,
			decision,
			interval,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return cw.Error()
}
