package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
)

// FilterOptions holds the raw filter flags shared by all commands.
type FilterOptions struct {
	RunID     string
	Source    string
	Category  string
	UID       string
	TimeStart string
	TimeEnd   string
}

// BuildFilter parses the options into a journal filter.
func (o FilterOptions) BuildFilter() (journal.Filter, error) {
	filter := journal.Filter{RunID: o.RunID}

	if o.Source != "" {
		s, err := ParseSourceFlag(o.Source)
		if err != nil {
			return filter, err
		}
		filter.Source = &s
	}

	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}

	if o.UID != "" {
		uid, err := whitelist.ParseUID(o.UID)
		if err != nil {
			return filter, err
		}
		filter.UID = &uid
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	return filter, nil
}

// ParseCategoryFlag parses a category name.
func ParseCategoryFlag(s string) (journal.Category, error) {
	c, ok := journal.ParseCategory(s)
	if !ok {
		return 0, fmt.Errorf("unknown category: %s (valid: window, tag, dispense, interval, lifecycle, error)", s)
	}
	return c, nil
}

// ParseSourceFlag parses a source name.
func ParseSourceFlag(s string) (journal.Source, error) {
	switch strings.ToLower(s) {
	case "controller":
		return journal.SourceController, nil
	case "clock":
		return journal.SourceClock, nil
	case "dispenser":
		return journal.SourceDispenser, nil
	case "configurator":
		return journal.SourceConfigurator, nil
	default:
		return 0, fmt.Errorf("unknown source: %s (valid: controller, clock, dispenser, configurator)", s)
	}
}

// RunFilter writes the events of path that match filter to a new journal at
// output, replacing any existing file. output must not be the input journal.
func RunFilter(path, output string, filter journal.Filter, w io.Writer) error {
	if sameFile(path, output) {
		return fmt.Errorf("output %s is the input journal", output)
	}

	reader, err := journal.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output journal: %w", err)
	}
	defer f.Close()

	enc := journal.NewEncoder(f)
	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		if err := enc.Encode(event); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
		count++
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output journal: %w", err)
	}

	fmt.Fprintf(w, "Filtered %d events to %s\n", count, output)
	return nil
}

// sameFile reports whether a and b name the same file, following links.
func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	sa, err := os.Stat(a)
	if err != nil {
		return false
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(sa, sb)
}
