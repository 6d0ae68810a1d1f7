package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
)

// Stats holds aggregate statistics about a journal.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[journal.Category]int
	Runs             map[string]*RunSummary
	Tags             map[whitelist.UID]*TagStats
	Windows          int
	Dispenses        int
	IntervalChanges  int
	IntervalRejected int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// RunSummary holds statistics for a single controller run.
type RunSummary struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Dispenses int
}

// TagStats holds per-tag decision counts.
type TagStats struct {
	Accepted   int
	AlreadyFed int
	Unknown    int
	LastFed    time.Time
}

// Collect reads matching events and aggregates them.
func Collect(path string, filter journal.Filter) (*Stats, error) {
	reader, err := journal.NewFilteredReader(path, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[journal.Category]int),
		Runs:             make(map[string]*RunSummary),
		Tags:             make(map[whitelist.UID]*TagStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event journal.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	run, ok := s.Runs[event.RunID]
	if !ok {
		run = &RunSummary{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Runs[event.RunID] = run
	}
	run.Events++
	if event.Timestamp.After(run.LastSeen) {
		run.LastSeen = event.Timestamp
	}

	switch {
	case event.Window != nil:
		s.Windows++
	case event.Tag != nil:
		tag := s.tag(event.Tag.UID)
		switch event.Tag.Decision {
		case journal.DecisionAccepted:
			tag.Accepted++
		case journal.DecisionAlreadyFed:
			tag.AlreadyFed++
		case journal.DecisionUnknown:
			tag.Unknown++
		}
	case event.Dispense != nil:
		s.Dispenses++
		run.Dispenses++
		tag := s.tag(event.Dispense.UID)
		if event.Timestamp.After(tag.LastFed) {
			tag.LastFed = event.Timestamp
		}
	case event.Interval != nil:
		if event.Interval.Rejected {
			s.IntervalRejected++
		} else {
			s.IntervalChanges++
		}
	case event.Error != nil:
		s.Errors++
	}
}

func (s *Stats) tag(uid whitelist.UID) *TagStats {
	t, ok := s.Tags[uid]
	if !ok {
		t = &TagStats{}
		s.Tags[uid] = t
	}
	return t
}

// RunStats analyzes the journal and prints statistics.
func RunStats(path string, filter journal.Filter, w io.Writer) error {
	stats, err := Collect(path, filter)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Feeder Journal Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for c := journal.CategoryWindow; c <= journal.CategoryError; c++ {
		if count := stats.EventsByCategory[c]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", c.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Windows:   %d\n", stats.Windows)
	fmt.Fprintf(w, "Dispenses: %d\n", stats.Dispenses)
	fmt.Fprintf(w, "Interval:  %d changes, %d rejected\n", stats.IntervalChanges, stats.IntervalRejected)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Tags: %d\n", len(stats.Tags))
	if len(stats.Tags) > 0 {
		uids := make([]whitelist.UID, 0, len(stats.Tags))
		for uid := range stats.Tags {
			uids = append(uids, uid)
		}
		sort.Slice(uids, func(i, j int) bool { return uids[i].String() < uids[j].String() })

		for _, uid := range uids {
			t := stats.Tags[uid]
			fmt.Fprintf(w, "  %s  accepted %d, already fed %d, unknown %d", uid, t.Accepted, t.AlreadyFed, t.Unknown)
			if !t.LastFed.IsZero() {
				fmt.Fprintf(w, ", last fed %s", t.LastFed.Format(time.RFC3339))
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Runs: %d\n", len(stats.Runs))
	if len(stats.Runs) > 0 {
		type runInfo struct {
			id    string
			stats *RunSummary
		}
		runs := make([]runInfo, 0, len(stats.Runs))
		for id, rs := range stats.Runs {
			runs = append(runs, runInfo{id, rs})
		}
		sort.Slice(runs, func(i, j int) bool {
			return runs[i].stats.FirstSeen.Before(runs[j].stats.FirstSeen)
		})

		for _, r := range runs {
			duration := r.stats.LastSeen.Sub(r.stats.FirstSeen).Round(time.Second)
			fmt.Fprintf(w, "  [%s] %d events, %d dispenses, duration %s\n",
				shortenRunID(r.id), r.stats.Events, r.stats.Dispenses, duration)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
