package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
)

var (
	testUID    = whitelist.UID{0xAA, 0xBB, 0xCC, 0xDD}
	strayUID   = whitelist.UID{0x01, 0x02, 0x03, 0x04}
	testRunID  = "3f2a9c1e-5b7d-4e8f-9a0b-1c2d3e4f5a6b"
	otherRunID = "8d1e2f3a-4b5c-6d7e-8f9a-0b1c2d3e4f5a"
)

func at(minute, second int) time.Time {
	return time.Date(2026, 6, 1, 10, minute, second, 0, time.UTC)
}

func createTestJournal(t *testing.T, events []journal.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.klog")

	logger, err := journal.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

// feedingSession is one run: a window opens, the known tag is fed, shows up
// again, a stray tag is rejected and the interval is raised.
func feedingSession() []journal.Event {
	return []journal.Event{
		{Timestamp: at(0, 0), RunID: testRunID, Source: journal.SourceController, Category: journal.CategoryLifecycle,
			Lifecycle: &journal.LifecycleEvent{State: "started", Detail: "interval=5min whitelist=1"}},
		{Timestamp: at(5, 0), RunID: testRunID, Source: journal.SourceClock, Category: journal.CategoryWindow,
			Window: &journal.WindowEvent{IntervalMinutes: 5}},
		{Timestamp: at(6, 10), RunID: testRunID, Source: journal.SourceDispenser, Category: journal.CategoryTag,
			Tag: &journal.TagEvent{UID: testUID, Decision: journal.DecisionAccepted, Slot: 0}},
		{Timestamp: at(6, 19), RunID: testRunID, Source: journal.SourceDispenser, Category: journal.CategoryDispense,
			Dispense: &journal.DispenseEvent{UID: testUID, Steps: 92, PeakPosition: 45, Duration: 9200 * time.Millisecond}},
		{Timestamp: at(7, 0), RunID: testRunID, Source: journal.SourceDispenser, Category: journal.CategoryTag,
			Tag: &journal.TagEvent{UID: testUID, Decision: journal.DecisionAlreadyFed, Slot: 0}},
		{Timestamp: at(8, 0), RunID: testRunID, Source: journal.SourceDispenser, Category: journal.CategoryTag,
			Tag: &journal.TagEvent{UID: strayUID, Decision: journal.DecisionUnknown, Slot: -1}},
		{Timestamp: at(9, 0), RunID: testRunID, Source: journal.SourceConfigurator, Category: journal.CategoryInterval,
			Interval: &journal.IntervalEvent{Button: journal.ButtonIncrement, OldMinutes: 5, NewMinutes: 6}},
		{Timestamp: at(9, 30), RunID: otherRunID, Source: journal.SourceController, Category: journal.CategoryError,
			Error: &journal.ErrorEventData{Message: "open whitelist store: no such file", Context: "whitelist load"}},
	}
}
