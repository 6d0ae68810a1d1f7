package feeder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/hw"
	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
	"github.com/rs/zerolog"
)

// Outcome is the result of one dispenser poll.
type Outcome uint8

const (
	// OutcomeNoTag means no tag was present or its serial could not be read.
	OutcomeNoTag Outcome = iota
	// OutcomeDispensed means a whitelisted tag was fed.
	OutcomeDispensed
	// OutcomeAlreadyFed means a whitelisted tag arrived after this window's feeding.
	OutcomeAlreadyFed
	// OutcomeUnknown means the tag is not whitelisted.
	OutcomeUnknown
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoTag:
		return "NO_TAG"
	case OutcomeDispensed:
		return "DISPENSED"
	case OutcomeAlreadyFed:
		return "ALREADY_FED"
	case OutcomeUnknown:
		return "UNKNOWN_TAG"
	default:
		return "UNKNOWN"
	}
}

// Display messages.
const (
	msgGranted    = "Access granted"
	msgDenied     = "Access denied"
	msgAlreadyFed = "Already fed"
)

// Dispenser checks tags against the whitelist and dispenses food.
type Dispenser struct {
	*env
	reader    hw.TagReader
	actuator  hw.Actuator
	whitelist *whitelist.Whitelist
	profile   Profile
	pause     func(time.Duration)
	retry     time.Duration
	cycle     time.Duration
	logger    zerolog.Logger
}

// Step polls the reader once and handles a tag if one was read.
func (d *Dispenser) Step() Outcome {
	if !d.reader.TagPresent() {
		return OutcomeNoTag
	}
	uid, ok := d.reader.ReadSerial()
	if !ok {
		d.stats.readMisses.Add(1)
		return OutcomeNoTag
	}
	d.stats.tagsRead.Add(1)

	d.display.Print("Card UID: " + formatUID(uid))

	slot, known := d.whitelist.Lookup(uid)
	if !known {
		d.stats.unknown.Add(1)
		d.display.Print(msgDenied)
		d.logger.Info().Str("uid", uid.String()).Msg("Unknown tag")
		d.recordTag(uid, journal.DecisionUnknown, slot)
		return OutcomeUnknown
	}

	if d.state.AlreadyFed() {
		d.stats.alreadyFed.Add(1)
		d.display.Print(msgAlreadyFed)
		d.logger.Info().Str("uid", uid.String()).Int("slot", slot).Msg("Tag recognized, window already used")
		d.recordTag(uid, journal.DecisionAlreadyFed, slot)
		return OutcomeAlreadyFed
	}

	d.display.Print(msgGranted)
	d.logger.Info().
		Str("uid", uid.String()).
		Int("slot", slot).
		Dur("expected", d.profile.Duration()).
		Msg("Tag recognized, dispensing")
	d.recordTag(uid, journal.DecisionAccepted, slot)

	started := time.Now()
	steps := d.profile.Run(d.actuator, d.pause)
	elapsed := time.Since(started)

	fedAt := d.clock.Now()
	d.state.MarkFed(fedAt)
	d.stats.accepted.Add(1)
	d.stats.lastDispense.Store(fedAt.UnixNano())

	d.logger.Info().Int("steps", steps).Dur("took", elapsed).Msg("Dispense complete")
	d.record(journal.Event{
		Source:   journal.SourceDispenser,
		Category: journal.CategoryDispense,
		Dispense: &journal.DispenseEvent{
			UID:          uid,
			Steps:        steps,
			PeakPosition: d.profile.MaxPosition,
			Duration:     elapsed,
		},
	})
	return OutcomeDispensed
}

func (d *Dispenser) recordTag(uid whitelist.UID, decision journal.Decision, slot int) {
	d.record(journal.Event{
		Source:   journal.SourceDispenser,
		Category: journal.CategoryTag,
		Tag: &journal.TagEvent{
			UID:      uid,
			Decision: decision,
			Slot:     slot,
		},
	})
}

// Run polls until ctx is done. A poll without a tag is retried after the
// short retry delay; a processed tag ends the cycle with the full cycle
// delay followed by a display clear.
func (d *Dispenser) Run(ctx context.Context) error {
	for {
		if d.Step() == OutcomeNoTag {
			if err := d.sleep(ctx, d.retry); err != nil {
				return nil
			}
			continue
		}

		err := d.sleep(ctx, d.cycle)
		d.display.Clear()
		if err != nil {
			return nil
		}
	}
}

// formatUID renders a UID as space-separated hex, e.g. "AA BB CC DD".
func formatUID(uid whitelist.UID) string {
	var b strings.Builder
	for i, v := range uid {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", v)
	}
	return b.String()
}
