// Package interactive provides the simulation console for kibble-feeder.
//
// The console drives simulated peripherals: it presents tags to the reader,
// presses the interval buttons and moves the clock, while the controller
// runs against them exactly as it would against real hardware.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/kibble-feeder/kibble-go/pkg/feeder"
	"github.com/kibble-feeder/kibble-go/pkg/hw/sim"
	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
)

// Console handles interactive mode for kibble-feeder.
type Console struct {
	hw   *Hardware
	ctrl *feeder.Controller
	rl   *readline.Instance
}

// New creates a console for hw. Call SetController before Run.
func New(hw *Hardware) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "feeder> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{hw: hw, rl: rl}, nil
}

// SetController sets the controller reported by the status command.
func (c *Console) SetController(ctrl *feeder.Controller) {
	c.ctrl = ctrl
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (c *Console) Stderr() io.Writer {
	return c.rl.Stderr()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	out := c.rl.Stdout()
	c.printHelp(out)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(out, "Exiting...")
			cancel()
			return
		}

		if !c.Execute(out, line) {
			fmt.Fprintln(out, "Exiting...")
			cancel()
			return
		}
	}
}

// Execute runs one command line. It returns false when the console should
// exit.
func (c *Console) Execute(out io.Writer, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp(out)

	case "tag", "t":
		c.cmdTag(out, args)

	case "misread":
		c.hw.Reader.PresentUnreadable()
		fmt.Fprintln(out, "Presented an unreadable tag")

	case "press", "release", "click":
		c.cmdButton(out, cmd, args)

	case "time":
		c.cmdTime(out, args)

	case "advance", "adv":
		c.cmdAdvance(out, args)

	case "interval":
		c.cmdInterval(out, args)

	case "status", "s":
		c.cmdStatus(out)

	case "servo":
		c.cmdServo(out)

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (c *Console) printHelp(out io.Writer) {
	fmt.Fprintln(out, `
Feeder Commands:
  Reader:
    tag <uid>            - Present a tag, e.g. tag AA:BB:CC:DD
    misread              - Present a tag whose serial cannot be read

  Buttons:
    press inc|dec        - Hold a button down
    release inc|dec      - Let a button go
    click inc|dec        - Press and release a button

  Clock:
    time HH:MM[:SS]      - Set the simulated time of day
    advance <duration>   - Move the clock forward, e.g. advance 5m

  Interval:
    interval <minutes>   - Set the interval directly, bypassing the buttons

  Status:
    status               - Show interval, fed flag and counters
    servo                - Show servo position and move count

  General:
    help                 - Show this help
    quit                 - Exit`)
}

func (c *Console) cmdTag(out io.Writer, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(out, "Usage: tag <uid>")
		fmt.Fprintln(out, "  Example: tag AA:BB:CC:DD")
		return
	}
	uid, err := whitelist.ParseUID(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(out, "Invalid UID: %v\n", err)
		return
	}
	c.hw.Reader.Present(uid)
	fmt.Fprintf(out, "Presented tag %s\n", uid)
}

func (c *Console) cmdButton(out io.Writer, action string, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(out, "Usage: %s inc|dec\n", action)
		return
	}

	var b *sim.Button
	switch strings.ToLower(args[0]) {
	case "inc", "+", "up":
		b = c.hw.Increment
	case "dec", "-", "down":
		b = c.hw.Decrement
	default:
		fmt.Fprintf(out, "Unknown button: %s (use inc or dec)\n", args[0])
		return
	}

	switch action {
	case "press":
		b.Press()
	case "release":
		b.Release()
	case "click":
		b.Click()
	}
	fmt.Fprintf(out, "Button %s: %s\n", args[0], action)
}

func (c *Console) cmdTime(out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(out, "Now: %s\n", c.hw.Clock.Now().Format("15:04:05"))
		return
	}

	var t time.Time
	var err error
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err = time.Parse(layout, args[0]); err == nil {
			break
		}
	}
	if err != nil {
		fmt.Fprintf(out, "Invalid time %q (use HH:MM or HH:MM:SS)\n", args[0])
		return
	}

	c.hw.Clock.SetTimeOfDay(t.Hour(), t.Minute(), t.Second())
	fmt.Fprintf(out, "Clock set to %s\n", c.hw.Clock.Now().Format("15:04:05"))
}

func (c *Console) cmdAdvance(out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "Usage: advance <duration>")
		return
	}
	d, err := time.ParseDuration(args[0])
	if err != nil || d < 0 {
		fmt.Fprintf(out, "Invalid duration %q\n", args[0])
		return
	}
	c.hw.Clock.Advance(d)
	fmt.Fprintf(out, "Clock set to %s\n", c.hw.Clock.Now().Format("15:04:05"))
}

func (c *Console) cmdInterval(out io.Writer, args []string) {
	if c.ctrl == nil {
		fmt.Fprintln(out, "Controller not attached")
		return
	}
	if len(args) != 1 {
		fmt.Fprintf(out, "Interval: %d min\n", c.ctrl.State().Interval())
		return
	}
	minutes, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(out, "Invalid interval %q\n", args[0])
		return
	}
	if err := c.ctrl.State().SetInterval(minutes); err != nil {
		fmt.Fprintf(out, "Rejected: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Interval set to %d min\n", minutes)
}

func (c *Console) cmdStatus(out io.Writer) {
	fmt.Fprintf(out, "Time:      %s\n", c.hw.Clock.Now().Format("15:04:05"))
	if c.ctrl == nil {
		fmt.Fprintln(out, "Controller not attached")
		return
	}

	snap := c.ctrl.State().Snapshot()
	fed := "no"
	if snap.AlreadyFed {
		fed = "yes (at " + snap.FedAt.Format("15:04:05") + ")"
	}
	stats := c.ctrl.Stats()

	fmt.Fprintf(out, "Interval:  %d min\n", snap.IntervalMinutes)
	fmt.Fprintf(out, "Fed:       %s\n", fed)
	fmt.Fprintf(out, "Whitelist: %d tags\n", c.ctrl.Whitelist().Len())
	fmt.Fprintf(out, "Windows:   %d\n", stats.Boundaries)
	fmt.Fprintf(out, "Tags:      %d read, %d misread\n", stats.TagsRead, stats.ReadMisses)
	fmt.Fprintf(out, "Dispenses: %d (already fed %d, unknown %d)\n", stats.Dispenses, stats.AlreadyFed, stats.UnknownTags)
	fmt.Fprintf(out, "Interval:  %d changes, %d rejected\n", stats.IntervalChanges, stats.IntervalRejected)
	if lines := c.hw.Display.Lines(); len(lines) > 0 {
		fmt.Fprintf(out, "Display:   %s\n", strings.Join(lines, " | "))
	}
}

func (c *Console) cmdServo(out io.Writer) {
	fmt.Fprintf(out, "Position: %d\n", c.hw.Servo.Position())
	fmt.Fprintf(out, "Moves:    %d\n", len(c.hw.Servo.Moves()))
}
