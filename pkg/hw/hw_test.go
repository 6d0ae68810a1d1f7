package hw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestPressed(t *testing.T) {
	if !Pressed(LevelLow) {
		t.Error("Pressed(LevelLow) = false, want true")
	}
	if Pressed(LevelHigh) {
		t.Error("Pressed(LevelHigh) = true, want false")
	}
}

func TestLevelString(t *testing.T) {
	if LevelHigh.String() != "HIGH" || LevelLow.String() != "LOW" {
		t.Errorf("String() = %s/%s", LevelHigh, LevelLow)
	}
	if Level(9).String() != "UNKNOWN" {
		t.Errorf("Level(9).String() = %s", Level(9))
	}
}

func TestLogDisplay(t *testing.T) {
	var buf bytes.Buffer
	d := NewLogDisplay(zerolog.New(&buf))

	d.Print("Interval: 6 min")
	d.Clear()

	out := buf.String()
	if !strings.Contains(out, "Interval: 6 min") {
		t.Errorf("log output %q missing display text", out)
	}
	if !strings.Contains(out, `"component":"display"`) {
		t.Errorf("log output %q missing component field", out)
	}
}
