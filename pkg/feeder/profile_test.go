package feeder

import (
	"testing"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/hw/sim"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()

	positions := p.Positions()
	if len(positions) != 92 {
		t.Fatalf("len(Positions()) = %d, want 92", len(positions))
	}
	for i := 0; i <= 45; i++ {
		if positions[i] != i {
			t.Fatalf("positions[%d] = %d, want %d", i, positions[i], i)
		}
		if positions[46+i] != 45-i {
			t.Fatalf("positions[%d] = %d, want %d", 46+i, positions[46+i], 45-i)
		}
	}

	if got := p.Duration(); got != 9200*time.Millisecond {
		t.Errorf("Duration() = %v, want 9.2s", got)
	}
}

func TestProfileRun(t *testing.T) {
	p := Profile{MaxPosition: 3, StepDelay: time.Millisecond}
	servo := sim.NewServo()

	var paused time.Duration
	steps := p.Run(servo, func(d time.Duration) { paused += d })

	if steps != 8 {
		t.Errorf("Run() = %d, want 8", steps)
	}
	want := []int{0, 1, 2, 3, 3, 2, 1, 0}
	got := servo.Moves()
	if len(got) != len(want) {
		t.Fatalf("Moves() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Moves() = %v, want %v", got, want)
		}
	}
	if servo.Position() != 0 {
		t.Errorf("Position() = %d, want 0", servo.Position())
	}
	if paused != 8*time.Millisecond {
		t.Errorf("total pause = %v, want 8ms", paused)
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{"default", DefaultProfile(), false},
		{"full range", Profile{MaxPosition: 180, StepDelay: time.Millisecond}, false},
		{"zero delay", Profile{MaxPosition: 10}, false},
		{"zero position", Profile{MaxPosition: 0, StepDelay: time.Millisecond}, true},
		{"beyond servo", Profile{MaxPosition: 181, StepDelay: time.Millisecond}, true},
		{"negative delay", Profile{MaxPosition: 10, StepDelay: -time.Millisecond}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
