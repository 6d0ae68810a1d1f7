package main

import (
	"path/filepath"
	"testing"

	"github.com/kibble-feeder/kibble-go/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOptionsApply(t *testing.T) {
	tests := []struct {
		name         string
		opts         runOptions
		wantInterval int
		wantLevel    string
		wantErr      bool
	}{
		{name: "no flags", wantInterval: 5, wantLevel: "info"},
		{name: "interval", opts: runOptions{interval: 12, intervalSet: true}, wantInterval: 12, wantLevel: "info"},
		{name: "explicit zero interval", opts: runOptions{interval: 0, intervalSet: true}, wantErr: true},
		{name: "negative interval", opts: runOptions{interval: -3, intervalSet: true}, wantErr: true},
		{name: "unset interval ignored", opts: runOptions{interval: 0}, wantInterval: 5, wantLevel: "info"},
		{name: "log level", opts: runOptions{logLevel: "debug"}, wantInterval: 5, wantLevel: "debug"},
		{name: "bad log level", opts: runOptions{logLevel: "chatty"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := tt.opts.apply(cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantInterval, cfg.IntervalMinutes)
			assert.Equal(t, tt.wantLevel, cfg.LogLevel)
		})
	}
}

func TestRunRejectsZeroIntervalFlag(t *testing.T) {
	cmd := newRunCmd()
	cmd.SetArgs([]string{"--interval", "0", "--env-file", filepath.Join(t.TempDir(), "missing.env")})

	err := cmd.Execute()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
