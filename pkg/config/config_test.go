package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5, cfg.IntervalMinutes)
	assert.Equal(t, 100*time.Millisecond, cfg.ClockPoll)
	assert.Equal(t, 50*time.Millisecond, cfg.ReaderRetry)
	assert.Equal(t, time.Second, cfg.ReaderCycle)
	assert.Equal(t, time.Second, cfg.ButtonCycle)
	assert.Equal(t, 45, cfg.Profile.MaxPosition)
	assert.Equal(t, 100*time.Millisecond, cfg.Profile.StepDelay)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "kibble.yaml", `
interval_minutes: 15
clock_poll: 250ms
profile:
  max_position: 30
whitelist:
  tags:
    - "AA:BB:CC:DD"
    - "01 02 03 04"
journal:
  path: /tmp/feeder.klog
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.IntervalMinutes)
	assert.Equal(t, 250*time.Millisecond, cfg.ClockPoll)
	assert.Equal(t, 50*time.Millisecond, cfg.ReaderRetry, "unset keys keep defaults")
	assert.Equal(t, 30, cfg.Profile.MaxPosition)
	assert.Equal(t, 100*time.Millisecond, cfg.Profile.StepDelay)
	assert.Equal(t, "/tmp/feeder.klog", cfg.Journal.Path)

	uids, err := cfg.Tags()
	require.NoError(t, err)
	assert.Equal(t, []whitelist.UID{{0xAA, 0xBB, 0xCC, 0xDD}, {0x01, 0x02, 0x03, 0x04}}, uids)

	fc := cfg.FeederConfig()
	assert.Equal(t, 15, fc.IntervalMinutes)
	assert.Equal(t, 30, fc.Profile.MaxPosition)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero interval", "interval_minutes: 0\n"},
		{"negative poll", "clock_poll: -1s\n"},
		{"servo range", "profile:\n  max_position: 200\n"},
		{"bad tag", "whitelist:\n  tags: [\"ZZ\"]\n"},
		{"both sources", "whitelist:\n  image: x.bin\n  tags: [\"AA:BB:CC:DD\"]\n"},
		{"bad level", "log_level: loud\n"},
		{"not yaml", "interval_minutes: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "kibble.yaml", tt.content))
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestTooManyTags(t *testing.T) {
	cfg := Default()
	for i := 0; i <= whitelist.MaxUsers; i++ {
		cfg.Whitelist.Tags = append(cfg.Whitelist.Tags, whitelist.UID{byte(i), 1, 2, 3}.String())
	}

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = cfg.Tags()
	assert.ErrorIs(t, err, whitelist.ErrTooManyTags)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(mapLookup(map[string]string{
		"KIBBLE_INTERVAL_MINUTES":     "3",
		"KIBBLE_READER_CYCLE":         "2s",
		"KIBBLE_PROFILE_STEP_DELAY":   " 20ms ",
		"KIBBLE_WHITELIST_TAGS":       "AA:BB:CC:DD, 01:02:03:04,",
		"KIBBLE_METRICS_ADDR":         ":9120",
		"KIBBLE_PROFILE_MAX_POSITION": "60",
		"UNRELATED":                   "x",
	}))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.IntervalMinutes)
	assert.Equal(t, 2*time.Second, cfg.ReaderCycle)
	assert.Equal(t, 20*time.Millisecond, cfg.Profile.StepDelay)
	assert.Equal(t, 60, cfg.Profile.MaxPosition)
	assert.Equal(t, []string{"AA:BB:CC:DD", "01:02:03:04"}, cfg.Whitelist.Tags)
	assert.Equal(t, ":9120", cfg.MetricsAddr)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvErrors(t *testing.T) {
	for _, env := range []map[string]string{
		{"KIBBLE_INTERVAL_MINUTES": "five"},
		{"KIBBLE_CLOCK_POLL": "100"},
	} {
		err := Default().ApplyEnv(mapLookup(env))
		assert.ErrorIs(t, err, ErrInvalidConfig, "env %v", env)
	}
}

func TestLoadAppliesEnvironment(t *testing.T) {
	t.Setenv("KIBBLE_INTERVAL_MINUTES", "9")
	path := writeFile(t, "kibble.yaml", "interval_minutes: 4\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.IntervalMinutes)
}

func TestLoadEnvFile(t *testing.T) {
	loaded, err := LoadEnvFile(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.False(t, loaded)

	t.Setenv("KIBBLE_LOG_LEVEL", "warn")
	path := writeFile(t, ".env", "KIBBLE_LOG_LEVEL=debug\nKIBBLE_TEST_ENV_FILE=yes\n")
	t.Cleanup(func() { os.Unsetenv("KIBBLE_TEST_ENV_FILE") })

	loaded, err = LoadEnvFile(path)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "yes", os.Getenv("KIBBLE_TEST_ENV_FILE"))
	assert.Equal(t, "warn", os.Getenv("KIBBLE_LOG_LEVEL"), "existing variables win")
}

func TestOpenWhitelistStore(t *testing.T) {
	uid := whitelist.UID{0xAA, 0xBB, 0xCC, 0xDD}

	t.Run("tags", func(t *testing.T) {
		cfg := Default()
		cfg.Whitelist.Tags = []string{uid.String()}
		store, err := cfg.OpenWhitelistStore()
		require.NoError(t, err)
		assert.True(t, whitelist.Load(store).Contains(uid))
	})

	t.Run("image", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "whitelist.bin")
		require.NoError(t, whitelist.WriteImage(path, []whitelist.UID{uid}))

		cfg := Default()
		cfg.Whitelist.Image = path
		store, err := cfg.OpenWhitelistStore()
		require.NoError(t, err)
		assert.True(t, whitelist.Load(store).Contains(uid))
	})

	t.Run("missing image", func(t *testing.T) {
		cfg := Default()
		cfg.Whitelist.Image = filepath.Join(t.TempDir(), "absent.bin")
		_, err := cfg.OpenWhitelistStore()
		assert.Error(t, err)
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"trace", zerolog.TraceLevel, false},
		{"chatty", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
