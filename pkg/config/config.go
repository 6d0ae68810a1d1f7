package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kibble-feeder/kibble-go/pkg/feeder"
	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
	"github.com/kibble-feeder/kibble-go/pkg/window"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KIBBLE_"

// ErrInvalidConfig is returned when validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the daemon configuration.
type Config struct {
	IntervalMinutes int           `yaml:"interval_minutes"`
	ClockPoll       time.Duration `yaml:"clock_poll"`
	ReaderRetry     time.Duration `yaml:"reader_retry"`
	ReaderCycle     time.Duration `yaml:"reader_cycle"`
	ButtonCycle     time.Duration `yaml:"button_cycle"`

	Profile   feeder.Profile  `yaml:"profile"`
	Whitelist WhitelistConfig `yaml:"whitelist"`
	Journal   JournalConfig   `yaml:"journal"`

	LogLevel string `yaml:"log_level"`

	// MetricsAddr is the listen address for /metrics. Empty disables it.
	MetricsAddr string `yaml:"metrics_addr"`
}

// WhitelistConfig selects where tags come from. Image and Tags are exclusive.
type WhitelistConfig struct {
	// Image is the path of a whitelist store image.
	Image string `yaml:"image"`

	// Tags lists UIDs in hex, e.g. "AA:BB:CC:DD".
	Tags []string `yaml:"tags"`
}

// JournalConfig configures the event journal.
type JournalConfig struct {
	// Path of the journal file. Empty disables the file journal.
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		IntervalMinutes: window.DefaultInterval,
		ClockPoll:       feeder.DefaultClockPoll,
		ReaderRetry:     feeder.DefaultReaderRetry,
		ReaderCycle:     feeder.DefaultReaderCycle,
		ButtonCycle:     feeder.DefaultButtonCycle,
		Profile:         feeder.DefaultProfile(),
		LogLevel:        "info",
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. An empty path skips the file. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads variables from a .env file into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

// ApplyEnv applies KIBBLE_* overrides found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"INTERVAL_MINUTES", &c.IntervalMinutes},
		{"PROFILE_MAX_POSITION", &c.Profile.MaxPosition},
	}
	for _, f := range ints {
		if v, ok := get(f.key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, EnvPrefix, f.key, v)
			}
			*f.dst = n
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"CLOCK_POLL", &c.ClockPoll},
		{"READER_RETRY", &c.ReaderRetry},
		{"READER_CYCLE", &c.ReaderCycle},
		{"BUTTON_CYCLE", &c.ButtonCycle},
		{"PROFILE_STEP_DELAY", &c.Profile.StepDelay},
	}
	for _, f := range durations {
		if v, ok := get(f.key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidConfig, EnvPrefix, f.key, v, err)
			}
			*f.dst = d
		}
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"WHITELIST_IMAGE", &c.Whitelist.Image},
		{"JOURNAL_PATH", &c.Journal.Path},
		{"LOG_LEVEL", &c.LogLevel},
		{"METRICS_ADDR", &c.MetricsAddr},
	}
	for _, f := range strs {
		if v, ok := get(f.key); ok {
			*f.dst = v
		}
	}

	if v, ok := get("WHITELIST_TAGS"); ok {
		c.Whitelist.Tags = nil
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				c.Whitelist.Tags = append(c.Whitelist.Tags, tag)
			}
		}
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.FeederConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Whitelist.Image != "" && len(c.Whitelist.Tags) > 0 {
		return fmt.Errorf("%w: whitelist.image and whitelist.tags are exclusive", ErrInvalidConfig)
	}
	if _, err := c.Tags(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Tags parses the configured whitelist tags.
func (c *Config) Tags() ([]whitelist.UID, error) {
	uids, err := whitelist.ParseUIDs(c.Whitelist.Tags)
	if err != nil {
		return nil, err
	}
	if len(uids) > whitelist.MaxUsers {
		return nil, fmt.Errorf("%w: %d tags", whitelist.ErrTooManyTags, len(uids))
	}
	return uids, nil
}

// OpenWhitelistStore opens the configured whitelist store: the image file if
// one is set, otherwise an in-memory store holding the configured tags.
func (c *Config) OpenWhitelistStore() (whitelist.Store, error) {
	if c.Whitelist.Image != "" {
		store, err := whitelist.OpenFileStore(c.Whitelist.Image)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	uids, err := c.Tags()
	if err != nil {
		return nil, err
	}
	store, err := whitelist.NewMemoryStore(uids...)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// FeederConfig converts to controller configuration. Journal, logger and
// state are left for the caller.
func (c *Config) FeederConfig() feeder.Config {
	return feeder.Config{
		IntervalMinutes: c.IntervalMinutes,
		ClockPoll:       c.ClockPoll,
		ReaderRetry:     c.ReaderRetry,
		ReaderCycle:     c.ReaderCycle,
		ButtonCycle:     c.ButtonCycle,
		Profile:         c.Profile,
	}
}

// ParseLogLevel parses a zerolog level name. Empty means info.
func ParseLogLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
