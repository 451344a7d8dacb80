package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JPM1118/pawshower/internal/source"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for pawshower.
type Config struct {
	AutoPlay      AutoPlayConfig     `yaml:"autoplay"`
	Sources       SourcesConfig      `yaml:"sources"`
	Notifications NotificationConfig `yaml:"notifications"`
	Log           LogConfig          `yaml:"log"`
	Metrics       MetricsConfig      `yaml:"metrics"`
}

// AutoPlayConfig controls the auto-play timer and its start policy.
type AutoPlayConfig struct {
	Interval     Duration `yaml:"interval"`
	BlockOnError bool     `yaml:"block_on_error"`
}

// SourcesConfig controls the image endpoints.
type SourcesConfig struct {
	DogEndpoint    string   `yaml:"dog_endpoint" env:"PAWSHOWER_DOG_ENDPOINT"`
	CatEndpoint    string   `yaml:"cat_endpoint" env:"PAWSHOWER_CAT_ENDPOINT"`
	RequestTimeout Duration `yaml:"request_timeout"`
}

// NotificationConfig controls how the user is notified of fetch failures.
type NotificationConfig struct {
	TerminalBell bool     `yaml:"terminal_bell"`
	BellDebounce Duration `yaml:"bell_debounce"`
	EventBuffer  int      `yaml:"event_buffer"`
}

// LogConfig controls structured logging. The TUI owns the terminal, so
// logs only go to a file.
type LogConfig struct {
	File  string `yaml:"file" env:"PAWSHOWER_LOG_FILE"`
	Level string `yaml:"level" env:"PAWSHOWER_LOG_LEVEL"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"PAWSHOWER_METRICS_ADDR"`
}

// Duration wraps time.Duration for YAML unmarshalling from strings like "1500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoPlay: AutoPlayConfig{
			Interval:     Duration{1500 * time.Millisecond},
			BlockOnError: true,
		},
		Sources: SourcesConfig{
			DogEndpoint:    source.DefaultDogEndpoint,
			CatEndpoint:    source.DefaultCatEndpoint,
			RequestTimeout: Duration{source.RequestTimeout},
		},
		Notifications: NotificationConfig{
			TerminalBell: false,
			BellDebounce: Duration{30 * time.Second},
			EventBuffer:  20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file and merges with defaults and environment.
// Missing file is not an error; defaults are used silently.
func Load() (Config, error) {
	return LoadFrom(configPath())
}

// LoadFrom reads config from a specific path, then applies environment
// overrides.
func LoadFrom(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Defaults(), fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Defaults(), fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	iv := c.AutoPlay.Interval.Duration
	if iv < 250*time.Millisecond || iv > time.Minute {
		return fmt.Errorf("autoplay.interval must be between 250ms and 1m, got %s", iv)
	}

	rt := c.Sources.RequestTimeout.Duration
	if rt < time.Second || rt > time.Minute {
		return fmt.Errorf("sources.request_timeout must be between 1s and 1m, got %s", rt)
	}

	if c.Sources.DogEndpoint == "" || c.Sources.CatEndpoint == "" {
		return fmt.Errorf("sources endpoints must not be empty")
	}

	if c.Notifications.EventBuffer < 1 {
		return fmt.Errorf("notifications.event_buffer must be positive, got %d", c.Notifications.EventBuffer)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", s)
	}
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	return configPath()
}

func configPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pawshower", "config.yml")
}
