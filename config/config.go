// Package config loads parent configuration from TOML or YAML files.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hupe1980/tabmesh/codec"
	"github.com/hupe1980/tabmesh/core"
	"github.com/hupe1980/tabmesh/logging"
	"gopkg.in/yaml.v3"
)

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Config is the file representation of a parent's settings.
type Config struct {
	// Origin is the exact origin inbound messages must carry; empty accepts any.
	Origin string `toml:"origin" yaml:"origin"`
	// TargetOrigin restricts outbound delivery; empty means core.AnyOrigin.
	TargetOrigin string `toml:"target_origin" yaml:"target_origin"`
	// ParentName is the parent's window identity sent in handshakes.
	ParentName string `toml:"parent_name" yaml:"parent_name"`
	// Codec is "json" or "cbor".
	Codec            string `toml:"codec" yaml:"codec"`
	RemoveClosedTabs bool   `toml:"remove_closed_tabs" yaml:"remove_closed_tabs"`
	// HeartbeatInterval is a time.ParseDuration string.
	HeartbeatInterval string    `toml:"heartbeat_interval" yaml:"heartbeat_interval"`
	ValidatePayloads  bool      `toml:"validate_payloads" yaml:"validate_payloads"`
	Log               LogConfig `toml:"log" yaml:"log"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		TargetOrigin:      core.AnyOrigin,
		Codec:             "json",
		HeartbeatInterval: "500ms",
		Log:               LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads path, choosing the decoder by extension, on top of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	cfg, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in format ("toml", "yaml" or "yml") on top of Default
// and validates the result.
func Parse(data []byte, format string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(format) {
	case "toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every field can be turned into a runtime value.
func (c Config) Validate() error {
	if _, err := codec.ByName(c.Codec); err != nil {
		return err
	}
	if _, err := c.Interval(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if f := c.Log.Format; f != "" && f != "json" && f != "text" {
		return fmt.Errorf("unknown log format %q", f)
	}
	return nil
}

// Interval parses HeartbeatInterval. Empty means zero, which callers treat
// as their default.
func (c Config) Interval() (time.Duration, error) {
	if strings.TrimSpace(c.HeartbeatInterval) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.HeartbeatInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid heartbeat_interval: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid heartbeat_interval: negative duration %s", d)
	}
	return d, nil
}

// Logger builds a TabLogger writing to out.
func (c Config) Logger(out io.Writer) *logging.TabLogger {
	level, _ := logging.ParseLevel(c.Log.Level)
	return logging.NewLogger(&logging.LoggerConfig{Level: level, Format: c.Log.Format, Output: out})
}
