// Package config loads ptlive settings from YAML or TOML files.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/achilleasa/ptlive/asset"
	"github.com/achilleasa/ptlive/log"
	"github.com/achilleasa/ptlive/renderer"
)

// Config holds the settings shared by all commands.
type Config struct {
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Address for the websocket stream.
	Listen string `yaml:"listen" toml:"listen"`

	// Path to the snapshot database used by record and replay.
	SnapshotPath string `yaml:"snapshot_path" toml:"snapshot_path"`

	Renderer renderer.Options `yaml:"renderer" toml:"renderer"`
}

// Get the default settings.
func Default() Config {
	return Config{
		LogLevel:     "notice",
		Listen:       "127.0.0.1:8080",
		SnapshotPath: "frames.db",
		Renderer:     renderer.DefaultOptions(),
	}
}

// Load a config file on top of the defaults. Keys missing from the file keep
// their default values; unknown keys are rejected.
func Load(path string) (Config, error) {
	format, err := asset.FormatOf(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode settings from r on top of the defaults and validate them.
func Decode(r io.Reader, format asset.Format) (Config, error) {
	cfg := Default()
	if err := asset.Decode(r, format, &cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Check the settings.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return c.Renderer.Validate()
}

// Get the parsed log level.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.Notice
	}
	return level
}
