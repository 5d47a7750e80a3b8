package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/balkashynov/breathe/internal/cue"
)

// Config holds all breathe configuration
type Config struct {
	// Where everything lives; other paths default to files inside it
	Home string `yaml:"home"`

	DatabasePath string `yaml:"database_path"`

	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
}

// AudioConfig configures the clip manifest and ducking
type AudioConfig struct {
	Manifest string `yaml:"manifest"` // clip manifest (YAML); empty uses built-in lengths

	BackgroundVolume float64 `yaml:"background_volume"`
	CueLevel         float64 `yaml:"cue_level"`
	StoryLevel       float64 `yaml:"story_level"`

	FallbackDelay  string `yaml:"fallback_delay"`
	RestorePadding string `yaml:"restore_padding"`
	StoryGrace     string `yaml:"story_grace"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultHome returns ~/.breathe
func DefaultHome() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".breathe"), nil
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig(home string) *Config {
	return &Config{
		Home:         home,
		DatabasePath: filepath.Join(home, "breathe.db"),
		Audio: AudioConfig{
			BackgroundVolume: 0.7,
			CueLevel:         0.3,
			StoryLevel:       0.2,
			FallbackDelay:    "2s",
			RestorePadding:   "100ms",
			StoryGrace:       "5s",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(home, "breathe.log"),
		},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(home, path string) (*Config, error) {
	cfg := DefaultConfig(home)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("BREATHE_DB"); path != "" {
		c.DatabasePath = path
	}
	if level := os.Getenv("BREATHE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks levels and durations
func (c *Config) Validate() error {
	for name, v := range map[string]float64{
		"background_volume": c.Audio.BackgroundVolume,
		"cue_level":         c.Audio.CueLevel,
		"story_level":       c.Audio.StoryLevel,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("audio.%s must be between 0 and 1, got %v", name, v)
		}
	}
	for name, s := range map[string]string{
		"fallback_delay":  c.Audio.FallbackDelay,
		"restore_padding": c.Audio.RestorePadding,
		"story_grace":     c.Audio.StoryGrace,
	} {
		if s == "" {
			continue
		}
		if _, err := time.ParseDuration(s); err != nil {
			return fmt.Errorf("audio.%s: %w", name, err)
		}
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	return nil
}

// CueConfig converts the audio section into dispatcher settings. Unset or
// unparsable durations keep the dispatcher defaults.
func (c *Config) CueConfig() cue.Config {
	cc := cue.DefaultConfig()
	if c.Audio.CueLevel > 0 {
		cc.CueLevel = c.Audio.CueLevel
	}
	if c.Audio.StoryLevel > 0 {
		cc.StoryLevel = c.Audio.StoryLevel
	}
	if d, err := time.ParseDuration(c.Audio.FallbackDelay); err == nil {
		cc.FallbackDelay = d
	}
	if d, err := time.ParseDuration(c.Audio.RestorePadding); err == nil {
		cc.RestorePadding = d
	}
	if d, err := time.ParseDuration(c.Audio.StoryGrace); err == nil {
		cc.StoryGrace = d
	}
	return cc
}
