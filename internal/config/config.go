package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const appName = "wavplay"

// Defaults applied to keys that are missing or zero.
const (
	DefaultPlaylistDir = "./playlist"
	DefaultSampleRate  = 44100
	DefaultBufferMs    = 100
	DefaultSkipSeconds = 15
	DefaultLogLevel    = "info"
)

type Config struct {
	PlaylistDir string `koanf:"playlist_dir"` // directory scanned for .wav files
	SampleRate  int    `koanf:"sample_rate"`  // output device rate in Hz
	BufferMs    int    `koanf:"buffer_ms"`    // output device buffer length
	SkipSeconds int    `koanf:"skip_seconds"` // forward/rewind distance
	Shuffle     bool   `koanf:"shuffle"`      // start with a shuffled play order
	Prefetch    *bool  `koanf:"prefetch"`     // load the next song ahead (default: true)

	Notifications   bool  `koanf:"notifications"`    // desktop notification on song change
	MPRIS           *bool `koanf:"mpris"`            // media key control over D-Bus (default: true)
	RememberSession *bool `koanf:"remember_session"` // restore selection and shuffle (default: true)

	LogFile  string `koanf:"log_file"`
	LogLevel string `koanf:"log_level"` // zerolog level name (default: "info")
}

// Load reads the user config file and then ./config.toml, later files
// overriding earlier ones, and applies defaults.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom is Load with explicit config file paths. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.withDefaults()
	cfg.PlaylistDir = expandPath(cfg.PlaylistDir)
	cfg.LogFile = expandPath(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/wavplay/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

// DefaultLogFile returns the log path used when log_file is not set.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func (c *Config) withDefaults() {
	if c.PlaylistDir == "" {
		c.PlaylistDir = DefaultPlaylistDir
	}
	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.BufferMs == 0 {
		c.BufferMs = DefaultBufferMs
	}
	if c.SkipSeconds == 0 {
		c.SkipSeconds = DefaultSkipSeconds
	}
	if c.Prefetch == nil {
		enabled := true
		c.Prefetch = &enabled
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile()
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate rejects values the player cannot run with.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.BufferMs <= 0 {
		return fmt.Errorf("buffer_ms must be positive, got %d", c.BufferMs)
	}
	if c.SkipSeconds <= 0 {
		return fmt.Errorf("skip_seconds must be positive, got %d", c.SkipSeconds)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Buffer returns the output buffer length.
func (c *Config) Buffer() time.Duration {
	return time.Duration(c.BufferMs) * time.Millisecond
}

// Skip returns the forward/rewind distance.
func (c *Config) Skip() time.Duration {
	return time.Duration(c.SkipSeconds) * time.Second
}

// PrefetchEnabled reports whether the next song should be loaded ahead.
func (c *Config) PrefetchEnabled() bool {
	return c.Prefetch == nil || *c.Prefetch
}

// MPRISEnabled reports whether the MPRIS adapter should be started.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// SessionEnabled reports whether the selected song and shuffle mode are
// saved between runs.
func (c *Config) SessionEnabled() bool {
	return c.RememberSession == nil || *c.RememberSession
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
