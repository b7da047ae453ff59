// Package config loads the application configuration: defaults, then a TOML
// file, then command-line flag overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/scribe/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
}

// EditorConfig holds editing-engine settings.
type EditorConfig struct {
	// HistoryCapacity bounds the undo/redo stack.
	HistoryCapacity int `toml:"history_capacity"`

	// AutosaveDelay is the idle window before a save notification fires,
	// as a duration string ("500ms", "2s").
	AutosaveDelay string `toml:"autosave_delay"`

	// SaveOnCommand makes formatting commands and cut/paste emit a save
	// notification immediately.
	SaveOnCommand bool `toml:"save_on_command"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			HistoryCapacity: DefaultHistoryCapacity,
			AutosaveDelay:   DefaultAutosaveDelay.String(),
			SaveOnCommand:   DefaultSaveOnCommand,
		},
	}
}

// ParsedAutosaveDelay returns the configured delay, falling back to the
// default on a bad duration string.
func (e EditorConfig) ParsedAutosaveDelay() time.Duration {
	d, err := time.ParseDuration(e.AutosaveDelay)
	if err != nil || d <= 0 {
		return DefaultAutosaveDelay
	}
	return d
}

// loadFromFile loads configuration from a TOML file. A missing file is not an
// error.
func loadFromFile(filePath string) (*Config, error) {
	cfg := &Config{}
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("checking config file %q: %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("parsing config file %q: %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("config file %q: unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return cfg, nil
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.HistoryCapacity <= 0 {
		c.Editor.HistoryCapacity = defaults.Editor.HistoryCapacity
	}
	if _, err := time.ParseDuration(c.Editor.AutosaveDelay); err != nil {
		c.Editor.AutosaveDelay = defaults.Editor.AutosaveDelay
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig orchestrates loading defaults, file, flag overrides and
// validation. It runs once; later calls return the first result.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			if configDir, err := os.UserConfigDir(); err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				if fileCfg.Logger.LogLevel != "" {
					cfg.Logger = fileCfg.Logger
				}
				if fileCfg.Editor.HistoryCapacity > 0 {
					cfg.Editor.HistoryCapacity = fileCfg.Editor.HistoryCapacity
				}
				if fileCfg.Editor.AutosaveDelay != "" {
					cfg.Editor.AutosaveDelay = fileCfg.Editor.AutosaveDelay
				}
				cfg.Editor.SaveOnCommand = fileCfg.Editor.SaveOnCommand
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		cfg.validate()
		loadedConfig = cfg
	})
	return loadedConfig, loadErr
}

// Get returns the loaded configuration, or defaults when LoadConfig was never
// called.
func Get() *Config {
	if loadedConfig == nil {
		return NewDefaultConfig()
	}
	return loadedConfig
}
