package config

import (
	"flag"
	"fmt"
)

// Flags holds values parsed from command-line flags. Pointers distinguish
// unset flags from zero-value flags.
type Flags struct {
	ConfigFilePath *string
	LogLevel       *string
	LogFilePath    *string
	HistoryCap     *int
	AutosaveDelay  *string
	SaveOnCommand  *bool
}

// DefineFlags sets up the command-line flags.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file (use '-' for stderr) - overrides config file")
	f.HistoryCap = flag.Int("history", 0, "Undo history capacity - overrides config file")
	f.AutosaveDelay = flag.String("autosave", "", "Autosave idle window, e.g. 500ms - overrides config file")
	f.SaveOnCommand = flag.Bool("save-on-command", false, "Emit save immediately on formatting commands and cut/paste")
}

// ParseFlags parses the defined flags and returns the remaining non-flag
// arguments (the fragment file path).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates cfg with values from flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil {
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "history":
			if f.HistoryCap != nil && *f.HistoryCap > 0 {
				cfg.Editor.HistoryCapacity = *f.HistoryCap
			}
		case "autosave":
			if f.AutosaveDelay != nil && *f.AutosaveDelay != "" {
				cfg.Editor.AutosaveDelay = *f.AutosaveDelay
			}
		case "save-on-command":
			if f.SaveOnCommand != nil {
				cfg.Editor.SaveOnCommand = *f.SaveOnCommand
			}
		}
	})
}
