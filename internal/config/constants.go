package config

import "time"

// Base application details
const AppName = "scribe"
const ConfigDirName = "scribe"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "scribe.log"

// Editing behavior
const DefaultHistoryCapacity = 100
const DefaultAutosaveDelay = 500 * time.Millisecond
const DefaultSaveOnCommand = false
