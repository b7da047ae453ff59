package main

import (
	stlog "log"
	"os"

	"github.com/bethropolis/scribe/internal/app"
	"github.com/bethropolis/scribe/internal/config"
	"github.com/bethropolis/scribe/internal/logger"
)

func main() {
	flags := &config.Flags{}
	args := flags.ParseFlags()

	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Logging goes to a file by default so it does not fight the screen.
	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		logPath = config.DefaultLogFileName
	}
	var logOut *os.File
	if logPath == "-" {
		logOut = os.Stderr
	} else {
		logOut, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			stlog.Fatalf("Failed to open log file %q: %v", logPath, err)
		}
		defer logOut.Close()
	}
	logger.Init(cfg.Logger.Level(), logOut)

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	logger.Infof("Starting scribe")
	session, err := app.NewApp(filePath, cfg)
	if err != nil {
		logger.Errorf("Error initializing session: %v", err)
		os.Exit(1)
	}

	if err := session.Run(); err != nil {
		logger.Errorf("Session exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("scribe finished")
}
