package main

import (
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// cliLogger reports warnings on stderr, outside the alternate screen.
var cliLogger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "tetris",
})

// Rotation limits for --log-file.
const (
	logMaxSizeMB  = 5
	logMaxBackups = 3
)

// openGameLogger returns a debug logger writing to --log-file, or nil when
// the flag is unset. The returned close function is never nil.
func openGameLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return nil, func() {}, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, func() {}, err
	}
	f.Close()

	w := &lumberjack.Logger{
		Filename:   flagLogFile,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "tetris",
	})
	return logger, func() { w.Close() }, nil
}
