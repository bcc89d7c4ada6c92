package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// cliLogger logs to w, at debug level when debugging is on.
func (a *App) cliLogger(w io.Writer) *log.Logger {
	level := log.WarnLevel
	if a.Config.DebugMode {
		level = log.DebugLevel
	}
	return newLogger(w, level)
}

// uiLogger keeps log output off the screen while the interactive UI owns
// the terminal: debug logs go to the configured log file, everything else
// is discarded.
func (a *App) uiLogger() (*log.Logger, func(), error) {
	if !a.Config.DebugMode {
		return newLogger(io.Discard, log.InfoLevel), func() {}, nil
	}
	f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return newLogger(f, log.DebugLevel), func() { f.Close() }, nil
}
