package shared

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures console logging to stderr.
func SetupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// SetupFileLogger configures logging to a file, for commands where the
// terminal belongs to the TUI. The returned closer flushes the file.
func SetupFileLogger(path, level string) (*log.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
	return logger, func() { _ = f.Close() }, nil
}
