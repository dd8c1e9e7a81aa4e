// Package logging builds the process logger for dotsetup.
//
// The logger writes to two sinks: a human readable, color coded console
// writer and an append-only JSON log file. It is constructed once by the
// entry point and handed to every component; nothing here mutates
// zerolog's global logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

// LogFileName is the default name of the log file inside the state directory
const LogFileName = "dotsetup.log"

// Options controls how New builds the logger
type Options struct {
	// Verbosity: 0 INFO, 1 DEBUG, 2+ TRACE on the console
	Verbosity int
	// FilePath overrides the log file location. Empty means the XDG default.
	FilePath string
	// DisableFile turns off the file sink entirely
	DisableFile bool
	// Console is the console sink, os.Stderr when nil
	Console io.Writer
	// NoColor disables ANSI colors on the console sink
	NoColor bool
}

// Logger owns the configured zerolog logger and the log file handle
type Logger struct {
	zerolog.Logger

	path string
	file *os.File
}

// New creates the logger described by opts. A log file that cannot be
// opened is reported through the returned logger and the console sink is
// used alone.
func New(opts Options) *Logger {
	consoleLevel := levelForVerbosity(opts.Verbosity)
	// The file always records at least INFO
	fileLevel := consoleLevel
	if fileLevel > zerolog.InfoLevel {
		fileLevel = zerolog.InfoLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}

	writers := []io.Writer{
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: consoleWriter},
			Level:  consoleLevel,
		},
	}

	l := &Logger{}
	var fileErr error
	if !opts.DisableFile {
		l.path = opts.FilePath
		if l.path == "" {
			l.path = DefaultLogFilePath()
		}
		l.file, fileErr = openLogFile(l.path)
		if fileErr == nil {
			writers = append(writers, &zerolog.FilteredLevelWriter{
				Writer: zerolog.LevelWriterAdapter{Writer: l.file},
				Level:  fileLevel,
			})
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(fileLevel).
		With().
		Timestamp()
	// Add caller information for trace level
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	l.Logger = ctx.Logger()

	if fileErr != nil {
		l.Warn().Err(fileErr).Str("path", l.path).Msg("Failed to create log file, logging to console only")
		l.path = ""
	}

	l.Debug().Int("verbosity", opts.Verbosity).Str("logFile", l.path).Msg("Logger initialized")
	return l
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Path returns the log file in use, empty when logging to the console only
func (l *Logger) Path() string {
	return l.path
}

// Component returns a child logger tagged with the component name
func (l *Logger) Component(name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// Close flushes and closes the log file
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// DefaultLogFilePath returns $XDG_STATE_HOME/dotsetup/dotsetup.log
func DefaultLogFilePath() string {
	// Pick up XDG_STATE_HOME changes made after process start
	xdg.Reload()
	return filepath.Join(xdg.StateHome, "dotsetup", LogFileName)
}

func levelForVerbosity(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.InfoLevel
	case 1:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// openLogFile creates the log file and its parent directories
func openLogFile(logPath string) (*os.File, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Append only, never truncated or rotated
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
