// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package logger wraps log/slog with the application's file and stderr
// destinations.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 30
)

var (
	defaultLogger *slog.Logger
	level         = new(slog.LevelVar) // Info by default
	logFileHandle *lumberjack.Logger
)

// getLogFilePath determines the path for the application log file based on XDG spec.
func getLogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	return filepath.Join(stateDir, "birthday-manager", "app.log"), nil
}

// openLogFile returns a size-rotated writer for the log file. The directory
// is created up front so a permission problem is reported at startup.
func openLogFile() (*lumberjack.Logger, string, error) {
	logFilePath, err := getLogFilePath()
	if err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
		return nil, logFilePath, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}, logFilePath, nil
}

// InitLogger sets up the default logger. The TUI owns the terminal, so in
// TUI mode logs only go to the file; the CLI also writes them to stderr.
func InitLogger(isTUI bool) {
	var writers []io.Writer

	file, logFilePath, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up log file %s: %v. File logging disabled.\n", logFilePath, err)
	} else {
		writers = append(writers, file)
		logFileHandle = file
	}

	if !isTUI || len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	defaultLogger = slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level}))
	Debug("Logging configured.", "file", logFilePath, "tui", isTUI)
}

// Close releases the log file, if one was opened.
func Close() {
	if logFileHandle != nil {
		logFileHandle.Close()
		logFileHandle = nil
	}
}

// SetLevel changes the minimum level. Unknown names leave the level unchanged
// and return an error.
func SetLevel(name string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(name)))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	level.Set(l)
	return nil
}

// SetLogger allows replacing the default logger instance, mostly for tests.
func SetLogger(l *slog.Logger) {
	defaultLogger = l
}

// get returns the configured logger. Before InitLogger has run, warnings
// and errors still reach stderr.
func get() *slog.Logger {
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return defaultLogger
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}
