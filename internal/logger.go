package internal

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var (
	logLevel = LogLevelInfo
	logger   = log.New(os.Stderr, "", log.LstdFlags)
	logFile  *os.File
)

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	logLevel = level
}

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		SetLogLevel(LogLevelDebug)
	} else {
		SetLogLevel(LogLevelInfo)
	}
}

// SetLogFile mirrors all log output to an append-only file in addition to
// stderr. Returns an error if the file cannot be opened.
func SetLogFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	CloseLogFile()
	logFile = f
	logger = log.New(io.MultiWriter(os.Stderr, f), "", log.LstdFlags)
	return nil
}

// CloseLogFile closes the log file mirror if one is open
func CloseLogFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	if logLevel >= LogLevelError {
		logger.Printf("[ERROR] "+format, args...)
	}
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	if logLevel >= LogLevelWarn {
		logger.Printf("[WARN] "+format, args...)
	}
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	if logLevel >= LogLevelInfo {
		logger.Printf("[INFO] "+format, args...)
	}
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	if logLevel >= LogLevelDebug {
		logger.Printf("[DEBUG] "+format, args...)
	}
}
