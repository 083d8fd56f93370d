package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetLogLevel(t *testing.T) {
	originalLevel := logLevel
	defer func() { logLevel = originalLevel }()

	SetLogLevel(LogLevelDebug)
	if logLevel != LogLevelDebug {
		t.Errorf("SetLogLevel() logLevel = %v, want LogLevelDebug", logLevel)
	}

	SetLogLevel(LogLevelError)
	if logLevel != LogLevelError {
		t.Errorf("SetLogLevel() logLevel = %v, want LogLevelError", logLevel)
	}
}

func TestSetVerbose(t *testing.T) {
	originalLevel := logLevel
	defer func() { logLevel = originalLevel }()

	SetVerbose(true)
	if logLevel != LogLevelDebug {
		t.Errorf("SetVerbose(true) logLevel = %v, want LogLevelDebug", logLevel)
	}

	SetVerbose(false)
	if logLevel != LogLevelInfo {
		t.Errorf("SetVerbose(false) logLevel = %v, want LogLevelInfo", logLevel)
	}
}

func TestLogFunctions(t *testing.T) {
	// These functions don't return errors, so we just test they don't panic
	LogError("test error message")
	LogWarn("test warning message")
	LogInfo("test info message")
	LogDebug("test debug message")
}

func TestSetLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	if err := SetLogFile(path); err != nil {
		t.Fatalf("SetLogFile() error = %v", err)
	}
	defer CloseLogFile()

	LogInfo("mirrored message")
	CloseLogFile()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "mirrored message") {
		t.Errorf("log file does not contain mirrored message: %q", string(data))
	}
}

func TestLogLevels(t *testing.T) {
	if LogLevelError >= LogLevelWarn {
		t.Error("LogLevelError should be less than LogLevelWarn")
	}
	if LogLevelWarn >= LogLevelInfo {
		t.Error("LogLevelWarn should be less than LogLevelInfo")
	}
	if LogLevelInfo >= LogLevelDebug {
		t.Error("LogLevelInfo should be less than LogLevelDebug")
	}
}
