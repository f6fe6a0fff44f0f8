package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/elevate/internal/constants"
)

func TestInit(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, constants.LogDirName)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")

	// Warn level and above reach the file in normal mode
	data, err := os.ReadFile(filepath.Join(logDir, constants.LogFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected warning output in log file")
	}
}

func TestInitDebugMode(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")

	err := Init(Config{
		Debug:      true,
		ConfigDir:  configDir,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}

	Debug("Test debug message in debug mode")
	Info("Test info message in debug mode")
}

func TestSlog(t *testing.T) {
	Logger = nil
	if Slog() != nil {
		t.Error("Slog() should be nil before Init")
	}

	if err := Init(Config{ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	l := Slog()
	if l == nil {
		t.Fatal("Slog() returned nil after Init")
	}
	l.Warn("slog bridge", "key", "value")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestOrDefault(t *testing.T) {
	if got := orDefault(0, 10); got != 10 {
		t.Errorf("orDefault(0, 10) = %d, want 10", got)
	}
	if got := orDefault(-1, 10); got != 10 {
		t.Errorf("orDefault(-1, 10) = %d, want 10", got)
	}
	if got := orDefault(3, 10); got != 3 {
		t.Errorf("orDefault(3, 10) = %d, want 3", got)
	}
}
