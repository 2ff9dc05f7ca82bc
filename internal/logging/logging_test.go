package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_NoFile(t *testing.T) {
	logger, err := New(Options{Level: "info"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without file should be a no-op")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quantitest.log")

	logger, err := New(Options{Level: "warn", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ForSession(logger, "abc").Warn("step changed", zap.Int("to", 3))
	logger.Info("filtered out")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"session":"abc"`) {
		t.Errorf("log missing session field: %s", out)
	}
	if strings.Contains(out, "filtered out") {
		t.Errorf("info entry should be filtered at warn level: %s", out)
	}
}

func TestNew_Verbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.log")
	logger, err := New(Options{Level: "error", File: path, Verbose: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose should enable debug")
	}
}
