package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(tt.level, "json")
			if err != nil {
				t.Fatalf("failed to build logger: %v", err)
			}
			if !l.Core().Enabled(tt.expected) {
				t.Errorf("expected level %v to be enabled", tt.expected)
			}
			if tt.expected > zapcore.DebugLevel && l.Core().Enabled(tt.expected-1) {
				t.Errorf("expected level %v to be disabled", tt.expected-1)
			}
		})
	}
}

func TestNewConsoleEncoding(t *testing.T) {
	if _, err := New("info", "console"); err != nil {
		t.Fatalf("failed to build console logger: %v", err)
	}
	if _, err := New("info", "xml"); err != nil {
		t.Fatalf("unknown encoding should fall back to json: %v", err)
	}
}
