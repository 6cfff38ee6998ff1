package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevelFallsBackToInfo(t *testing.T) {
	cases := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"verbose":  zapcore.InfoLevel,
		"":         zapcore.InfoLevel,
	}
	for input, want := range cases {
		if got := toZapLevel(input); got != want {
			t.Fatalf("toZapLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gideon.log")

	log, err := New(Options{Level: InfoLevel, Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debugw("hidden_debug")
	log.Errorw("fetch_entry_failed", "date", "2024-03-01")
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "fetch_entry_failed") || !strings.Contains(out, "2024-03-01") {
		t.Fatalf("log output missing entry: %q", out)
	}
	if strings.Contains(out, "hidden_debug") {
		t.Fatalf("debug entry written at info level: %q", out)
	}
}
