package logger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{
			name: "default config",
			config: Config{
				Level:  "info",
				Output: "stderr",
				Format: "text",
			},
		},
		{
			name: "debug level json",
			config: Config{
				Level:  "debug",
				Output: "stderr",
				Format: "json",
			},
		},
		{
			name:   "empty config falls back to defaults",
			config: Config{},
		},
		{
			name: "unknown level falls back to info",
			config: Config{
				Level: "chatty",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.config)
			if log == nil {
				t.Fatal("New() returned nil")
			}
			// Must not panic.
			log.Info("hello", "key", "value")
		})
	}
}

func TestFileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "credwatch.log")

	log := New(Config{
		Level:  "info",
		Output: logPath,
		Format: "json",
	})

	log.Info("file change detected", "target", "/creds")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var record map[string]interface{}
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}

	if record["msg"] != "file change detected" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["target"] != "/creds" {
		t.Errorf("target = %v", record["target"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNoop(t *testing.T) {
	log := Noop()
	if log == nil {
		t.Fatal("Noop() returned nil")
	}
	log.Error("discarded", "key", "value")
}

func TestCaptureRecordsEntries(t *testing.T) {
	log := Capture()

	log.Debug("poll tick")
	log.Info("monitoring started", "target", "/creds", "interval", "3s")
	log.Error("callback failed", "error", "boom")

	entries := log.Entries()
	if len(entries) != 3 {
		t.Fatalf("Entries() len = %d, want 3", len(entries))
	}

	if entries[0].Level != "debug" || entries[0].Message != "poll tick" {
		t.Errorf("entry 0 = %+v", entries[0])
	}

	if entries[1].Fields["target"] != "/creds" {
		t.Errorf("entry 1 fields = %v", entries[1].Fields)
	}

	if !log.Contains("monitoring started") {
		t.Error("Contains(monitoring started) = false")
	}
	if log.Contains("never logged") {
		t.Error("Contains(never logged) = true")
	}
}

func TestCaptureWith(t *testing.T) {
	log := Capture()

	child := log.With("component", "monitor")
	child.Info("monitoring stopped")

	entries := log.Entries()
	if len(entries) != 1 {
		t.Fatalf("Entries() len = %d, want 1", len(entries))
	}
	if entries[0].Fields["component"] != "monitor" {
		t.Errorf("fields = %v", entries[0].Fields)
	}

	grandchild := child.With("target", "/creds")
	grandchild.Warn("slow tick")

	entries = log.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() len = %d, want 2", len(entries))
	}
	if entries[1].Fields["component"] != "monitor" || entries[1].Fields["target"] != "/creds" {
		t.Errorf("fields = %v", entries[1].Fields)
	}
}

func TestCaptureReset(t *testing.T) {
	log := Capture()
	log.Info("before reset")
	log.Reset()

	if len(log.Entries()) != 0 {
		t.Error("Entries() not empty after Reset")
	}
	if log.Contains("before reset") {
		t.Error("Contains found entry after Reset")
	}
}

func TestGetWriter(t *testing.T) {
	if w, err := getWriter("stdout"); err != nil || w != os.Stdout {
		t.Errorf("getWriter(stdout) = %v, %v", w, err)
	}
	if w, err := getWriter(""); err != nil || w != os.Stderr {
		t.Errorf("getWriter(empty) = %v, %v", w, err)
	}

	badPath := filepath.Join(t.TempDir(), "missing-dir", "x.log")
	if _, err := getWriter(badPath); err == nil {
		t.Error("getWriter() with unwritable path returned nil error")
	} else if !strings.Contains(err.Error(), "failed to open log file") {
		t.Errorf("unexpected error: %v", err)
	}
}
