package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestSetup_ReturnsJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf)

	if l == nil {
		t.Fatal("expected non-nil logger")
	}

	l.Info("test message", slog.String("key", "value"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON log output, got error: %v\nraw output: %s", err, buf.String())
	}

	if entry["msg"] != "test message" {
		t.Errorf("msg = %q, want %q", entry["msg"], "test message")
	}
	if entry["key"] != "value" {
		t.Errorf("key = %q, want %q", entry["key"], "value")
	}
}

func TestSetup_IncludesTimeField(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf)

	l.Info("test")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}

	if _, ok := entry["time"]; !ok {
		t.Error("expected 'time' field in JSON log output")
	}
}

func TestSetup_IncludesLevelField(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf)

	l.Warn("warning test")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}

	if entry["level"] != "WARN" {
		t.Errorf("level = %q, want %q", entry["level"], "WARN")
	}
}

func TestSetup_MultipleAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf)

	l.Info("upstream fetch completed",
		slog.String("user_id", "u-123"),
		slog.String("provider", "tmdb"),
		slog.String("url", "https://api.themoviedb.org/3/trending/movie/day"),
		slog.Int("http_status", 200),
		slog.Int("results_count", 20),
	)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}

	if entry["user_id"] != "u-123" {
		t.Errorf("user_id = %q, want %q", entry["user_id"], "u-123")
	}
	if entry["provider"] != "tmdb" {
		t.Errorf("provider = %q, want %q", entry["provider"], "tmdb")
	}
	if entry["url"] != "https://api.themoviedb.org/3/trending/movie/day" {
		t.Errorf("url = %q, want %q", entry["url"], "https://api.themoviedb.org/3/trending/movie/day")
	}
	if entry["http_status"] != float64(200) {
		t.Errorf("http_status = %v, want %v", entry["http_status"], 200)
	}
	if entry["results_count"] != float64(20) {
		t.Errorf("results_count = %v, want %v", entry["results_count"], 20)
	}
}

func TestSetupWithLevel_SuppressesBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := SetupWithLevel(&buf, slog.LevelWarn)

	l.Info("should be suppressed")
	if buf.Len() != 0 {
		t.Errorf("info log should be suppressed at warn level, got: %s", buf.String())
	}

	l.Warn("should be emitted")
	if buf.Len() == 0 {
		t.Error("warn log should be emitted at warn level")
	}
}

func TestSetupDefault_LogLevelFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		wantDebug bool
	}{
		{"debug有効", "debug", true},
		{"大文字も許容", "DEBUG", true},
		{"info時はdebug抑制", "info", false},
		{"未設定時はdebug抑制", "", false},
		{"不正値はinfoにフォールバック", "verbose", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)

			var buf bytes.Buffer
			SetupDefault(&buf)

			slog.Default().Debug("debug probe")

			gotDebug := buf.Len() > 0
			if gotDebug != tt.wantDebug {
				t.Errorf("debug emitted = %v, want %v (LOG_LEVEL=%q)", gotDebug, tt.wantDebug, tt.logLevel)
			}
		})
	}
}

func TestSetupDefault_SetsGlobalLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	var buf bytes.Buffer
	SetupDefault(&buf)

	slog.Default().Info("global test", slog.String("test_key", "test_val"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v\nraw: %s", err, buf.String())
	}

	if entry["msg"] != "global test" {
		t.Errorf("msg = %q, want %q", entry["msg"], "global test")
	}
	if entry["test_key"] != "test_val" {
		t.Errorf("test_key = %q, want %q", entry["test_key"], "test_val")
	}
}
