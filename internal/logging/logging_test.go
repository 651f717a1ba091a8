package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestScrub(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "anthropic key",
			in:   "using key sk-ant-api03-abcdef123456",
			want: "using key [REDACTED]",
		},
		{
			name: "openai style key",
			in:   "token sk-abcdefghijklmnopqrstuvwxyz failed",
			want: "token [REDACTED] failed",
		},
		{
			name: "bearer header",
			in:   "Authorization: Bearer abc123def456",
			want: "Authorization: [REDACTED]",
		},
		{
			name: "api_key assignment",
			in:   `api_key="supersecretvalue123"`,
			want: `[REDACTED]"`,
		},
		{
			name: "clean text untouched",
			in:   "running agent research attempt=1",
			want: "running agent research attempt=1",
		},
		{
			name: "short sk prefix kept",
			in:   "sk-short",
			want: "sk-short",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Scrub(tc.in); got != tc.want {
				t.Errorf("Scrub(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRedactHandler(t *testing.T) {
	t.Run("scrubs message and attrs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "info", "text")

		logger.Info("key sk-ant-api03-abc123 rejected", "token", "Bearer xyz987654321")

		out := buf.String()
		if strings.Contains(out, "sk-ant-") || strings.Contains(out, "xyz987654321") {
			t.Errorf("credential leaked: %s", out)
		}
		if !strings.Contains(out, "[REDACTED]") {
			t.Errorf("expected redaction marker: %s", out)
		}
	})

	t.Run("scrubs WithAttrs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "info", "text").With("api_key", "sk-abcdefghijklmnopqrstuvwxyz")

		logger.Info("started")

		out := buf.String()
		if strings.Contains(out, "sk-abcdefghijklmnop") {
			t.Errorf("credential leaked via With: %s", out)
		}
	})

	t.Run("scrubs group attrs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "info", "json")

		logger.Info("request", slog.Group("http", slog.String("auth", "Bearer abcdef123456")))

		out := buf.String()
		if strings.Contains(out, "abcdef123456") {
			t.Errorf("credential leaked in group: %s", out)
		}
	})
}

func TestNewFormats(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, "info", "json").Info("hello")
		if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
			t.Errorf("expected JSON output: %s", buf.String())
		}
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, "info", "text").Info("hello")
		if !strings.Contains(buf.String(), "msg=hello") {
			t.Errorf("expected key=value output: %s", buf.String())
		}
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "warn", "text")
		logger.Info("dropped")
		logger.Warn("kept")
		out := buf.String()
		if strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
			t.Errorf("unexpected level filtering: %s", out)
		}
	})
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
