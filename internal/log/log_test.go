package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	for _, l := range []string{"debug", "info", "warn", "error", "off"} {
		if !ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = false, want true", l)
		}
	}
	if ValidLevel("trace") {
		t.Error("ValidLevel(trace) = true, want false")
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, "info")
	l.Debug().Msg("hidden")
	l.Info().Str("path", "m/44'/60'/0'/0/0").Msg("derived")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "derived" || entry["path"] != "m/44'/60'/0'/0/0" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNewConsoleLogger_NoColorForBuffer(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, "debug")
	l.Info().Msg("hello")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("console output to a buffer should not be colored: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("console output missing message: %q", buf.String())
	}
}
