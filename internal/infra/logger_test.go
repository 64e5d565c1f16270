package infra

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewCLILoggerWritesJSONToNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCLILogger(&buf, false)
	logger.Debug().Msg("hidden")
	logger.Warn().Str("prompt_id", "p-1").Msg("slow poll")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["prompt_id"] != "p-1" || entry["message"] != "slow poll" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewCLILoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCLILogger(&buf, true)
	logger.Debug().Msg("visible")
	if !bytes.Contains(buf.Bytes(), []byte("visible")) {
		t.Fatalf("debug line missing: %q", buf.String())
	}
}

func TestServiceLoggerTagsEnvironment(t *testing.T) {
	var buf bytes.Buffer
	logger := newServiceLogger(&buf, "production")
	logger.Debug().Msg("hidden")
	logger.Info().Msg("listening")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["service"] != "comfygen-api" || entry["env"] != "production" || entry["message"] != "listening" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestServiceLoggerDevelopmentIsConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := newServiceLogger(&buf, "development")
	logger.Debug().Msg("visible")
	if !bytes.Contains(buf.Bytes(), []byte("visible")) {
		t.Fatalf("debug line missing: %q", buf.String())
	}
	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Fatalf("development output should use the console writer: %q", buf.String())
	}
}
