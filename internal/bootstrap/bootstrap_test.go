package bootstrap

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"comfygen/internal/comfy"
	"comfygen/internal/infra"
)

func TestNewComfyClientAppliesConfig(t *testing.T) {
	cfg := &infra.Config{
		ComfyHost:      "http://gpu:8188",
		WorkflowPath:   "/wf.json",
		PollInterval:   50 * time.Millisecond,
		JobTimeout:     time.Minute,
		RequestTimeout: time.Second,
	}
	logger := zerolog.New(io.Discard)
	client, err := NewComfyClient(cfg, &logger)
	if err != nil {
		t.Fatalf("NewComfyClient: %v", err)
	}
	if client.BaseURL() != "http://gpu:8188" {
		t.Fatalf("base url = %q", client.BaseURL())
	}
	if client.PollInterval() != comfy.MinPollInterval {
		t.Fatalf("poll interval = %s, want floor", client.PollInterval())
	}
	if client.Timeout() != time.Minute {
		t.Fatalf("timeout = %s", client.Timeout())
	}
}

func TestNewComfyClientRejectsBadMappingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write mapping: %v", err)
	}
	cfg := &infra.Config{ComfyHost: "http://gpu:8188", FieldMapPath: path}
	logger := zerolog.New(io.Discard)
	if _, err := NewComfyClient(cfg, &logger); err == nil {
		t.Fatalf("expected mapping decode error")
	}
}

func TestNewLedgerFallsBackToMemory(t *testing.T) {
	ledger, err := NewLedger(context.Background(), &infra.Config{}, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	defer ledger.Close()
	if ledger.Store != "memory" {
		t.Fatalf("store = %q, want memory", ledger.Store)
	}
}
