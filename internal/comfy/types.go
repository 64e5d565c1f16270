package comfy

import (
	"encoding/json"
	"time"

	"comfygen/internal/domain"
)

// GenerateRequest holds the per-call submission parameters.
type GenerateRequest struct {
	Prompt      string
	AspectRatio domain.AspectRatio
	// Frames defaults to DefaultFrames when zero.
	Frames int
	// OutputDir is optional; when empty the artifact is not downloaded.
	OutputDir string
}

// Artifact describes one file produced by the server.
type Artifact struct {
	Filename  string `json:"filename"`
	Subfolder string `json:"subfolder"`
	Type      string `json:"type"`
}

// Result is the outcome of a successful Generate call.
type Result struct {
	PromptID   string
	Artifact   Artifact
	Path       string
	Bytes      int64
	Resolution domain.Resolution
	Frames     int
	Polls      int
	Elapsed    time.Duration
}

// Outputs maps output node id to its named output lists.
type Outputs map[string]map[string]json.RawMessage

// HistoryStatus is the execution summary reported with a history entry.
type HistoryStatus struct {
	StatusStr string            `json:"status_str"`
	Completed bool              `json:"completed"`
	Messages  []json.RawMessage `json:"messages"`
}

// HistoryEntry is one job as reported by /api/history/{id}.
type HistoryEntry struct {
	Outputs Outputs       `json:"outputs"`
	Status  HistoryStatus `json:"status"`
}

type queueRequest struct {
	Prompt   map[string]any `json:"prompt"`
	ClientID string         `json:"client_id,omitempty"`
}

type queueResponse struct {
	PromptID   string         `json:"prompt_id"`
	Number     int            `json:"number"`
	NodeErrors map[string]any `json:"node_errors"`
}
