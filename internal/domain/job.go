package domain

import "time"

// GenerationStatus enumerates ledger lifecycle states.
type GenerationStatus string

const (
	GenerationRunning   GenerationStatus = "RUNNING"
	GenerationSucceeded GenerationStatus = "SUCCEEDED"
	GenerationFailed    GenerationStatus = "FAILED"
)

// Generation is one recorded run of the job client.
type Generation struct {
	ID           string           `json:"id"`
	Prompt       string           `json:"prompt"`
	AspectRatio  AspectRatio      `json:"aspect_ratio"`
	Frames       int              `json:"frames"`
	Status       GenerationStatus `json:"status"`
	PromptID     string           `json:"prompt_id,omitempty"`
	Filename     string           `json:"filename,omitempty"`
	Path         string           `json:"path,omitempty"`
	Bytes        int64            `json:"bytes"`
	ErrorKind    string           `json:"error_kind,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// GenerationOutcome carries the fields filled in when a run succeeds.
type GenerationOutcome struct {
	PromptID string
	Filename string
	Path     string
	Bytes    int64
}
