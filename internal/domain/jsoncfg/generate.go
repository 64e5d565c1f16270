package jsoncfg

import (
	"fmt"
	"strings"

	"comfygen/internal/domain"
)

// GenerateJSON is the request contract accepted by the API and the CLI.
type GenerateJSON struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
	Frames      int    `json:"frames"`
}

const (
	// DefaultAspectRatio is used when the request omits the aspect ratio.
	DefaultAspectRatio = string(domain.AspectLandscape)
	// DefaultFrames matches the frame count the bundled workflow is tuned for.
	DefaultFrames = 24
	// MaxFrames caps a single request.
	MaxFrames = 1024
	// MaxPromptLength bounds the text injected into the workflow.
	MaxPromptLength = 2000
)

// Normalize fills defaults and trims the prompt.
func (g *GenerateJSON) Normalize() {
	if g == nil {
		return
	}
	g.Prompt = strings.TrimSpace(g.Prompt)
	g.AspectRatio = strings.TrimSpace(g.AspectRatio)
	if g.AspectRatio == "" {
		g.AspectRatio = DefaultAspectRatio
	}
	if g.Frames == 0 {
		g.Frames = DefaultFrames
	}
}

// Validate checks the contract after Normalize and returns the parsed aspect ratio.
func (g GenerateJSON) Validate() (domain.AspectRatio, error) {
	if g.Prompt == "" {
		return "", fmt.Errorf("%w: prompt is required", domain.ErrInvalidPrompt)
	}
	if len(g.Prompt) > MaxPromptLength {
		return "", fmt.Errorf("%w: prompt exceeds %d characters", domain.ErrInvalidPrompt, MaxPromptLength)
	}
	if g.Frames < 1 || g.Frames > MaxFrames {
		return "", fmt.Errorf("%w: got %d, max %d", domain.ErrInvalidFrames, g.Frames, MaxFrames)
	}
	return domain.ParseAspectRatio(g.AspectRatio)
}
