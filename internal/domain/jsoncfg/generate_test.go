package jsoncfg

import (
	"errors"
	"testing"

	"comfygen/internal/domain"
)

func TestGenerateJSONNormalizeDefaults(t *testing.T) {
	g := &GenerateJSON{Prompt: "  a lighthouse at dusk  "}
	g.Normalize()

	if g.Prompt != "a lighthouse at dusk" {
		t.Fatalf("Prompt = %q, want trimmed", g.Prompt)
	}
	if g.AspectRatio != DefaultAspectRatio {
		t.Fatalf("AspectRatio = %q, want %q", g.AspectRatio, DefaultAspectRatio)
	}
	if g.Frames != DefaultFrames {
		t.Fatalf("Frames = %d, want %d", g.Frames, DefaultFrames)
	}
}

func TestGenerateJSONNormalizeKeepsExplicitValues(t *testing.T) {
	g := &GenerateJSON{Prompt: "x", AspectRatio: "portrait", Frames: 48}
	g.Normalize()

	aspect, err := g.Validate()
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if aspect != domain.AspectPortrait {
		t.Fatalf("aspect = %q, want %q", aspect, domain.AspectPortrait)
	}
	if g.Frames != 48 {
		t.Fatalf("Frames = %d, want 48", g.Frames)
	}
}

func TestGenerateJSONValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		in   GenerateJSON
		want error
	}{
		{"empty prompt", GenerateJSON{AspectRatio: "1:1", Frames: 1}, domain.ErrInvalidPrompt},
		{"negative frames", GenerateJSON{Prompt: "x", AspectRatio: "1:1", Frames: -3}, domain.ErrInvalidFrames},
		{"too many frames", GenerateJSON{Prompt: "x", AspectRatio: "1:1", Frames: MaxFrames + 1}, domain.ErrInvalidFrames},
		{"unknown aspect", GenerateJSON{Prompt: "x", AspectRatio: "4:3", Frames: 1}, domain.ErrInvalidAspect},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.in.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("Validate error = %v, want %v", err, tc.want)
			}
		})
	}
}
