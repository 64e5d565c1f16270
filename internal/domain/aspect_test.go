package domain

import (
	"errors"
	"testing"
)

func TestAspectRatioResolutionTable(t *testing.T) {
	want := map[AspectRatio]Resolution{
		AspectLandscape: {Width: 1920, Height: 1080},
		AspectPortrait:  {Width: 1080, Height: 1920},
		AspectSquare:    {Width: 1080, Height: 1080},
	}
	for _, aspect := range AspectRatios() {
		for i := 0; i < 3; i++ {
			got, err := aspect.Resolution()
			if err != nil {
				t.Fatalf("%s: Resolution returned error: %v", aspect, err)
			}
			if got != want[aspect] {
				t.Fatalf("%s: Resolution = %+v, want %+v", aspect, got, want[aspect])
			}
		}
	}
	if len(AspectRatios()) != len(want) {
		t.Fatalf("AspectRatios len = %d, want %d", len(AspectRatios()), len(want))
	}
}

func TestParseAspectRatioAcceptsNamesAndRatios(t *testing.T) {
	cases := map[string]AspectRatio{
		"16:9":       AspectLandscape,
		" Landscape": AspectLandscape,
		"9:16":       AspectPortrait,
		"PORTRAIT":   AspectPortrait,
		"1:1":        AspectSquare,
		"square":     AspectSquare,
	}
	for in, want := range cases {
		got, err := ParseAspectRatio(in)
		if err != nil {
			t.Fatalf("ParseAspectRatio(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseAspectRatio(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseAspectRatioRejectsUnknown(t *testing.T) {
	if _, err := ParseAspectRatio("4:3"); !errors.Is(err, ErrInvalidAspect) {
		t.Fatalf("expected ErrInvalidAspect, got %v", err)
	}
	if _, err := AspectRatio("21:9").Resolution(); !errors.Is(err, ErrInvalidAspect) {
		t.Fatalf("expected ErrInvalidAspect from Resolution, got %v", err)
	}
}
