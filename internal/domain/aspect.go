package domain

import (
	"fmt"
	"strings"
)

// AspectRatio enumerates the supported output framings.
type AspectRatio string

const (
	AspectLandscape AspectRatio = "16:9"
	AspectPortrait  AspectRatio = "9:16"
	AspectSquare    AspectRatio = "1:1"
)

// Resolution is a concrete width and height in pixels.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

var resolutions = map[AspectRatio]Resolution{
	AspectLandscape: {Width: 1920, Height: 1080},
	AspectPortrait:  {Width: 1080, Height: 1920},
	AspectSquare:    {Width: 1080, Height: 1080},
}

var aspectAliases = map[string]AspectRatio{
	"16:9":      AspectLandscape,
	"landscape": AspectLandscape,
	"9:16":      AspectPortrait,
	"portrait":  AspectPortrait,
	"1:1":       AspectSquare,
	"square":    AspectSquare,
}

// AspectRatios lists the supported values in a stable order.
func AspectRatios() []AspectRatio {
	return []AspectRatio{AspectLandscape, AspectPortrait, AspectSquare}
}

// ParseAspectRatio accepts either the ratio notation or its name.
func ParseAspectRatio(raw string) (AspectRatio, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if aspect, ok := aspectAliases[key]; ok {
		return aspect, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAspect, raw)
}

// Resolution resolves the aspect ratio through the fixed lookup table.
func (a AspectRatio) Resolution() (Resolution, error) {
	res, ok := resolutions[a]
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrInvalidAspect, string(a))
	}
	return res, nil
}

// Name returns the human readable orientation.
func (a AspectRatio) Name() string {
	switch a {
	case AspectLandscape:
		return "landscape"
	case AspectPortrait:
		return "portrait"
	case AspectSquare:
		return "square"
	default:
		return ""
	}
}
