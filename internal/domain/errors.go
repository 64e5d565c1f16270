package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidPrompt = errors.New("invalid prompt")
	ErrInvalidAspect = errors.New("invalid aspect ratio")
	ErrInvalidFrames = errors.New("frame count must be positive")
)
