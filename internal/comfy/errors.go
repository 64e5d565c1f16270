package comfy

import (
	"errors"
	"fmt"
)

// Kind classifies why a generation failed so callers can branch on cause.
type Kind string

const (
	KindInvalidInput   Kind = "invalid_input"
	KindTemplateLoad   Kind = "template_load"
	KindTemplateSchema Kind = "template_schema_mismatch"
	KindSubmission     Kind = "submission"
	KindTimeout        Kind = "job_timeout"
	KindJobFailed      Kind = "job_failed"
	KindOutputNotFound Kind = "output_not_found"
	KindArtifactFetch  Kind = "artifact_fetch"
	KindArtifactWrite  Kind = "artifact_write"
)

// Error carries the failure kind, the step that failed and the cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrInvalidInput   = &Error{Kind: KindInvalidInput}
	ErrTemplateLoad   = &Error{Kind: KindTemplateLoad}
	ErrTemplateSchema = &Error{Kind: KindTemplateSchema}
	ErrSubmission     = &Error{Kind: KindSubmission}
	ErrTimeout        = &Error{Kind: KindTimeout}
	ErrJobFailed      = &Error{Kind: KindJobFailed}
	ErrOutputNotFound = &Error{Kind: KindOutputNotFound}
	ErrArtifactFetch  = &Error{Kind: KindArtifactFetch}
	ErrArtifactWrite  = &Error{Kind: KindArtifactWrite}
)

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return "comfy: " + string(e.Kind)
	case e.Err == nil:
		return fmt.Sprintf("comfy: %s: %s", e.Op, e.Kind)
	default:
		return fmt.Sprintf("comfy: %s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches kind sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf extracts the failure kind, or "" when err is not a *Error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}
