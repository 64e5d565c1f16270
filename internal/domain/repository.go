package domain

import "context"

// GenerationRepository persists the generation ledger.
type GenerationRepository interface {
	Create(ctx context.Context, gen *Generation) error
	Complete(ctx context.Context, id string, outcome GenerationOutcome) error
	Fail(ctx context.Context, id, kind, message string) error
	Get(ctx context.Context, id string) (*Generation, error)
}
