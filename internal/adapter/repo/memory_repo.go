package repo

import (
	"context"
	"sync"
	"time"

	"comfygen/internal/domain"
)

// MemoryGenerationRepository keeps the ledger in process memory. It is used
// when no DATABASE_URL is configured and in tests.
type MemoryGenerationRepository struct {
	mu   sync.RWMutex
	rows map[string]domain.Generation
	now  func() time.Time
}

// NewMemoryGenerationRepository returns an empty in-memory ledger.
func NewMemoryGenerationRepository() *MemoryGenerationRepository {
	return &MemoryGenerationRepository{
		rows: make(map[string]domain.Generation),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryGenerationRepository) Create(_ context.Context, gen *domain.Generation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen.CreatedAt.IsZero() {
		gen.CreatedAt = r.now()
	}
	gen.UpdatedAt = gen.CreatedAt
	r.rows[gen.ID] = *gen
	return nil
}

func (r *MemoryGenerationRepository) Complete(_ context.Context, id string, outcome domain.GenerationOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	gen, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	gen.Status = domain.GenerationSucceeded
	gen.PromptID = outcome.PromptID
	gen.Filename = outcome.Filename
	gen.Path = outcome.Path
	gen.Bytes = outcome.Bytes
	gen.UpdatedAt = r.now()
	r.rows[id] = gen
	return nil
}

func (r *MemoryGenerationRepository) Fail(_ context.Context, id, kind, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	gen, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	gen.Status = domain.GenerationFailed
	gen.ErrorKind = kind
	gen.ErrorMessage = message
	gen.UpdatedAt = r.now()
	r.rows[id] = gen
	return nil
}

func (r *MemoryGenerationRepository) Get(_ context.Context, id string) (*domain.Generation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &gen, nil
}

var _ domain.GenerationRepository = (*MemoryGenerationRepository)(nil)
