package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"comfygen/internal/domain"
	"comfygen/internal/infra"
	"comfygen/internal/sqlinline"
)

// GenerationRepositoryPG implements domain.GenerationRepository on PostgreSQL.
type GenerationRepositoryPG struct {
	db infra.SQLExecutor
}

// NewGenerationRepository creates a ledger backed by PostgreSQL.
func NewGenerationRepository(db infra.SQLExecutor) *GenerationRepositoryPG {
	return &GenerationRepositoryPG{db: db}
}

// Migrate creates the ledger table when missing.
func (r *GenerationRepositoryPG) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, sqlinline.QCreateGenerationsTable); err != nil {
		return fmt.Errorf("repo: create generations table: %w", err)
	}
	return nil
}

// Create inserts a new ledger row.
func (r *GenerationRepositoryPG) Create(ctx context.Context, gen *domain.Generation) error {
	if gen.CreatedAt.IsZero() {
		gen.CreatedAt = time.Now().UTC()
	}
	gen.UpdatedAt = gen.CreatedAt
	_, err := r.db.Exec(ctx, sqlinline.QInsertGeneration,
		gen.ID,
		gen.Prompt,
		string(gen.AspectRatio),
		gen.Frames,
		string(gen.Status),
		gen.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("repo: insert generation: %w", err)
	}
	return nil
}

// Complete marks a row as succeeded.
func (r *GenerationRepositoryPG) Complete(ctx context.Context, id string, outcome domain.GenerationOutcome) error {
	tag, err := r.db.Exec(ctx, sqlinline.QCompleteGeneration, id, outcome.PromptID, outcome.Filename, outcome.Path, outcome.Bytes)
	if err != nil {
		return fmt.Errorf("repo: complete generation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Fail marks a row as failed with the error kind and message.
func (r *GenerationRepositoryPG) Fail(ctx context.Context, id, kind, message string) error {
	tag, err := r.db.Exec(ctx, sqlinline.QFailGeneration, id, kind, message)
	if err != nil {
		return fmt.Errorf("repo: fail generation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get fetches a row by id.
func (r *GenerationRepositoryPG) Get(ctx context.Context, id string) (*domain.Generation, error) {
	row := r.db.QueryRow(ctx, sqlinline.QSelectGeneration, id)
	var (
		gen    domain.Generation
		aspect string
		status string
	)
	if err := row.Scan(
		&gen.ID,
		&gen.Prompt,
		&aspect,
		&gen.Frames,
		&status,
		&gen.PromptID,
		&gen.Filename,
		&gen.Path,
		&gen.Bytes,
		&gen.ErrorKind,
		&gen.ErrorMessage,
		&gen.CreatedAt,
		&gen.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("repo: select generation: %w", err)
	}
	gen.AspectRatio = domain.AspectRatio(aspect)
	gen.Status = domain.GenerationStatus(status)
	return &gen, nil
}

var _ domain.GenerationRepository = (*GenerationRepositoryPG)(nil)
