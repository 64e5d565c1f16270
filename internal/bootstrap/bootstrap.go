// Package bootstrap assembles the job client and the generation ledger from
// configuration for the command entry points.
package bootstrap

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"comfygen/internal/adapter/repo"
	"comfygen/internal/comfy"
	"comfygen/internal/domain"
	"comfygen/internal/infra"
	"comfygen/internal/workflow"
)

// NewComfyClient builds a job client from cfg.
func NewComfyClient(cfg *infra.Config, logger *infra.Logger) (*comfy.Client, error) {
	opts := comfy.Options{
		BaseURL:      cfg.ComfyHost,
		TemplatePath: cfg.WorkflowPath,
		PollInterval: cfg.PollInterval,
		Timeout:      cfg.JobTimeout,
		HTTPClient:   &http.Client{Timeout: cfg.RequestTimeout},
		Logger:       logger,
	}
	if cfg.FieldMapPath != "" {
		mapping, err := workflow.LoadMapping(cfg.FieldMapPath)
		if err != nil {
			return nil, err
		}
		opts.Mapping = &mapping
	}
	return comfy.NewClient(opts)
}

// Ledger is the generation repository plus its cleanup hook.
type Ledger struct {
	Repo  domain.GenerationRepository
	Store string
	pool  *pgxpool.Pool
}

// Close releases the database pool when one was opened.
func (l *Ledger) Close() {
	if l != nil && l.pool != nil {
		l.pool.Close()
	}
}

// NewLedger opens the PostgreSQL ledger when DATABASE_URL is set and falls
// back to the in-memory ledger otherwise.
func NewLedger(ctx context.Context, cfg *infra.Config, logger infra.Logger) (*Ledger, error) {
	if cfg.DatabaseURL == "" {
		logger.Info().Msg("ledger: DATABASE_URL not set, using in-memory ledger")
		return &Ledger{Repo: repo.NewMemoryGenerationRepository(), Store: "memory"}, nil
	}
	pool, err := infra.NewDBPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	pg := repo.NewGenerationRepository(pool)
	if err := pg.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info().Msg("ledger: using postgres")
	return &Ledger{Repo: pg, pool: pool, Store: "postgres"}, nil
}
