package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"comfygen/internal/comfy"
	"comfygen/internal/domain"
	"comfygen/internal/domain/jsoncfg"
	"comfygen/internal/middleware"
)

// ledgerWriteTimeout bounds the terminal ledger update, which runs detached
// from the request so a disconnected client cannot leave a row RUNNING.
const ledgerWriteTimeout = 10 * time.Second

type videoGenerateResponse struct {
	ID       string `json:"id"`
	PromptID string `json:"prompt_id"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Bytes    int64  `json:"bytes"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Frames   int    `json:"frames"`
}

// VideosGenerate runs one generation synchronously and records it in the ledger.
func (a *App) VideosGenerate(w http.ResponseWriter, r *http.Request) {
	var req jsoncfg.GenerateJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Normalize()
	aspect, err := req.Validate()
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	ctx := r.Context()
	gen := &domain.Generation{
		ID:          uuid.NewString(),
		Prompt:      req.Prompt,
		AspectRatio: aspect,
		Frames:      req.Frames,
		Status:      domain.GenerationRunning,
	}
	if err := a.Generations.Create(ctx, gen); err != nil {
		a.Logger.Error().Err(err).Msg("videos: record generation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to record generation")
		return
	}
	logger := a.Logger.With().
		Str("generation_id", gen.ID).
		Str("request_id", middleware.RequestIDFromContext(ctx)).
		Logger()

	res, err := a.Generator.Generate(ctx, comfy.GenerateRequest{
		Prompt:      req.Prompt,
		AspectRatio: aspect,
		Frames:      req.Frames,
		OutputDir:   a.OutputDir,
	})
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ledgerWriteTimeout)
	defer cancel()
	if err != nil {
		kind := comfy.KindOf(err)
		if recErr := a.Generations.Fail(recordCtx, gen.ID, string(kind), err.Error()); recErr != nil {
			logger.Error().Err(recErr).Msg("videos: record failure failed")
		}
		code := string(kind)
		if code == "" {
			code = "internal"
		}
		a.json(w, statusForKind(kind), errorBody{ID: gen.ID, Error: errorDetail{Code: code, Message: err.Error()}})
		return
	}

	outcome := domain.GenerationOutcome{
		PromptID: res.PromptID,
		Filename: res.Artifact.Filename,
		Path:     res.Path,
		Bytes:    res.Bytes,
	}
	if err := a.Generations.Complete(recordCtx, gen.ID, outcome); err != nil {
		logger.Error().Err(err).Msg("videos: record completion failed")
	}
	logger.Info().Str("prompt_id", res.PromptID).Str("path", res.Path).Msg("videos: generated")
	a.json(w, http.StatusOK, videoGenerateResponse{
		ID:       gen.ID,
		PromptID: res.PromptID,
		Filename: res.Artifact.Filename,
		Path:     res.Path,
		Bytes:    res.Bytes,
		Width:    res.Resolution.Width,
		Height:   res.Resolution.Height,
		Frames:   res.Frames,
	})
}

// GenerationStatus returns a ledger row.
func (a *App) GenerationStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "id must be a uuid")
		return
	}
	gen, err := a.Generations.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "generation not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load generation")
		return
	}
	a.json(w, http.StatusOK, gen)
}

// AspectRatios lists the supported resolutions.
func (a *App) AspectRatios(w http.ResponseWriter, r *http.Request) {
	type item struct {
		Value  string `json:"value"`
		Name   string `json:"name"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	}
	items := make([]item, 0, len(domain.AspectRatios()))
	for _, aspect := range domain.AspectRatios() {
		res, _ := aspect.Resolution()
		items = append(items, item{Value: string(aspect), Name: aspect.Name(), Width: res.Width, Height: res.Height})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
