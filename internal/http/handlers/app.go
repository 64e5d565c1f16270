package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"comfygen/internal/comfy"
	"comfygen/internal/domain"
	"comfygen/internal/infra"
)

// Generator is the part of the job client the handlers depend on.
type Generator interface {
	Generate(ctx context.Context, req comfy.GenerateRequest) (*comfy.Result, error)
	Ping(ctx context.Context) error
}

// App carries handler dependencies.
type App struct {
	Generator   Generator
	Generations domain.GenerationRepository
	OutputDir   string
	Logger      infra.Logger
}

func NewApp(gen Generator, generations domain.GenerationRepository, outputDir string, logger infra.Logger) *App {
	return &App{Generator: gen, Generations: generations, OutputDir: outputDir, Logger: logger}
}

type errorBody struct {
	ID    string      `json:"id,omitempty"`
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}

// statusForKind maps job client failure kinds to HTTP statuses.
func statusForKind(kind comfy.Kind) int {
	switch kind {
	case comfy.KindInvalidInput:
		return http.StatusBadRequest
	case comfy.KindSubmission, comfy.KindArtifactFetch, comfy.KindJobFailed, comfy.KindOutputNotFound:
		return http.StatusBadGateway
	case comfy.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
