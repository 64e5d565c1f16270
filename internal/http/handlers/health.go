package handlers

import (
	"context"
	"net/http"
	"time"
)

// Health reports liveness; ?deep=1 also pings the ComfyUI host.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("deep") == "" {
		a.json(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := a.Generator.Ping(ctx); err != nil {
		a.Logger.Warn().Err(err).Msg("health: comfy ping failed")
		a.json(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "comfy": err.Error()})
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok", "comfy": "ok"})
}
