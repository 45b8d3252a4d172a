package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zhiidetopchubaeva/shop/pkg/web"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	pinger  Pinger
	timeout time.Duration
	logger  *slog.Logger
}

func NewHealthHandler(pinger Pinger, timeout time.Duration, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{pinger: pinger, timeout: timeout, logger: logger.With("component", "health")}
}

func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Live)
	r.Get("/readyz", h.Ready)
}

// Live always answers 200 while the process serves requests.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready answers 503 when the database cannot be pinged.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.WarnContext(r.Context(), "Readiness check failed", "error", err)
		web.RespondJSON(w, h.logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}
