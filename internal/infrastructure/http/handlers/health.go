package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mserban/atelier/internal/infrastructure/http/respond"
)

// HealthHandler serves /health with a database reachability check.
type HealthHandler struct {
	pool    *pgxpool.Pool
	respond *respond.Responder
}

func NewHealthHandler(pool *pgxpool.Pool, rp *respond.Responder) *HealthHandler {
	return &HealthHandler{pool: pool, respond: rp}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{"database": "ok"}
	code := http.StatusOK
	status := "ok"
	if err := h.pool.Ping(ctx); err != nil {
		checks["database"] = "down"
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	h.respond.JSON(w, code, healthResponse{Status: status, Checks: checks})
}
