package health

import (
	"net/http"

	"github.com/HenrikHof/Portfolio/internal/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

type Handler struct {
	db *bun.DB
}

func NewHandler(db *bun.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready additionally checks database connectivity
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			httputil.RespondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "database unreachable"})
			return
		}
	}
	httputil.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}
