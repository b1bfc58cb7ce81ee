package admin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/HenrikHof/Portfolio/internal/httputil"
	"github.com/HenrikHof/Portfolio/internal/metrics"
	"github.com/HenrikHof/Portfolio/internal/submission"

	"github.com/go-chi/chi/v5"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Handler struct {
	service *Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(service *Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// RegisterRoutes mounts the admin endpoints. The caller is expected to wrap
// the router in the session middleware.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/stats", h.GetStats)
	router.Get("/submissions", h.ListSubmissions)
	router.Patch("/submissions", h.SetRead)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch stats", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "failed to fetch stats")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	opts := parseListOptions(r)

	result, err := h.service.List(r.Context(), opts)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch submissions", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "failed to fetch submissions")
		return
	}

	h.metrics.RecordSubmissionsListViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, result)
}

// setReadRequest uses pointers so a missing or wrongly-typed field is
// distinguishable from a zero value.
type setReadRequest struct {
	ID   *int  `json:"id"`
	Read *bool `json:"read"`
}

func (h *Handler) SetRead(w http.ResponseWriter, r *http.Request) {
	var req setReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.ID == nil || req.Read == nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.service.SetRead(r.Context(), *req.ID, *req.Read); err != nil {
		if errors.Is(err, submission.ErrSubmissionNotFound) {
			httputil.RespondWithError(w, http.StatusNotFound, "submission not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to update submission", "error", err, "id", *req.ID)
		httputil.RespondWithError(w, http.StatusInternalServerError, "failed to update submission")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func parseListOptions(r *http.Request) submission.ListOptions {
	opts := submission.ListOptions{
		Limit: defaultListLimit,
	}

	query := r.URL.Query()
	if v := query.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			opts.Limit = min(limit, maxListLimit)
		}
	}
	if v := query.Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset > 0 {
			opts.Offset = offset
		}
	}
	opts.UnreadOnly = query.Get("unread") == "true"

	return opts
}
