package submission

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/HenrikHof/Portfolio/internal/httputil"
	"github.com/HenrikHof/Portfolio/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service *Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/contact", h.Submit)
}

// ValidationDetail reports one failed field so the form can highlight it.
type ValidationDetail struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode contact request", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		// ValidationErrors carries every failed field, not just the first
		details := []ValidationDetail{}
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fe := range validationErrors {
				details = append(details, ValidationDetail{
					Field: strings.ToLower(fe.Field()),
					Rule:  fe.Tag(),
				})
			}
		}
		h.logger.WarnContext(r.Context(), "contact form validation failed", "fields", len(details))
		httputil.RespondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid form data",
			"details": details,
		})
		return
	}

	if _, err := h.service.Submit(r.Context(), req); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to save contact submission", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "failed to save submission")
		return
	}

	h.metrics.RecordSubmissionReceived(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, map[string]bool{"success": true})
}
