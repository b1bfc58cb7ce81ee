package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/HenrikHof/Portfolio/internal/httputil"
	"github.com/HenrikHof/Portfolio/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service   *Service
	logger    *slog.Logger
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewHandler(service *Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:   service,
		logger:    logger,
		validator: validator.New(),
		metrics:   metrics,
	}
}

// RegisterRoutes mounts the session endpoints; the caller nests them under
// /admin.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/auth", h.Login)
	router.Delete("/auth", h.Logout)
}

// Login authenticates the admin and sets the session cookie
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode login request", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "username, password and secretCode are required")
		return
	}

	token, expiresAt, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.logger.WarnContext(r.Context(), "admin login rejected")
			httputil.RespondWithError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.ErrorContext(r.Context(), "admin login failed", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "login failed")
		return
	}

	SetSessionCookie(w, token, expiresAt)

	h.metrics.RecordAdminLogin(r.Context())
	h.logger.InfoContext(r.Context(), "admin logged in")

	httputil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout revokes the current session and clears the cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to revoke session", "error", err)
			httputil.RespondWithError(w, http.StatusInternalServerError, "logout failed")
			return
		}
	}

	ClearSessionCookie(w)

	h.logger.InfoContext(r.Context(), "admin logged out")

	httputil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
