package auth

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/HenrikHof/Portfolio/internal/httputil"
)

// SessionCookieName is the cookie carrying the admin session token
const SessionCookieName = "admin_session"

type contextKey string

// AdminUserKey is the context key for the authenticated admin username
const AdminUserKey contextKey = "admin_user"

// Middleware validates the session cookie and adds the admin identity to the
// request context. Requests without a valid session are rejected before any
// handler runs.
func Middleware(service *Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				logger.WarnContext(r.Context(), "no session cookie found", "path", r.URL.Path)
				httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			username, err := service.Validate(r.Context(), cookie.Value)
			if err != nil {
				logger.WarnContext(r.Context(), "invalid session", "error", err)
				httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), AdminUserKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminUser extracts the authenticated admin username from context
func GetAdminUser(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(AdminUserKey).(string)
	return username, ok
}

// SetSessionCookie sets the session token in a secure HttpOnly cookie
func SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	env := os.Getenv("ENV")
	secure := env == "prod" || env == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HttpOnly: true,                    // XSS protection
		Secure:   secure,                  // HTTPS only in production
		SameSite: http.SameSiteStrictMode, // CSRF protection
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   os.Getenv("ENV") == "prod" || os.Getenv("ENV") == "production",
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1, // Delete cookie
	})
}
