package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/HenrikHof/Portfolio/internal/auth"
	"github.com/HenrikHof/Portfolio/internal/config"
	"github.com/HenrikHof/Portfolio/internal/metrics"
	"github.com/HenrikHof/Portfolio/internal/testutil/testdb"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminSession_Shared(t *testing.T) {
	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t, (*auth.AdminSession)(nil))

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	adminCfg := config.AdminConfig{
		Username:     "admin@example.com",
		PasswordHash: string(passwordHash),
		SecretCode:   "9877",
	}
	sessCfg := config.SessionConfig{
		Secret:   "test-session-secret",
		TTLHours: 24,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	repo := auth.NewRepository(pgContainer.DB)
	service := auth.NewService(repo, adminCfg, sessCfg)
	handler := auth.NewHandler(service, logger, metrics.NewMock())

	router := chi.NewRouter()
	router.Route("/admin", func(r chi.Router) {
		handler.RegisterRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(service, logger))
			r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
				username, _ := auth.GetAdminUser(r.Context())
				w.Write([]byte(username))
			})
		})
	})

	login := func(t *testing.T, username, password, secretCode string) *httptest.ResponseRecorder {
		payload := map[string]string{
			"username":   username,
			"password":   password,
			"secretCode": secretCode,
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/admin/auth", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	sessionCookie := func(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
		t.Helper()
		for _, cookie := range w.Result().Cookies() {
			if cookie.Name == auth.SessionCookieName {
				return cookie
			}
		}
		t.Fatal("session cookie not set")
		return nil
	}

	t.Run("Login_Success", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "admin_sessions")

		w := login(t, "admin@example.com", "correct-password", "9877")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())

		cookie := sessionCookie(t, w)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.NotEmpty(t, cookie.Value)

		username, err := service.Validate(context.Background(), cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", username)
	})

	t.Run("Login_WrongPassword", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "admin_sessions")

		w := login(t, "admin@example.com", "wrong-password", "9877")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid credentials")
	})

	t.Run("Login_WrongUsername", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "admin_sessions")

		w := login(t, "other@example.com", "correct-password", "9877")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Login_WrongSecretCode", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "admin_sessions")

		w := login(t, "admin@example.com", "correct-password", "0000")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Login_MissingFields", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "admin_sessions")

		w := login(t, "admin@example.com", "", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Middleware_ValidSession", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "admin_sessions")

		loginW := login(t, "admin@example.com", "correct-password", "9877")
		cookie := sessionCookie(t, loginW)

		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin@example.com", w.Body.String())
	})

	t.Run("Middleware_NoCookie", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "admin_sessions")

		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Middleware_GarbageToken", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "admin_sessions")

		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Logout_RevokesSession", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "admin_sessions")

		loginW := login(t, "admin@example.com", "correct-password", "9877")
		cookie := sessionCookie(t, loginW)

		logoutReq := httptest.NewRequest(http.MethodDelete, "/admin/auth", nil)
		logoutReq.AddCookie(cookie)
		logoutW := httptest.NewRecorder()
		router.ServeHTTP(logoutW, logoutReq)

		assert.Equal(t, http.StatusOK, logoutW.Code)

		// The cookie is expired client-side
		cleared := sessionCookie(t, logoutW)
		assert.Less(t, cleared.MaxAge, 0)

		// And the token is dead server-side even though the JWT is intact
		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "session must be invalid after logout")
	})

	t.Run("ExpiredSession_Rejected", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "admin_sessions")

		loginW := login(t, "admin@example.com", "correct-password", "9877")
		cookie := sessionCookie(t, loginW)

		// Age the server-side row past its TTL
		ctx := context.Background()
		_, err := pgContainer.DB.NewUpdate().
			Model((*auth.AdminSession)(nil)).
			Set("expires_at = ?", time.Now().Add(-time.Hour)).
			Where("1 = 1").
			Exec(ctx)
		require.NoError(t, err)

		_, err = service.Validate(ctx, cookie.Value)
		assert.ErrorIs(t, err, auth.ErrInvalidSession)
	})
}
