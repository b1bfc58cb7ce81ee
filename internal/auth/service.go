package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/HenrikHof/Portfolio/internal/config"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

type Service struct {
	repo  *Repository
	admin config.AdminConfig
	sess  config.SessionConfig
}

func NewService(repo *Repository, admin config.AdminConfig, sess config.SessionConfig) *Service {
	return &Service{
		repo:  repo,
		admin: admin,
		sess:  sess,
	}
}

func (s *Service) TTL() time.Duration {
	return time.Duration(s.sess.TTLHours) * time.Hour
}

// Login checks the secret code, username and password and issues a session
// token. Every comparison is constant-time and every failure returns the
// same error, so a caller cannot learn which part was wrong.
func (s *Service) Login(ctx context.Context, req LoginRequest) (token string, expiresAt time.Time, err error) {
	codeOK := constantTimeEquals(req.SecretCode, s.admin.SecretCode)
	userOK := constantTimeEquals(req.Username, s.admin.Username)
	passOK := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(req.Password)) == nil

	if !codeOK || !userOK || !passOK {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, tokenID, expiresAt, err := GenerateSessionToken(s.sess.Secret, s.admin.Username, s.TTL())
	if err != nil {
		return "", time.Time{}, err
	}

	if err := s.repo.CreateSession(ctx, tokenID, s.admin.Username, expiresAt); err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Validate checks the token signature and expiry, then requires a live
// server-side session row. A logged-out token fails here even though the
// JWT itself is still well-formed.
func (s *Service) Validate(ctx context.Context, token string) (username string, err error) {
	claims, err := ParseSessionToken(s.sess.Secret, token)
	if err != nil {
		return "", ErrInvalidSession
	}

	session, err := s.repo.GetSession(ctx, claims.ID)
	if err != nil {
		return "", ErrInvalidSession
	}

	return session.Username, nil
}

// Logout revokes the session behind the token. An unparseable token is not
// an error: the cookie is cleared either way and there is nothing to revoke.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := ParseSessionToken(s.sess.Secret, token)
	if err != nil {
		return nil
	}
	return s.repo.DeleteSession(ctx, claims.ID)
}

// CleanupExpired removes expired session rows
func (s *Service) CleanupExpired(ctx context.Context) error {
	return s.repo.DeleteExpiredSessions(ctx)
}

// constantTimeEquals compares the digests so the comparison leaks neither
// content nor length.
func constantTimeEquals(a, b string) bool {
	ah := sha256.Sum256([]byte(a))
	bh := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ah[:], bh[:]) == 1
}
