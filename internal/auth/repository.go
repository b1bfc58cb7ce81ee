package auth

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// CreateSession stores a new admin session
func (r *Repository) CreateSession(ctx context.Context, tokenID, username string, expiresAt time.Time) error {
	session := &AdminSession{
		TokenID:   tokenID,
		Username:  username,
		ExpiresAt: expiresAt,
	}

	_, err := r.db.NewInsert().Model(session).Exec(ctx)
	return err
}

// GetSession retrieves a live session by token ID. Expired rows are treated
// as absent even before cleanup removes them.
func (r *Repository) GetSession(ctx context.Context, tokenID string) (*AdminSession, error) {
	session := &AdminSession{}
	err := r.db.NewSelect().
		Model(session).
		Where("token_id = ?", tokenID).
		Where("expires_at > ?", time.Now()).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes a session (for logout)
func (r *Repository) DeleteSession(ctx context.Context, tokenID string) error {
	_, err := r.db.NewDelete().
		Model((*AdminSession)(nil)).
		Where("token_id = ?", tokenID).
		Exec(ctx)
	return err
}

// DeleteExpiredSessions removes all expired sessions (cleanup)
func (r *Repository) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.db.NewDelete().
		Model((*AdminSession)(nil)).
		Where("expires_at < ?", time.Now()).
		Exec(ctx)
	return err
}
