package auth

import (
	"time"

	"github.com/uptrace/bun"
)

// AdminSession is the server-side record behind an issued session token.
// The token itself is a signed JWT; its jti must match a live row here,
// which is what makes logout an immediate revocation.
type AdminSession struct {
	bun.BaseModel `bun:"table:admin_sessions,alias:as"`

	ID        int       `bun:"id,pk,autoincrement"`
	TokenID   string    `bun:"token_id,unique,notnull"`
	Username  string    `bun:"username,notnull"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	SecretCode string `json:"secretCode" validate:"required"`
}
