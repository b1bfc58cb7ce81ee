package submission

import (
	"time"

	"github.com/uptrace/bun"
)

// Submission is one stored contact-form message.
type Submission struct {
	bun.BaseModel `bun:"table:contact_submissions,alias:cs"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull" json:"email"`
	Message   string    `bun:"message,notnull,type:text" json:"message"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	Read      bool      `bun:"read,notnull,default:false" json:"read"`
}

// SubmitRequest is the public contact-form payload.
type SubmitRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Message string `json:"message" validate:"required,min=10"`
}

// ListOptions carries pagination and the unread filter for listing.
type ListOptions struct {
	Limit      int
	Offset     int
	UnreadOnly bool
}

// Event is published to NATS after a submission is stored.
type Event struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
