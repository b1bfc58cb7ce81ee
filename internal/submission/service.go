package submission

import (
	"context"
	"log/slog"
)

// Notifier publishes new-submission events (NATS in production).
type Notifier interface {
	Publish(value interface{}) error
}

type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates the intake service. notifier may be nil when no
// messaging backend is configured.
func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit stores a validated contact-form message. The notification is
// fire-and-forget: the submitter's request never waits on it and a publish
// failure never undoes the write.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Submission, error) {
	sub := &Submission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	created, err := s.repo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go s.notify(created)
	}

	return created, nil
}

func (s *Service) notify(sub *Submission) {
	event := Event{
		ID:        sub.ID,
		Name:      sub.Name,
		Email:     sub.Email,
		CreatedAt: sub.CreatedAt,
	}
	if err := s.notifier.Publish(event); err != nil {
		s.logger.Error("failed to publish submission event", "error", err, "id", sub.ID)
	}
}
