package admin

import (
	"context"
	"time"

	"github.com/HenrikHof/Portfolio/internal/submission"
)

// Stats summarizes the review queue for the dashboard header.
type Stats struct {
	Total     int `json:"total"`
	Unread    int `json:"unread"`
	Today     int `json:"today"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
}

// ListResult is one page of submissions plus the aggregate counts. Total and
// Unread cover the whole table, not the page.
type ListResult struct {
	Submissions []submission.Submission `json:"submissions"`
	Total       int                     `json:"total"`
	Unread      int                     `json:"unread"`
}

type Service struct {
	repo submission.Repository
}

func NewService(repo submission.Repository) *Service {
	return &Service{repo: repo}
}

// Stats computes all counts at call time. Today is the current calendar day;
// thisWeek and thisMonth are trailing 7- and 30-day windows.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.repo.Count(ctx, false)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.Count(ctx, true)
	if err != nil {
		return nil, err
	}

	today, err := s.repo.CountCreatedToday(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	thisWeek, err := s.repo.CountCreatedSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	thisMonth, err := s.repo.CountCreatedSince(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return &Stats{
		Total:     total,
		Unread:    unread,
		Today:     today,
		ThisWeek:  thisWeek,
		ThisMonth: thisMonth,
	}, nil
}

func (s *Service) List(ctx context.Context, opts submission.ListOptions) (*ListResult, error) {
	subs, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []submission.Submission{}
	}

	total, err := s.repo.Count(ctx, false)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.Count(ctx, true)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Submissions: subs,
		Total:       total,
		Unread:      unread,
	}, nil
}

func (s *Service) SetRead(ctx context.Context, id int, read bool) error {
	return s.repo.SetRead(ctx, id, read)
}
