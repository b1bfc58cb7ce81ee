package submission

import (
	"context"
	"errors"
	"time"

	"github.com/HenrikHof/Portfolio/internal/metrics"

	"github.com/uptrace/bun"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type Repository interface {
	Create(ctx context.Context, sub *Submission) (*Submission, error)
	List(ctx context.Context, opts ListOptions) ([]Submission, error)
	Count(ctx context.Context, unreadOnly bool) (int, error)
	CountCreatedToday(ctx context.Context) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	SetRead(ctx context.Context, id int, read bool) error
}

type repository struct {
	db      *bun.DB
	metrics *metrics.Metrics
}

func NewRepository(db *bun.DB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

func (r *repository) Create(ctx context.Context, sub *Submission) (*Submission, error) {
	_, err := r.db.NewInsert().Model(sub).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Submission, error) {
	var subs []Submission
	q := r.db.NewSelect().Model(&subs)
	if opts.UnreadOnly {
		q = q.Where("read = ?", false)
	}
	// id is the tiebreak so a page is stable when two rows share a timestamp
	err := q.OrderExpr("created_at DESC, id DESC").
		Limit(opts.Limit).
		Offset(opts.Offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repository) Count(ctx context.Context, unreadOnly bool) (int, error) {
	q := r.db.NewSelect().Model((*Submission)(nil))
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	return q.Count(ctx)
}

// CountCreatedToday counts submissions created within the current calendar
// day, server-local. The trailing-window counts are CountCreatedSince.
func (r *repository) CountCreatedToday(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model((*Submission)(nil)).
		Where("DATE(created_at) = CURRENT_DATE").
		Count(ctx)
}

func (r *repository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*Submission)(nil)).
		Where("created_at >= ?", since).
		Count(ctx)
}

// SetRead updates the read flag. Writing the value already stored still
// matches the row, so repeating the same call is a no-op success.
func (r *repository) SetRead(ctx context.Context, id int, read bool) error {
	result, err := r.db.NewUpdate().
		Model((*Submission)(nil)).
		Set("read = ?", read).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	if r.metrics != nil {
		r.metrics.RecordReadToggled(ctx)
	}
	return nil
}
