package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	submissionsReceived metric.Int64Counter
	submissionsViewed   metric.Int64Counter
	readToggles         metric.Int64Counter
	adminLogins         metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.submissionsReceived, err = meter.Int64Counter(
		"portfolio.submissions.received",
		metric.WithDescription("Total number of contact submissions received"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	m.submissionsViewed, err = meter.Int64Counter(
		"portfolio.submissions.list_viewed",
		metric.WithDescription("Total number of times the submissions list was viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.readToggles, err = meter.Int64Counter(
		"portfolio.submissions.read_toggled",
		metric.WithDescription("Total number of read/unread flag changes"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, err
	}

	m.adminLogins, err = meter.Int64Counter(
		"portfolio.admin.logins",
		metric.WithDescription("Total number of successful admin logins"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordSubmissionReceived(ctx context.Context) {
	if m != nil && m.submissionsReceived != nil {
		m.submissionsReceived.Add(ctx, 1)
	}
}

func (m *Metrics) RecordSubmissionsListViewed(ctx context.Context) {
	if m != nil && m.submissionsViewed != nil {
		m.submissionsViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordReadToggled(ctx context.Context) {
	if m != nil && m.readToggles != nil {
		m.readToggles.Add(ctx, 1)
	}
}

func (m *Metrics) RecordAdminLogin(ctx context.Context) {
	if m != nil && m.adminLogins != nil {
		m.adminLogins.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}
