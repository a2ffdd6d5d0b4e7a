package leads

import (
	"context"
	"log/slog"

	"github.com/acucogn/site/internal/metrics"
	"github.com/acucogn/site/internal/model"
)

// Sink stores a submission.
type Sink interface {
	Insert(ctx context.Context, lead *model.LeadSubmission) error
}

// Client validates forms and writes them to a Sink.
type Client struct {
	sink    Sink
	metrics *metrics.Metrics
}

// NewClient creates a Client writing to sink. m may be nil.
func NewClient(sink Sink, m *metrics.Metrics) *Client {
	return &Client{sink: sink, metrics: m}
}

// Submit validates f and stores it. Invalid forms return a
// *model.ValidationError without touching the sink; sink failures return a
// *model.TransportError. There is no retry.
func (c *Client) Submit(ctx context.Context, f Form) (*model.LeadSubmission, error) {
	if err := f.Validate(); err != nil {
		c.metrics.LeadSubmission(metrics.OutcomeInvalid)
		return nil, err
	}

	lead := f.Submission()
	if err := c.sink.Insert(ctx, lead); err != nil {
		c.metrics.LeadSubmission(metrics.OutcomeError)
		slog.ErrorContext(ctx, "failed to store contact submission", "error", err)
		return nil, &model.TransportError{Op: "submit lead", Err: err}
	}

	c.metrics.LeadSubmission(metrics.OutcomeSuccess)
	slog.InfoContext(ctx, "contact submission stored", "service", lead.Service, "has_phone", lead.Phone != nil)
	return lead, nil
}
