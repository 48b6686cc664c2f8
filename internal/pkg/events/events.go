package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sharecrm/share/internal/pkg/logger"
)

// Subjects published by the services
const (
	SubjectEnrollmentCreated     = "enrollment.created"
	SubjectEnrollmentCancelled   = "enrollment.cancelled"
	SubjectPaymentSucceeded      = "payment.succeeded"
	SubjectPaymentFailed         = "payment.failed"
	SubjectCancellationRequested = "cancellation.requested"
	SubjectCancellationApproved  = "cancellation.approved"
	SubjectCancellationRejected  = "cancellation.rejected"
	SubjectPAQSubmitted          = "paq.submitted"
	SubjectPAQReviewed           = "paq.reviewed"
	SubjectCreditAdjusted        = "credit.adjusted"
	SubjectSessionCancelled      = "session.cancelled"
	SubjectAttendanceRecorded    = "attendance.recorded"
)

// Envelope is the JSON body of every published event
type Envelope struct {
	Subject    string      `json:"subject"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data"`
}

// Publisher sends domain events to subscribers outside the process
type Publisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
	Close() error
}

// NATSPublisher publishes JSON envelopes on "<prefix>.<subject>"
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSPublisher connects to url
func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("sharecrm-api"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info().Str("url", url).Str("prefix", prefix).Msg("NATS publisher initialized")

	return &NATSPublisher{conn: nc, prefix: strings.TrimSuffix(prefix, ".")}, nil
}

// Subject returns the fully qualified subject name
func (p *NATSPublisher) Subject(subject string) string {
	if p.prefix == "" {
		return subject
	}
	return p.prefix + "." + subject
}

// Publish implements Publisher
func (p *NATSPublisher) Publish(_ context.Context, subject string, payload interface{}) error {
	body, err := json.Marshal(Envelope{Subject: subject, OccurredAt: time.Now().UTC(), Data: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.conn.Publish(p.Subject(subject), body); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	logger.Debug().Str("subject", p.Subject(subject)).Msg("Event published")
	return nil
}

// Close drains the connection
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// NoopPublisher discards events
type NoopPublisher struct{}

// Publish implements Publisher
func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// Close implements Publisher
func (NoopPublisher) Close() error { return nil }

// Emit publishes and logs a failure instead of returning it.
// Callers use it after their transaction has committed.
func Emit(ctx context.Context, p Publisher, subject string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, subject, payload); err != nil {
		logger.Warn().Err(err).Str("subject", subject).Msg("Failed to publish event")
	}
}
