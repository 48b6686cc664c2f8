package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, string, interface{}) error {
	f.calls++
	return errors.New("broker down")
}

func (f *failingPublisher) Close() error { return nil }

func TestEmit_SwallowsErrors(t *testing.T) {
	p := &failingPublisher{}
	assert.NotPanics(t, func() {
		Emit(context.Background(), p, SubjectCreditAdjusted, map[string]int64{"customerId": 1})
	})
	assert.Equal(t, 1, p.calls)

	assert.NotPanics(t, func() { Emit(context.Background(), nil, SubjectPAQSubmitted, nil) })
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), SubjectPaymentSucceeded, nil))
	assert.NoError(t, p.Close())
}

func TestNATSPublisher_Subject(t *testing.T) {
	p := &NATSPublisher{prefix: "sharecrm"}
	assert.Equal(t, "sharecrm.enrollment.created", p.Subject(SubjectEnrollmentCreated))

	bare := &NATSPublisher{}
	assert.Equal(t, "paq.reviewed", bare.Subject(SubjectPAQReviewed))
}
