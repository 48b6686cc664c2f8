package payments

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IntentStatus is the provider-neutral state of a payment intent
type IntentStatus string

const (
	IntentRequiresPayment IntentStatus = "requires_payment"
	IntentProcessing      IntentStatus = "processing"
	IntentSucceeded       IntentStatus = "succeeded"
	IntentCanceled        IntentStatus = "canceled"
	IntentFailed          IntentStatus = "failed"
)

// ErrIntentNotFound is returned for unknown intent IDs
var ErrIntentNotFound = errors.New("payment intent not found")

// Intent is a request to collect AmountCents from the customer
type Intent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
	AmountCents  int64
	Currency     string
}

// Gateway creates and inspects payment intents
type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
	CancelIntent(ctx context.Context, id string) error
	Name() string
}

// OfflineGateway settles every intent immediately. It backs development
// setups and deployments that only take counter payments.
type OfflineGateway struct {
	mu      sync.RWMutex
	intents map[string]*Intent
}

// NewOfflineGateway creates an offline gateway
func NewOfflineGateway() *OfflineGateway {
	return &OfflineGateway{intents: make(map[string]*Intent)}
}

// Name implements Gateway
func (g *OfflineGateway) Name() string { return "offline" }

// CreateIntent implements Gateway
func (g *OfflineGateway) CreateIntent(_ context.Context, amountCents int64, currency string, _ map[string]string) (*Intent, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("intent amount must be positive, got %d", amountCents)
	}
	id := "offline_" + uuid.New().String()
	intent := &Intent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       IntentSucceeded,
		AmountCents:  amountCents,
		Currency:     currency,
	}

	g.mu.Lock()
	g.intents[id] = intent
	g.mu.Unlock()

	cp := *intent
	return &cp, nil
}

// GetIntent implements Gateway
func (g *OfflineGateway) GetIntent(_ context.Context, id string) (*Intent, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	intent, ok := g.intents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIntentNotFound, id)
	}
	cp := *intent
	return &cp, nil
}

// CancelIntent implements Gateway
func (g *OfflineGateway) CancelIntent(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, ok := g.intents[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrIntentNotFound, id)
	}
	intent.Status = IntentCanceled
	return nil
}
