package payment

import (
	"context"
	"sync"

	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Test tokens understood by MockProvider. Any other token succeeds.
const (
	TokenDecline   = "tok_decline"
	TokenTransient = "tok_transient"
	TokenFlaky     = "tok_flaky"
	TokenHang      = "tok_hang"
)

// MockProvider is the only provider. References are deterministic per payment.
type MockProvider struct {
	mu       sync.Mutex
	attempts map[uuid.UUID]int
}

func NewMockProvider() *MockProvider {
	return &MockProvider{attempts: make(map[uuid.UUID]int)}
}

func (p *MockProvider) Charge(ctx context.Context, req shared.ChargeRequest) (shared.ChargeResult, error) {
	p.mu.Lock()
	p.attempts[req.PaymentID]++
	attempt := p.attempts[req.PaymentID]
	p.mu.Unlock()

	switch req.Token {
	case TokenDecline:
		return shared.ChargeResult{}, errs.Wrapf(shared.ErrProviderDeclined, "card declined for %s", req.PaymentID)
	case TokenTransient:
		return shared.ChargeResult{}, errs.Wrap(shared.ErrProviderTransient, "mock gateway unavailable")
	case TokenFlaky:
		if attempt == 1 {
			return shared.ChargeResult{}, errs.Wrap(shared.ErrProviderTransient, "mock gateway hiccup")
		}
	case TokenHang:
		<-ctx.Done()
		return shared.ChargeResult{}, ctx.Err()
	}
	return shared.ChargeResult{Reference: "mock_" + req.PaymentID.String()}, nil
}

func (p *MockProvider) Attempts(paymentID uuid.UUID) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts[paymentID]
}
