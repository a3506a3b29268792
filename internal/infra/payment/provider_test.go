//go:build unit

package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chargeReq(token string) shared.ChargeRequest {
	return shared.ChargeRequest{PaymentID: uuid.New(), Amount: 110000, Currency: "INR", Token: token}
}

func TestMockProviderTokens(t *testing.T) {
	p := NewMockProvider()
	ctx := context.Background()

	req := chargeReq("")
	res, err := p.Charge(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "mock_"+req.PaymentID.String(), res.Reference)

	_, err = p.Charge(ctx, chargeReq(TokenDecline))
	assert.True(t, errors.Is(err, shared.ErrProviderDeclined))

	_, err = p.Charge(ctx, chargeReq(TokenTransient))
	assert.True(t, errors.Is(err, shared.ErrProviderTransient))

	flaky := chargeReq(TokenFlaky)
	_, err = p.Charge(ctx, flaky)
	assert.True(t, errors.Is(err, shared.ErrProviderTransient))
	_, err = p.Charge(ctx, flaky)
	assert.NoError(t, err)
	assert.Equal(t, 2, p.Attempts(flaky.PaymentID))
}

func TestRetryingProvider(t *testing.T) {
	tests := []struct {
		name         string
		token        string
		maxRetries   int
		wantErr      error
		wantAttempts int
	}{
		{name: "success first try", token: "", maxRetries: 2, wantAttempts: 1},
		{name: "transient then success", token: TokenFlaky, maxRetries: 2, wantAttempts: 2},
		{name: "transient exhausted", token: TokenTransient, maxRetries: 2, wantErr: shared.ErrProviderTransient, wantAttempts: 3},
		{name: "decline not retried", token: TokenDecline, maxRetries: 2, wantErr: shared.ErrProviderDeclined, wantAttempts: 1},
		{name: "no retries configured", token: TokenFlaky, maxRetries: 0, wantErr: shared.ErrProviderTransient, wantAttempts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider()
			p := NewRetryingProvider(mock, time.Second, tt.maxRetries, time.Millisecond, discardLogger())
			req := chargeReq(tt.token)

			_, err := p.Charge(context.Background(), req)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantAttempts, mock.Attempts(req.PaymentID))
		})
	}
}

func TestRetryingProviderTimeout(t *testing.T) {
	mock := NewMockProvider()
	p := NewRetryingProvider(mock, 10*time.Millisecond, 1, time.Millisecond, discardLogger())
	req := chargeReq(TokenHang)

	start := time.Now()
	_, err := p.Charge(context.Background(), req)

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 2, mock.Attempts(req.PaymentID))
	assert.Less(t, time.Since(start), time.Second)
}
