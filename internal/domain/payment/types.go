package payment

import (
	"strings"

	"appointment-booking/internal/pkg/errs"
)

var (
	ErrInvalidProvider   = errs.Mark(errs.New("unsupported payment provider"), errs.ErrValidation)
	ErrInvalidCurrency   = errs.Mark(errs.New("currency must be a 3-letter ISO code"), errs.ErrValidation)
	ErrInvalidAmount     = errs.Mark(errs.New("amount must be non-negative"), errs.ErrValidation)
	ErrAmountMismatch    = errs.Mark(errs.New("amount does not match the quoted total"), errs.ErrValidation)
	ErrInvalidTransition = errs.Mark(errs.New("payment status transition not allowed"), errs.ErrInvalidTransition)
)

type Status string

const (
	StatusInitiated Status = "initiated"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

func (s Status) String() string { return string(s) }

// IsLive reports whether the payment still blocks another payment for the same booking.
func (s Status) IsLive() bool { return s != StatusFailed }

type Provider string

const ProviderMock Provider = "mock"

func NewProvider(s string) (Provider, error) {
	if s == "" {
		return ProviderMock, nil
	}
	p := Provider(strings.ToLower(s))
	if p != ProviderMock {
		return "", ErrInvalidProvider
	}
	return p, nil
}

func (p Provider) String() string { return string(p) }

func NewCurrency(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return s, nil
}
