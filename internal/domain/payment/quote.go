package payment

// Policy holds the pricing inputs shared by checkout and init.
type Policy struct {
	Currency          string
	TaxRatePercent    int64
	DefaultPriceMinor int64
}

// Quote is a server-side price breakdown in minor currency units.
type Quote struct {
	Base     int64
	Tax      int64
	Total    int64
	Currency string
}

// NewQuote computes tax as base*rate/100 rounded half up.
func NewQuote(base, ratePercent int64, currency string) (Quote, error) {
	if base < 0 || ratePercent < 0 {
		return Quote{}, ErrInvalidAmount
	}
	tax := (base*ratePercent + 50) / 100
	return Quote{Base: base, Tax: tax, Total: base + tax, Currency: currency}, nil
}

// QuoteFor prices a service, falling back to the default price when it has none.
func (p Policy) QuoteFor(price *int64) (Quote, error) {
	base := p.DefaultPriceMinor
	if price != nil {
		base = *price
	}
	return NewQuote(base, p.TaxRatePercent, p.Currency)
}

// Matches checks a client supplied amount against the total. Nil always matches.
func (q Quote) Matches(amount *int64) error {
	if amount != nil && *amount != q.Total {
		return ErrAmountMismatch
	}
	return nil
}
