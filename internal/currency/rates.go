package currency

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Status describes where the one-shot rate fetch stands
type Status int

const (
	StatusPending Status = iota
	StatusReady
	StatusUnavailable
	StatusNotNeeded
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusUnavailable:
		return "unavailable"
	case StatusNotNeeded:
		return "not needed"
	default:
		return "unknown"
	}
}

// Fetcher resolves a single conversion rate
type Fetcher interface {
	FetchRate(ctx context.Context, base, target string) (float64, error)
}

// Rates holds the single conversion rate between the fare currency and the display currency.
// The rate is fetched at most once; until it arrives, or if it fails, Rate reports inactive
// and callers keep working in the base currency.
type Rates struct {
	base    string
	display string
	fetcher Fetcher
	logger  *zap.Logger

	mu     sync.RWMutex
	rate   float64
	status Status
	err    error

	once  sync.Once
	ready chan struct{}
}

// NewRates creates a rate holder. When display equals base no fetch is ever made.
func NewRates(base, display string, fetcher Fetcher, logger *zap.Logger) *Rates {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Rates{
		base:    strings.ToUpper(strings.TrimSpace(base)),
		display: strings.ToUpper(strings.TrimSpace(display)),
		fetcher: fetcher,
		logger:  logger,
		status:  StatusPending,
		ready:   make(chan struct{}),
	}

	switch {
	case r.display == "" || r.display == r.base:
		r.status = StatusNotNeeded
		r.once.Do(func() { close(r.ready) })
	case fetcher == nil:
		r.status = StatusUnavailable
		r.err = ErrRateUnavailable
		r.once.Do(func() { close(r.ready) })
	}

	return r
}

// FetchOnce performs the fetch on the first call and is a no-op afterwards.
// Failures are terminal for this holder and are not returned: they only flip the status.
func (r *Rates) FetchOnce(ctx context.Context) {
	r.once.Do(func() {
		defer close(r.ready)

		rate, err := r.fetcher.FetchRate(ctx, r.base, r.display)

		r.mu.Lock()
		defer r.mu.Unlock()

		if err != nil {
			r.status = StatusUnavailable
			r.err = err
			r.logger.Warn("Conversion rate unavailable, staying in base currency",
				zap.String("base", r.base),
				zap.String("display", r.display),
				zap.Error(err))
			return
		}

		r.rate = rate
		r.status = StatusReady
		r.logger.Info("Conversion rate fetched",
			zap.String("base", r.base),
			zap.String("display", r.display),
			zap.Float64("rate", rate))
	})
}

// Rate returns the active rate; ok is false while pending, after failure, or when not needed
func (r *Rates) Rate() (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.status != StatusReady {
		return 0, false
	}
	return r.rate, true
}

// Status returns the fetch status
func (r *Rates) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Err returns the fetch error, if the fetch failed
func (r *Rates) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// Ready is closed once the rate is resolved, successfully or not
func (r *Rates) Ready() <-chan struct{} {
	return r.ready
}

// Base returns the fare currency
func (r *Rates) Base() string {
	return r.base
}

// Target returns the requested display currency, whether or not a rate is available
func (r *Rates) Target() string {
	if r.display == "" {
		return r.base
	}
	return r.display
}

// DisplayCurrency returns the currency amounts are currently shown in
func (r *Rates) DisplayCurrency() string {
	if _, ok := r.Rate(); ok {
		return r.display
	}
	return r.base
}
