package ratelimit

import (
    "context"
    "sync"
    "time"

    "solprice/internal/provider"
)

// MinInterval wraps a provider and enforces a minimum time between calls.
// Concurrent calls wait until the interval has elapsed since the last call,
// or return early if the context is canceled.
type MinInterval struct {
    P        provider.Provider
    Interval time.Duration
    mu       sync.Mutex
    last     time.Time
}

func (m *MinInterval) ID() provider.ID { return m.P.ID() }

func (m *MinInterval) FetchPrice(ctx context.Context, symbol string) (provider.Quote, error) {
    if m.Interval > 0 {
        m.mu.Lock()
        wait := time.Until(m.last.Add(m.Interval))
        m.mu.Unlock()
        if wait > 0 {
            t := time.NewTimer(wait)
            defer t.Stop()
            select {
            case <-ctx.Done():
                return provider.Quote{}, provider.WrapErr(m.ID(), provider.KindRateLimit, ctx.Err())
            case <-t.C:
            }
        }
    }
    q, err := m.P.FetchPrice(ctx, symbol)
    if m.Interval > 0 {
        m.mu.Lock()
        m.last = time.Now()
        m.mu.Unlock()
    }
    return q, err
}
