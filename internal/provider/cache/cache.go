package cache

import (
    "context"
    "sync"
    "time"

    "solprice/internal/provider"
)

// entry stores one cached quote with expiry.
type entry struct {
    expiresAt time.Time
    quote     provider.Quote
}

// Provider caches quotes per symbol for a TTL. It only serves the long-lived
// server mode; one-shot CLI runs bypass it entirely.
type Provider struct {
    P   provider.Provider
    TTL time.Duration

    mu    sync.RWMutex
    items map[string]entry
}

func (c *Provider) ID() provider.ID { return c.P.ID() }

// FetchPrice returns the cached quote when still valid, otherwise fetches a
// fresh one and stores it. Errors are never cached.
func (c *Provider) FetchPrice(ctx context.Context, symbol string) (provider.Quote, error) {
    if c.TTL <= 0 {
        return c.P.FetchPrice(ctx, symbol)
    }

    now := time.Now()
    c.mu.RLock()
    e, ok := c.items[symbol]
    c.mu.RUnlock()
    if ok && now.Before(e.expiresAt) {
        return e.quote, nil
    }

    q, err := c.P.FetchPrice(ctx, symbol)
    if err != nil {
        return provider.Quote{}, err
    }

    c.mu.Lock()
    if c.items == nil {
        c.items = make(map[string]entry)
    }
    c.items[symbol] = entry{expiresAt: now.Add(c.TTL), quote: q}
    c.mu.Unlock()
    return q, nil
}
