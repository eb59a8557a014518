package resolve

import (
    "context"
    "errors"

    "solprice/internal/provider"
)

// Outcome is the result of one resolution: either a quote, or one error per
// attempted provider in attempt order. A successful outcome still carries the
// errors accumulated before the provider that answered.
type Outcome struct {
    Quote  *provider.Quote   `json:"quote,omitempty"`
    Errors []*provider.Error `json:"errors,omitempty"`
}

func (o Outcome) OK() bool { return o.Quote != nil }

// Resolver walks providers in fixed priority order, short-circuiting on the
// first success. It holds no state between calls.
type Resolver struct {
    providers []provider.Provider
}

// New builds a resolver over the given fallback chain. The slice order is the
// attempt order.
func New(providers ...provider.Provider) (*Resolver, error) {
    if len(providers) == 0 {
        return nil, errors.New("resolve: no providers configured")
    }
    return &Resolver{providers: providers}, nil
}

// Resolve tries each provider exactly once, sequentially, until one returns a
// quote. Failures never abort the walk; they are collected so the full
// diagnostic trail survives to the caller.
func (r *Resolver) Resolve(ctx context.Context, symbol string) Outcome {
    var attempts []*provider.Error
    for _, p := range r.providers {
        q, err := p.FetchPrice(ctx, symbol)
        if err == nil {
            return Outcome{Quote: &q, Errors: attempts}
        }
        var perr *provider.Error
        if !errors.As(err, &perr) {
            perr = provider.WrapErr(p.ID(), provider.KindUnknown, err)
        }
        attempts = append(attempts, perr)
        if ctx.Err() != nil {
            // The remaining providers would fail the same way.
            break
        }
    }
    return Outcome{Errors: attempts}
}
