// Package format renders resolution outcomes for the console. It is pure
// text in, text out; writing and exit codes belong to the callers.
package format

import (
    "fmt"
    "strings"

    "solprice/internal/resolve"
)

const hint = "Check network connectivity, your COINGECKO_API_KEY, and provider rate limits, then try again."

// Outcome renders a resolution result as display text. Success is a single
// price line; failure enumerates every attempted provider in order, followed
// by a troubleshooting hint.
func Outcome(symbol string, o resolve.Outcome) string {
    if o.OK() {
        q := o.Quote
        return fmt.Sprintf("💰 %s price: $%s (via %s)", q.Symbol, q.PriceUSD.StringFixed(2), q.Source)
    }
    var b strings.Builder
    fmt.Fprintf(&b, "❌ could not fetch %s price, all providers failed:\n", symbol)
    for _, e := range o.Errors {
        fmt.Fprintf(&b, "  - %s: %s: %s\n", e.Provider, e.Kind, e.Message)
    }
    b.WriteString(hint)
    return b.String()
}
