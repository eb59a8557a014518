package provider

import (
    "context"
    "time"

    "github.com/shopspring/decimal"
)

// ID names one upstream price source.
type ID string

const (
    CoinGecko ID = "CoinGecko"
    CoinCap   ID = "CoinCap"
    Binance   ID = "Binance"
)

// Quote is the normalized shape returned by all providers.
// PriceUSD is a decimal so string-encoded provider values survive
// without float drift.
type Quote struct {
    Symbol     string          `json:"symbol"`
    PriceUSD   decimal.Decimal `json:"price_usd"`
    Source     ID              `json:"source"`
    ReceivedAt time.Time       `json:"received_at"`
}

// supported is the closed set of symbols the adapters can map to upstream
// asset ids.
var supported = map[string]struct{}{
    "SOL": {},
}

// Supported reports whether the symbol belongs to the supported asset set.
func Supported(symbol string) bool {
    _, ok := supported[symbol]
    return ok
}

//go:generate mockgen -package=resolve_test -destination=../resolve/mock_provider_test.go -source=provider.go Provider

type Provider interface {
    ID() ID
    FetchPrice(ctx context.Context, symbol string) (Quote, error)
}
