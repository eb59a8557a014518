package binance

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
    "time"

    "github.com/shopspring/decimal"

    "solprice/internal/httpx"
    "solprice/internal/provider"
)

// tradingPairs maps requested symbols to Binance spot pairs. Binance has no
// direct USD quote, so USDT stands in for it.
var tradingPairs = map[string]string{
    "SOL": "SOLUSDT",
}

type Config struct {
    URL string // base URL, e.g. https://api.binance.com
}

// Provider fetches spot prices from the Binance ticker-price endpoint.
type Provider struct {
    cfg    Config
    client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Provider {
    if cfg.URL == "" { cfg.URL = "https://api.binance.com" }
    return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) ID() provider.ID { return provider.Binance }

func (p *Provider) FetchPrice(ctx context.Context, symbol string) (provider.Quote, error) {
    pair, ok := tradingPairs[symbol]
    if !ok {
        return provider.Quote{}, provider.Errorf(p.ID(), provider.KindUnknown, "unsupported symbol %q", symbol)
    }

    q := url.Values{}
    q.Set("symbol", pair)
    u := fmt.Sprintf("%s/api/v3/ticker/price?%s", p.cfg.URL, q.Encode())

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
    if err != nil {
        return provider.Quote{}, provider.WrapErr(p.ID(), provider.KindUnknown, err)
    }
    req.Header.Set("Accept", "application/json")

    resp, err := p.client.Do(ctx, req)
    if err != nil {
        return provider.Quote{}, provider.WrapErr(p.ID(), provider.KindNetwork, err)
    }
    defer resp.Body.Close()
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
        return provider.Quote{}, provider.Errorf(p.ID(), provider.KindFromStatus(resp.StatusCode),
            "GET %s -> %d: %s", u, resp.StatusCode, string(b))
    }

    // {"symbol":"SOLUSDT","price":"142.35000000"}
    var body struct {
        Symbol string `json:"symbol"`
        Price  string `json:"price"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
        return provider.Quote{}, provider.WrapErr(p.ID(), provider.KindParseFailure, fmt.Errorf("decode: %w", err))
    }
    raw := strings.TrimSpace(body.Price)
    if raw == "" {
        return provider.Quote{}, provider.Errorf(p.ID(), provider.KindParseFailure, "no price for %q in response", pair)
    }
    price, err := decimal.NewFromString(raw)
    if err != nil {
        return provider.Quote{}, provider.Errorf(p.ID(), provider.KindParseFailure, "bad price %q: %v", raw, err)
    }

    return provider.Quote{
        Symbol:     symbol,
        PriceUSD:   price,
        Source:     p.ID(),
        ReceivedAt: time.Now().UTC(),
    }, nil
}
