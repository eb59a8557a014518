package coincap

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "strings"
    "time"

    "github.com/shopspring/decimal"

    "solprice/internal/httpx"
    "solprice/internal/provider"
)

var assetIDs = map[string]string{
    "SOL": "solana",
}

type Config struct {
    URL string // base URL, e.g. https://api.coincap.io
}

// Provider fetches spot prices from the CoinCap asset-by-id endpoint.
// CoinCap nests the price under data.priceUsd as a string-encoded decimal.
type Provider struct {
    cfg    Config
    client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Provider {
    if cfg.URL == "" { cfg.URL = "https://api.coincap.io" }
    return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) ID() provider.ID { return provider.CoinCap }

func (p *Provider) FetchPrice(ctx context.Context, symbol string) (provider.Quote, error) {
    assetID, ok := assetIDs[symbol]
    if !ok {
        return provider.Quote{}, provider.Errorf(p.ID(), provider.KindUnknown, "unsupported symbol %q", symbol)
    }

    u := fmt.Sprintf("%s/v2/assets/%s", p.cfg.URL, assetID)
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

    // {"data":{"id":"solana","priceUsd":"142.35",...},"timestamp":...}
    var body struct {
        Data struct {
            ID       string `json:"id"`
            Symbol   string `json:"symbol"`
            PriceUSD string `json:"priceUsd"`
        } `json:"data"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
        return provider.Quote{}, provider.WrapErr(p.ID(), provider.KindParseFailure, fmt.Errorf("decode: %w", err))
    }
    raw := strings.TrimSpace(body.Data.PriceUSD)
    if raw == "" {
        return provider.Quote{}, provider.Errorf(p.ID(), provider.KindParseFailure, "no priceUsd for %q in response", assetID)
    }
    price, err := decimal.NewFromString(raw)
    if err != nil {
        return provider.Quote{}, provider.Errorf(p.ID(), provider.KindParseFailure, "bad priceUsd %q: %v", raw, err)
    }

    return provider.Quote{
        Symbol:     symbol,
        PriceUSD:   price,
        Source:     p.ID(),
        ReceivedAt: time.Now().UTC(),
    }, nil
}
