package coingecko

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "time"

    "github.com/shopspring/decimal"

    "solprice/internal/httpx"
    "solprice/internal/provider"
)

// assetIDs maps requested symbols to CoinGecko coin ids.
var assetIDs = map[string]string{
    "SOL": "solana",
}

type Config struct {
    URL    string // base URL, e.g. https://api.coingecko.com/api/v3
    APIKey string // optional; sent as x-cg-demo-api-key when present
}

// Provider fetches spot prices from the CoinGecko simple-price endpoint.
// It is the only adapter that carries an API key; requests still go out
// unauthenticated when the key is absent.
type Provider struct {
    cfg    Config
    client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Provider {
    if cfg.URL == "" { cfg.URL = "https://api.coingecko.com/api/v3" }
    return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) ID() provider.ID { return provider.CoinGecko }

func (p *Provider) FetchPrice(ctx context.Context, symbol string) (provider.Quote, error) {
    coinID, ok := assetIDs[symbol]
    if !ok {
        return provider.Quote{}, provider.Errorf(p.ID(), provider.KindUnknown, "unsupported symbol %q", symbol)
    }

    q := url.Values{}
    q.Set("ids", coinID)
    q.Set("vs_currencies", "usd")
    u := fmt.Sprintf("%s/simple/price?%s", p.cfg.URL, q.Encode())

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
    if err != nil {
        return provider.Quote{}, provider.WrapErr(p.ID(), provider.KindUnknown, err)
    }
    req.Header.Set("Accept", "application/json")
    if p.cfg.APIKey != "" { req.Header.Set("x-cg-demo-api-key", p.cfg.APIKey) }

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

    // {"solana":{"usd":142.35}}
    var body map[string]map[string]json.Number
    if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
        return provider.Quote{}, provider.WrapErr(p.ID(), provider.KindParseFailure, fmt.Errorf("decode: %w", err))
    }
    usd, ok := body[coinID]["usd"]
    if !ok {
        return provider.Quote{}, provider.Errorf(p.ID(), provider.KindParseFailure, "no usd price for %q in response", coinID)
    }
    price, err := decimal.NewFromString(usd.String())
    if err != nil {
        return provider.Quote{}, provider.Errorf(p.ID(), provider.KindParseFailure, "bad price %q: %v", usd.String(), err)
    }

    return provider.Quote{
        Symbol:     symbol,
        PriceUSD:   price,
        Source:     p.ID(),
        ReceivedAt: time.Now().UTC(),
    }, nil
}
