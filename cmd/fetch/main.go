package main

import (
    "context"
    "flag"
    "fmt"
    "log"
    "os"
    "strings"
    "time"

    "github.com/joho/godotenv"

    "solprice/internal/config"
    "solprice/internal/format"
    "solprice/internal/httpx"
    "solprice/internal/provider"
    "solprice/internal/provider/binance"
    "solprice/internal/provider/coincap"
    "solprice/internal/provider/coingecko"
    "solprice/internal/resolve"
)

func main() {
    // .env is optional; real env always wins over it.
    if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
        log.Printf("warning: .env: %v", err)
    }

    var symbol string
    var timeout int
    var configPath string
    var quiet bool

    flag.StringVar(&symbol, "symbol", getenv("SYMBOL", "SOL"), "asset symbol to price")
    flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 10), "request timeout seconds")
    flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
    flag.BoolVar(&quiet, "quiet", false, "suppress progress output")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }
    if symbol != "" { cfg.Symbol = strings.ToUpper(symbol) }
    if timeout > 0 { cfg.Server.RequestTimeoutSec = timeout }
    if !provider.Supported(cfg.Symbol) {
        log.Fatalf("unsupported symbol %q", cfg.Symbol)
    }

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

    providers := buildChain(cfg, httpClient)
    resolver, err := resolve.New(providers...)
    if err != nil { log.Fatalf("resolver: %v", err) }

    if !quiet {
        names := make([]string, 0, len(providers))
        for _, p := range providers { names = append(names, string(p.ID())) }
        log.Printf("🔗 fetching current %s price (providers: %s)", cfg.Symbol, strings.Join(names, " → "))
    }

    ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
    defer cancel()

    outcome := resolver.Resolve(ctx, cfg.Symbol)
    fmt.Println(format.Outcome(cfg.Symbol, outcome))
    if !outcome.OK() {
        os.Exit(1)
    }
}

// buildChain assembles the fallback chain in fixed priority order:
// CoinGecko, then CoinCap, then Binance.
func buildChain(cfg config.Config, hc *httpx.Client) []provider.Provider {
    var providers []provider.Provider
    if cfg.CoinGecko.Enabled {
        providers = append(providers, coingecko.New(coingecko.Config{
            URL:    cfg.CoinGecko.Endpoint,
            APIKey: cfg.CoinGecko.APIKey,
        }, hc))
    }
    if cfg.CoinCap.Enabled {
        providers = append(providers, coincap.New(coincap.Config{URL: cfg.CoinCap.Endpoint}, hc))
    }
    if cfg.Binance.Enabled {
        providers = append(providers, binance.New(binance.Config{URL: cfg.Binance.Endpoint}, hc))
    }
    return providers
}

func getenv(key, def string) string { if v := os.Getenv(key); v != "" { return v }; return def }
func getenvInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        var x int
        _, _ = fmt.Sscanf(v, "%d", &x)
        if x != 0 { return x }
    }
    return def
}
