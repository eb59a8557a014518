package main

import (
    "context"
    "encoding/json"
    "log"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    "golang.org/x/sync/singleflight"

    "solprice/internal/config"
    "solprice/internal/httpx"
    "solprice/internal/provider"
    "solprice/internal/provider/binance"
    "solprice/internal/provider/cache"
    "solprice/internal/provider/coincap"
    "solprice/internal/provider/coingecko"
    "solprice/internal/provider/ratelimit"
    "solprice/internal/resolve"
)

func main() {
    if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
        log.Printf("warning: .env: %v", err)
    }

    cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
    if err != nil { log.Fatalf("config: %v", err) }
    port := cfg.Server.Port
    timeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second

    if cfg.CoinGecko.Enabled && cfg.CoinGecko.APIKey == "" {
        log.Println("warning: coingecko.enabled=true but COINGECKO_API_KEY not set; requests go out unauthenticated")
    }

    httpClient := httpx.New(timeout)

    var providers []provider.Provider
    if cfg.CoinGecko.Enabled {
        p := withLimits(coingecko.New(coingecko.Config{
            URL:    cfg.CoinGecko.Endpoint,
            APIKey: cfg.CoinGecko.APIKey,
        }, httpClient), cfg.CoinGecko.Limits)
        providers = append(providers, p)
    }
    if cfg.CoinCap.Enabled {
        p := withLimits(coincap.New(coincap.Config{URL: cfg.CoinCap.Endpoint}, httpClient), cfg.CoinCap.Limits)
        providers = append(providers, p)
    }
    if cfg.Binance.Enabled {
        p := withLimits(binance.New(binance.Config{URL: cfg.Binance.Endpoint}, httpClient), cfg.Binance.Limits)
        providers = append(providers, p)
    }

    resolver, err := resolve.New(providers...)
    if err != nil { log.Fatalf("resolver: %v", err) }

    var group singleflight.Group

    mux := http.NewServeMux()
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.HandleFunc("/price", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet {
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
            return
        }
        ctx, cancel := context.WithTimeout(r.Context(), timeout)
        defer cancel()
        symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
        if symbol == "" { symbol = cfg.Symbol }
        writePrice(w, ctx, resolver, &group, symbol)
    })

    srv := &http.Server{
        Addr:              ":" + port,
        Handler:           withJSONHeaders(recoverPanic(mux)),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      20 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        log.Printf("server listening on :%s", port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("server: %v", err)
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
}

// withLimits layers rate limiting and caching around a provider the same way
// for every upstream: token bucket when an RPM budget is set, min-interval
// otherwise, then a short TTL cache.
func withLimits(p provider.Provider, l config.Limits) provider.Provider {
    if l.MaxRequestsPerMinute > 0 {
        burst := l.Burst
        if burst <= 0 { burst = 1 }
        p = &ratelimit.TokenBucketProvider{P: p, TB: ratelimit.NewTokenBucket(float64(l.MaxRequestsPerMinute)/60.0, burst)}
    } else if l.MinRequestIntervalSec > 0 {
        p = &ratelimit.MinInterval{P: p, Interval: time.Duration(l.MinRequestIntervalSec) * time.Second}
    }
    if l.CacheTTLSeconds > 0 {
        p = &cache.Provider{P: p, TTL: time.Duration(l.CacheTTLSeconds) * time.Second}
    }
    return p
}

// writePrice runs one resolution and renders it as JSON. Concurrent requests
// for the same symbol are coalesced into a single provider walk.
func writePrice(w http.ResponseWriter, ctx context.Context, r *resolve.Resolver, group *singleflight.Group, symbol string) {
    if !provider.Supported(symbol) {
        http.Error(w, `{"error":"unsupported symbol"}`, http.StatusBadRequest)
        return
    }
    v, _, _ := group.Do(symbol, func() (any, error) {
        return r.Resolve(ctx, symbol), nil
    })
    outcome := v.(resolve.Outcome)

    status := http.StatusOK
    if !outcome.OK() {
        status = http.StatusBadGateway
    }
    w.WriteHeader(status)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    _ = enc.Encode(outcome)
}

func withJSONHeaders(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json; charset=utf-8")
        next.ServeHTTP(w, r)
    })
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                http.Error(w, "internal server error", http.StatusInternalServerError)
            }
        }()
        next.ServeHTTP(w, r)
    })
}
