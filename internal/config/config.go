package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "strings"
)

type Server struct {
    Port              string `json:"port"`
    RequestTimeoutSec int    `json:"request_timeout_sec"`
}

// Limits holds the per-provider throttling and caching knobs used by the
// serving mode. The one-shot CLI ignores them.
type Limits struct {
    MaxRequestsPerMinute  int `json:"max_requests_per_minute"`
    Burst                 int `json:"burst"`
    MinRequestIntervalSec int `json:"min_request_interval_sec"`
    CacheTTLSeconds       int `json:"cache_ttl_sec"`
}

type CoinGecko struct {
    Enabled  bool   `json:"enabled"`
    Endpoint string `json:"endpoint"`
    APIKey   string `json:"api_key"`
    Limits   Limits `json:"limits"`
}

type CoinCap struct {
    Enabled  bool   `json:"enabled"`
    Endpoint string `json:"endpoint"`
    Limits   Limits `json:"limits"`
}

type Binance struct {
    Enabled  bool   `json:"enabled"`
    Endpoint string `json:"endpoint"`
    Limits   Limits `json:"limits"`
}

type Config struct {
    Server    Server    `json:"server"`
    Symbol    string    `json:"symbol"`
    CoinGecko CoinGecko `json:"coingecko"`
    CoinCap   CoinCap   `json:"coincap"`
    Binance   Binance   `json:"binance"`
}

func Default() Config {
    return Config{
        Server: Server{Port: "8080", RequestTimeoutSec: 10},
        Symbol: "SOL",
        CoinGecko: CoinGecko{
            Enabled:  true,
            Endpoint: "https://api.coingecko.com/api/v3",
            Limits:   Limits{MaxRequestsPerMinute: 10, Burst: 2, CacheTTLSeconds: 5},
        },
        CoinCap: CoinCap{
            Enabled:  true,
            Endpoint: "https://api.coincap.io",
            Limits:   Limits{MaxRequestsPerMinute: 10, Burst: 2, CacheTTLSeconds: 5},
        },
        Binance: Binance{
            Enabled:  true,
            Endpoint: "https://api.binance.com",
            Limits:   Limits{MaxRequestsPerMinute: 20, Burst: 2, CacheTTLSeconds: 5},
        },
    }
}

// Load reads JSON config from path. If path is empty or the file does not
// exist, it returns defaults. Environment variables override select fields
// for secrecy.
func Load(path string) (Config, error) {
    cfg := Default()
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := json.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.RequestTimeoutSec = x }
    }
    if v := os.Getenv("SYMBOL"); v != "" { cfg.Symbol = strings.ToUpper(v) }

    if v := os.Getenv("COINGECKO_API_KEY"); v != "" { cfg.CoinGecko.APIKey = v }
    if v := os.Getenv("COINGECKO_ENDPOINT"); v != "" { cfg.CoinGecko.Endpoint = v }
    if v := os.Getenv("COINGECKO_ENABLED"); v != "" { cfg.CoinGecko.Enabled = parseBool(v, cfg.CoinGecko.Enabled) }
    if v := os.Getenv("COINCAP_ENDPOINT"); v != "" { cfg.CoinCap.Endpoint = v }
    if v := os.Getenv("COINCAP_ENABLED"); v != "" { cfg.CoinCap.Enabled = parseBool(v, cfg.CoinCap.Enabled) }
    if v := os.Getenv("BINANCE_ENDPOINT"); v != "" { cfg.Binance.Endpoint = v }
    if v := os.Getenv("BINANCE_ENABLED"); v != "" { cfg.Binance.Enabled = parseBool(v, cfg.Binance.Enabled) }
}

func parseBool(s string, def bool) bool {
    switch strings.ToLower(s) {
    case "1", "true", "yes", "y":
        return true
    case "0", "false", "no", "n":
        return false
    }
    return def
}
