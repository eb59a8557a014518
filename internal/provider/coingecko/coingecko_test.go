package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solprice/internal/httpx"
	"solprice/internal/provider"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc, apiKey string) (*Provider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{URL: srv.URL, APIKey: apiKey}, httpx.New(2*time.Second)), srv
}

func TestFetchPrice_ParsesNestedUSDField(t *testing.T) {
	t.Parallel()

	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "solana", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"solana":{"usd":142.35}}`))
	}, "")

	q, err := p.FetchPrice(context.Background(), "SOL")
	require.NoError(t, err)
	assert.Equal(t, provider.CoinGecko, q.Source)
	assert.Equal(t, "SOL", q.Symbol)
	assert.True(t, q.PriceUSD.Equal(decimal.RequireFromString("142.35")), "got %s", q.PriceUSD)
}

func TestFetchPrice_SendsAPIKeyHeaderWhenPresent(t *testing.T) {
	t.Parallel()

	var gotKey string
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-cg-demo-api-key")
		_, _ = w.Write([]byte(`{"solana":{"usd":1}}`))
	}, "cg-demo-123")

	_, err := p.FetchPrice(context.Background(), "SOL")
	require.NoError(t, err)
	assert.Equal(t, "cg-demo-123", gotKey)
}

func TestFetchPrice_NoAPIKeyStillRequests(t *testing.T) {
	t.Parallel()

	var sawHeader bool
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		sawHeader = r.Header.Get("x-cg-demo-api-key") != ""
		_, _ = w.Write([]byte(`{"solana":{"usd":99.5}}`))
	}, "")

	q, err := p.FetchPrice(context.Background(), "SOL")
	require.NoError(t, err)
	assert.False(t, sawHeader, "unauthenticated request must not carry the key header")
	assert.True(t, q.PriceUSD.Equal(decimal.RequireFromString("99.5")))
}

func TestFetchPrice_MissingPriceFieldIsParseFailure(t *testing.T) {
	t.Parallel()

	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"solana":{}}`))
	}, "")

	_, err := p.FetchPrice(context.Background(), "SOL")
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, provider.KindParseFailure, perr.Kind)
	assert.Equal(t, provider.CoinGecko, perr.Provider)
}

func TestFetchPrice_MalformedBodyIsParseFailure(t *testing.T) {
	t.Parallel()

	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"solana":`))
	}, "")

	_, err := p.FetchPrice(context.Background(), "SOL")
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, provider.KindParseFailure, perr.Kind)
}

func TestFetchPrice_RateLimited(t *testing.T) {
	t.Parallel()

	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}, "")

	_, err := p.FetchPrice(context.Background(), "SOL")
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, provider.KindRateLimit, perr.Kind)
}

func TestFetchPrice_UnsupportedSymbol(t *testing.T) {
	t.Parallel()

	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an unsupported symbol")
	}, "")

	_, err := p.FetchPrice(context.Background(), "DOGE")
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, provider.KindUnknown, perr.Kind)
}
