package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/extract"
)

func providerServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/statements/ACME.NS/income", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "application/json")
		// Trailing commas and a quoted NaN, as some upstream feeds emit.
		w.Write([]byte(`{"currency": "INR", "periods": ["2024-03-31", "2023-03-31"], "rows": {"Total Revenue": [1000, 900,], "EBITDA": ["NaN", 120]},}`))
	})
	mux.HandleFunc("/statements/ACME.NS/balance", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<table><tr><th></th><th>Mar 2024</th></tr><tr><td>Total Debt</td><td>500</td></tr></table>`))
	})
	mux.HandleFunc("/statements/ACME.NS/cashflow", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/statements/PAGE.NS/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		http.ServeFile(w, r, "testdata/statements.html")
	})
	mux.HandleFunc("/statements/BROKEN.NS/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})
	mux.HandleFunc("/entities/ACME.NS", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ticker":"ACME.NS"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSourceFetch(t *testing.T) {
	srv := providerServer(t)
	src := NewHTTPSource(srv.URL+"/", WithAPIKey("secret"), WithRateLimit(100))

	st, err := src.FetchStatements(context.Background(), "acme.ns")
	require.NoError(t, err)

	assert.Equal(t, "INR", st.Currency)
	assert.Equal(t, 1000.0, extract.Value(st.Income, "Total Revenue", 0))
	assert.Equal(t, 0.0, extract.Value(st.Income, "EBITDA", 0))
	assert.Equal(t, 500.0, extract.Value(st.Balance, "Total Debt", 0))
	assert.True(t, st.CashFlow.Empty(), "404 statement is an empty table")
}

func TestHTTPSourceAllMissing(t *testing.T) {
	srv := providerServer(t)
	src := NewHTTPSource(srv.URL)

	_, err := src.FetchStatements(context.Background(), "NOPE.NS")
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestHTTPSourceProviderError(t *testing.T) {
	srv := providerServer(t)
	src := NewHTTPSource(srv.URL)

	_, err := src.FetchStatements(context.Background(), "BROKEN.NS")
	require.Error(t, err)
	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusBadGateway, perr.StatusCode)
	assert.False(t, errors.Is(err, ErrNoData))
}

func TestHTTPSourceExists(t *testing.T) {
	srv := providerServer(t)
	src := NewHTTPSource(srv.URL)

	ok, err := src.Exists(context.Background(), "ACME.NS")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = src.Exists(context.Background(), "NOPE.NS")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHTTPSourceStatementPage(t *testing.T) {
	srv := providerServer(t)
	src := NewHTTPSource(srv.URL)

	st, err := src.FetchStatements(context.Background(), "PAGE.NS")
	require.NoError(t, err)

	assert.Equal(t, 1400.0, extract.Value(st.Income, "Total Revenue", 0))
	assert.Equal(t, 5000.0, extract.Value(st.Balance, "Total Assets", 0))
	assert.Equal(t, 0.0, extract.Value(st.Balance, "Total Revenue", 0), "balance comes from its own section")
	assert.True(t, st.CashFlow.Empty(), "page without a cash flow section")
}
