package price

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newQuoteServer(prices map[string]string, hits map[string]int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbol")
		if hits != nil {
			hits[symbol]++
		}
		value, ok := prices[symbol]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"symbol":%q,"price":%q}`, symbol, value)
	}))
}

func TestFetch(t *testing.T) {
	srv := newQuoteServer(map[string]string{"BTCUSDT": "27450.10000000"}, nil)
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Fetch(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 27450.10 {
		t.Fatalf("got %f want 27450.10", got)
	}
}

func TestFetchUnknownSymbol(t *testing.T) {
	srv := newQuoteServer(map[string]string{}, nil)
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if _, err := client.Fetch(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestFetchMalformedPrice(t *testing.T) {
	srv := newQuoteServer(map[string]string{"BTCUSDT": "not-a-number"}, nil)
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if _, err := client.Fetch(context.Background(), "BTCUSDT"); err == nil {
		t.Fatal("expected error for malformed price")
	}
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "{{{")
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if _, err := client.Fetch(context.Background(), "BTCUSDT"); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestFetchManyIsolatesFailures(t *testing.T) {
	srv := newQuoteServer(map[string]string{
		"BTCUSDT": "10050",
		"ETHUSDT": "2000.5",
	}, nil)
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	prices := client.FetchMany(context.Background(), []string{"BTCUSDT", "BROKEN", "ETHUSDT"})

	if len(prices) != 2 {
		t.Fatalf("got %d prices want 2", len(prices))
	}
	if prices["BTCUSDT"] != 10050 {
		t.Fatalf("BTCUSDT got %f", prices["BTCUSDT"])
	}
	if prices["ETHUSDT"] != 2000.5 {
		t.Fatalf("ETHUSDT got %f", prices["ETHUSDT"])
	}
	if _, ok := prices["BROKEN"]; ok {
		t.Fatal("failed symbol must be absent from result")
	}
}

func TestFetchManyFetchesDistinctSymbolsOnce(t *testing.T) {
	hits := map[string]int{}
	srv := newQuoteServer(map[string]string{"BTCUSDT": "10050"}, hits)

	client := NewClient(WithBaseURL(srv.URL))
	client.FetchMany(context.Background(), []string{"BTCUSDT", "BTCUSDT", "BTCUSDT"})

	srv.Close()
	if hits["BTCUSDT"] != 1 {
		t.Fatalf("BTCUSDT fetched %d times want 1", hits["BTCUSDT"])
	}
}
