package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"binance-alert-bot/internal/price"
)

func withQuoteServer(t *testing.T, prices map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbol")
		value, ok := prices[symbol]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"symbol":%q,"price":%q}`, symbol, value)
	}))

	previous := quoteClient
	SetQuoteClient(price.NewClient(price.WithBaseURL(srv.URL)))
	t.Cleanup(func() {
		SetQuoteClient(previous)
		srv.Close()
	})
	return srv
}

func TestCommandNowDefaultsToBTCUSDT(t *testing.T) {
	withQuoteServer(t, map[string]string{"BTCUSDT": "105.5"})

	reply, err := CommandNow(context.Background(), "")
	if err != nil {
		t.Fatalf("CommandNow: %v", err)
	}
	if !strings.HasPrefix(reply, "BTCUSDT:") {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if !strings.Contains(reply, "105") {
		t.Fatalf("reply %q does not contain the price", reply)
	}
}

func TestCommandNowNormalizesSymbol(t *testing.T) {
	withQuoteServer(t, map[string]string{"ETHUSDT": "2000"})

	reply, err := CommandNow(context.Background(), "ethusdt")
	if err != nil {
		t.Fatalf("CommandNow: %v", err)
	}
	if !strings.HasPrefix(reply, "ETHUSDT:") {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestCommandNowRejectsBadSymbol(t *testing.T) {
	withQuoteServer(t, map[string]string{})

	reply, err := CommandNow(context.Background(), "eth-usd")
	if err != nil {
		t.Fatalf("CommandNow: %v", err)
	}
	if !strings.Contains(reply, "Invalid symbol") {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestCommandNowFetchFailure(t *testing.T) {
	withQuoteServer(t, map[string]string{})

	reply, err := CommandNow(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("CommandNow: %v", err)
	}
	if !strings.Contains(reply, "Could not fetch") {
		t.Fatalf("unexpected reply: %q", reply)
	}
}
