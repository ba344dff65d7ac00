package price

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.binance.com/api/v3/ticker/price"
	requestTimeout = 10 * time.Second
)

// Client fetches last-traded prices from the Binance ticker endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. The caller owns the
// client's timeout in that case.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL points the client at a different quote endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a quote client with a 10 second request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tickerResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// Fetch returns the latest price for one symbol.
func (c *Client) Fetch(ctx context.Context, symbol string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return 0, errors.Wrap(err, "could not build price request")
	}
	query := url.Values{}
	query.Set("symbol", symbol)
	req.URL.RawQuery = query.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "price request for %s failed", symbol)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.Errorf("price request for %s returned status %d", symbol, resp.StatusCode)
	}

	var ticker tickerResponse
	if err := json.NewDecoder(resp.Body).Decode(&ticker); err != nil {
		return 0, errors.Wrapf(err, "could not decode price response for %s", symbol)
	}

	value, err := decimal.NewFromString(ticker.Price)
	if err != nil {
		return 0, errors.Wrapf(err, "malformed price %q for %s", ticker.Price, symbol)
	}
	return value.InexactFloat64(), nil
}

// FetchMany fetches each distinct symbol once. A failed symbol is logged and
// left out of the result so the rest of the batch still completes.
func (c *Client) FetchMany(ctx context.Context, symbols []string) map[string]float64 {
	prices := make(map[string]float64, len(symbols))
	fetched := make(map[string]bool, len(symbols))
	for _, symbol := range symbols {
		if fetched[symbol] {
			continue
		}
		fetched[symbol] = true

		value, err := c.Fetch(ctx, symbol)
		if err != nil {
			log.Errorf("❌ Failed to fetch price for %s: %v", symbol, err)
			continue
		}
		prices[symbol] = value
	}
	return prices
}
