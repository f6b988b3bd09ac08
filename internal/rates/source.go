package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Quote is one entry of the bank feed: how many units of base currency
// buy one unit of Ccy. The feed serializes numbers as strings.
type Quote struct {
	Ccy     string  `json:"ccy"`
	BaseCcy string  `json:"base_ccy"`
	Buy     float64 `json:"buy,string"`
}

// Source provides the current quotes for supported currencies.
type Source interface {
	FetchQuotes(ctx context.Context) ([]Quote, error)
}

// Client fetches quotes over HTTP. Calls go through a circuit breaker so
// a flapping feed does not tie up refresh goroutines in timeouts.
type Client struct {
	url     string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]Quote]
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[[]Quote](gobreaker.Settings{
			Name: "rates-feed",
		}),
	}
}

func (c *Client) FetchQuotes(ctx context.Context) ([]Quote, error) {
	return c.breaker.Execute(func() ([]Quote, error) {
		return c.fetch(ctx)
	})
}

func (c *Client) fetch(ctx context.Context) ([]Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("rates feed returned status %d", resp.StatusCode)
	}

	var quotes []Quote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("decode rates payload: %w", err)
	}

	return quotes, nil
}
