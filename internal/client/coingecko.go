package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	coingeckoAPI = "https://api.coingecko.com/api/v3"
	stellarCoin  = "stellar"
)

// CoinGeckoClient client for CoinGecko API
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
}

// NewCoinGeckoClient creates a new CoinGecko client. An empty baseURL uses the public API.
func NewCoinGeckoClient(baseURL string, opts ...Option) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = coingeckoAPI
	}
	return &CoinGeckoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(opts),
	}
}

// GetXLMRate gets the XLM exchange rate in currency (e.g. "usd")
func (c *CoinGeckoClient) GetXLMRate(ctx context.Context, currency string) (string, error) {
	currency = strings.ToLower(currency)
	q := url.Values{}
	q.Set("ids", stellarCoin)
	q.Set("vs_currencies", currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/simple/price?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get rate: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return "", fmt.Errorf("failed to read rate: %w", err)
	}

	rate := gjson.GetBytes(body, stellarCoin+"."+currency)
	if !rate.Exists() {
		return "", fmt.Errorf("rate for %s/%s missing in response", stellarCoin, currency)
	}
	return strconv.FormatFloat(rate.Float(), 'f', 6, 64), nil
}
