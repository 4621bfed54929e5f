package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// HorizonClient is a client for the Stellar Horizon REST API
type HorizonClient struct {
	baseURL string
	client  *http.Client
}

// Option configures an outbound client.
type Option func(*http.Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *http.Client) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithTransport sets the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *http.Client) {
		c.Transport = rt
	}
}

func newHTTPClient(opts []Option) *http.Client {
	c := &http.Client{Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHorizonClient creates a new Horizon client for baseURL
func NewHorizonClient(baseURL string, opts ...Option) *HorizonClient {
	return &HorizonClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(opts),
	}
}

// BaseURL returns the Horizon server the client talks to.
func (c *HorizonClient) BaseURL() string {
	return c.baseURL
}

// HorizonBalance is one entry of an account's balances
type HorizonBalance struct {
	Balance     string `json:"balance"`
	Limit       string `json:"limit,omitempty"`
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code,omitempty"`
	AssetIssuer string `json:"asset_issuer,omitempty"`
	LiquidityID string `json:"liquidity_pool_id,omitempty"`
}

// HorizonAccount is the account resource
type HorizonAccount struct {
	ID            string           `json:"id"`
	AccountID     string           `json:"account_id"`
	Sequence      string           `json:"sequence"`
	SubentryCount int              `json:"subentry_count"`
	Balances      []HorizonBalance `json:"balances"`
}

// HorizonTransaction is a transaction record
type HorizonTransaction struct {
	ID             string    `json:"id"`
	Hash           string    `json:"hash"`
	Ledger         int64     `json:"ledger"`
	CreatedAt      time.Time `json:"created_at"`
	SourceAccount  string    `json:"source_account"`
	FeeCharged     string    `json:"fee_charged"`
	OperationCount int       `json:"operation_count"`
	MemoType       string    `json:"memo_type"`
	Memo           string    `json:"memo,omitempty"`
	Successful     bool      `json:"successful"`
}

type transactionsPage struct {
	Embedded struct {
		Records []HorizonTransaction `json:"records"`
	} `json:"_embedded"`
}

// SubmitResult is the response of a successful transaction submission
type SubmitResult struct {
	Hash       string `json:"hash"`
	Ledger     int64  `json:"ledger"`
	Successful bool   `json:"successful"`
}

// GetAccount loads an account. A missing account returns common.ErrAccountNotFound.
func (c *HorizonClient) GetAccount(ctx context.Context, address string) (*HorizonAccount, error) {
	var account HorizonAccount
	if err := c.get(ctx, "/accounts/"+url.PathEscape(address), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetTransactions loads the newest transactions of an account.
func (c *HorizonClient) GetTransactions(ctx context.Context, address string, limit int) ([]HorizonTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	q := url.Values{}
	q.Set("order", "desc")
	q.Set("limit", strconv.Itoa(limit))

	var page transactionsPage
	path := "/accounts/" + url.PathEscape(address) + "/transactions?" + q.Encode()
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return page.Embedded.Records, nil
}

// SubmitTransaction submits a signed base64 XDR envelope.
func (c *HorizonClient) SubmitTransaction(ctx context.Context, signedXDR string) (*SubmitResult, error) {
	form := url.Values{}
	form.Set("tx", signedXDR)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: %s", common.ErrSubmitFailed, describeProblem(resp.StatusCode, body))
	}

	var result SubmitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", common.ErrSubmitFailed, err)
	}
	return &result, nil
}

func (c *HorizonClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrAccountNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s", common.ErrFetchFailed, describeProblem(resp.StatusCode, body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", common.ErrFetchFailed, err)
	}
	return nil
}

// describeProblem renders a Horizon problem+json body, including result codes when present.
func describeProblem(status int, body []byte) string {
	if !gjson.ValidBytes(body) {
		return fmt.Sprintf("status %d", status)
	}
	doc := gjson.ParseBytes(body)

	msg := doc.Get("title").String()
	if msg == "" {
		msg = fmt.Sprintf("status %d", status)
	}
	if detail := doc.Get("detail").String(); detail != "" && !strings.Contains(msg, detail) {
		msg += ": " + detail
	}

	codes := []string{}
	if tx := doc.Get("extras.result_codes.transaction").String(); tx != "" {
		codes = append(codes, tx)
	}
	doc.Get("extras.result_codes.operations").ForEach(func(_, op gjson.Result) bool {
		codes = append(codes, op.String())
		return true
	})
	if len(codes) > 0 {
		msg += " [" + strings.Join(codes, ", ") + "]"
	}
	return msg
}
