package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
)

// SorobanClient is a Soroban JSON-RPC 2.0 client.
type SorobanClient struct {
	endpoint  string
	client    *http.Client
	requestID atomic.Uint64
}

// NewSorobanClient creates a new Soroban RPC client for endpoint.
func NewSorobanClient(endpoint string, opts ...Option) *SorobanClient {
	return &SorobanClient{
		endpoint: endpoint,
		client:   newHTTPClient(opts),
	}
}

// Endpoint returns the RPC endpoint the client talks to.
func (c *SorobanClient) Endpoint() string {
	return c.endpoint
}

// rpcRequest represents a JSON-RPC 2.0 request.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// rpcResponse represents a JSON-RPC 2.0 response.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC 2.0 error.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// Health is the result of getHealth.
type Health struct {
	Status                string `json:"status"`
	LatestLedger          uint32 `json:"latestLedger"`
	OldestLedger          uint32 `json:"oldestLedger"`
	LedgerRetentionWindow uint32 `json:"ledgerRetentionWindow"`
}

// NetworkInfo is the result of getNetwork.
type NetworkInfo struct {
	FriendbotURL    string `json:"friendbotUrl,omitempty"`
	Passphrase      string `json:"passphrase"`
	ProtocolVersion int    `json:"protocolVersion"`
}

// LatestLedger is the result of getLatestLedger.
type LatestLedger struct {
	ID              string `json:"id"`
	ProtocolVersion int    `json:"protocolVersion"`
	Sequence        uint32 `json:"sequence"`
}

// LedgerEntry is one entry of a getLedgerEntries result.
type LedgerEntry struct {
	Key                   string  `json:"key"`
	XDR                   string  `json:"xdr"`
	LastModifiedLedgerSeq uint32  `json:"lastModifiedLedgerSeq"`
	LiveUntilLedgerSeq    *uint32 `json:"liveUntilLedgerSeq,omitempty"`
}

type ledgerEntriesResult struct {
	Entries      []LedgerEntry `json:"entries"`
	LatestLedger uint32        `json:"latestLedger"`
}

// GetHealth reports the RPC node health.
func (c *SorobanClient) GetHealth(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.call(ctx, "getHealth", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// GetNetwork reports the network the RPC node serves.
func (c *SorobanClient) GetNetwork(ctx context.Context) (*NetworkInfo, error) {
	var n NetworkInfo
	if err := c.call(ctx, "getNetwork", nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// GetLatestLedger returns the latest closed ledger.
func (c *SorobanClient) GetLatestLedger(ctx context.Context) (*LatestLedger, error) {
	var l LatestLedger
	if err := c.call(ctx, "getLatestLedger", nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// GetLedgerEntries loads ledger entries for base64 XDR LedgerKeys. Missing keys are absent from the result.
func (c *SorobanClient) GetLedgerEntries(ctx context.Context, keys []string) ([]LedgerEntry, error) {
	var res ledgerEntriesResult
	if err := c.call(ctx, "getLedgerEntries", map[string]any{"keys": keys}, &res); err != nil {
		return nil, err
	}
	return res.Entries, nil
}

// call performs a single JSON-RPC call.
func (c *SorobanClient) call(ctx context.Context, method string, params any, result any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrFetchFailed, method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s: HTTP %d: %s", common.ErrFetchFailed, method, resp.StatusCode, string(b))
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("%w: %s: decode response: %v", common.ErrFetchFailed, method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrFetchFailed, method, rpcResp.Error)
	}
	if result != nil && len(rpcResp.Result) > 0 {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("%w: %s: unmarshal result: %v", common.ErrFetchFailed, method, err)
		}
	}
	return nil
}

// XDR constants of the LedgerKey for a contract instance.
const (
	ledgerEntryTypeContractData      = 6
	scAddressTypeContract            = 1
	scvLedgerKeyContractInstance     = 20
	contractDataDurabilityPersistent = 1
)

// ContractInstanceKey returns the base64 XDR LedgerKey of a contract's instance entry.
// The entry exists exactly when the contract is deployed.
func ContractInstanceKey(contractID string) (string, error) {
	hash, err := common.DecodeStrKey(common.VersionContract, contractID)
	if err != nil {
		return "", err
	}

	key := make([]byte, 0, 4+4+len(hash)+4+4)
	key = binary.BigEndian.AppendUint32(key, ledgerEntryTypeContractData)
	key = binary.BigEndian.AppendUint32(key, scAddressTypeContract)
	key = append(key, hash...)
	key = binary.BigEndian.AppendUint32(key, scvLedgerKeyContractInstance)
	key = binary.BigEndian.AppendUint32(key, contractDataDurabilityPersistent)
	return base64.StdEncoding.EncodeToString(key), nil
}
