package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

func testAddress(t *testing.T, seed byte) string {
	t.Helper()
	addr, err := common.EncodeStrKey(common.VersionAccountID, bytes.Repeat([]byte{seed}, 32))
	require.NoError(t, err)
	return addr
}

func testContract(t *testing.T, seed byte) string {
	t.Helper()
	addr, err := common.EncodeStrKey(common.VersionContract, bytes.Repeat([]byte{seed}, 32))
	require.NoError(t, err)
	return addr
}

func testContracts(t *testing.T, base byte) network.Contracts {
	return network.Contracts{
		PoolFactory: testContract(t, base),
		Backstop:    testContract(t, base+1),
		Emitter:     testContract(t, base+2),
		BLND:        testContract(t, base+3),
		USDC:        testContract(t, base+4),
		XLM:         testContract(t, base+5),
		WETH:        testContract(t, base+6),
		WBTC:        testContract(t, base+7),
	}
}

// fakeHorizon serves accounts, transactions and submissions and counts every request.
type fakeHorizon struct {
	*httptest.Server

	hits atomic.Int32

	mu       sync.Mutex
	accounts map[string]string
	txs      map[string]string
	status   int
	submit   string
	// gate, when set, blocks account reads until closed.
	gate chan struct{}
}

func newFakeHorizon(t *testing.T) *fakeHorizon {
	t.Helper()
	f := &fakeHorizon{accounts: map[string]string{}, txs: map[string]string{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeHorizon) setAccount(address, balances string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[address] = balances
}

func (f *fakeHorizon) setTransactions(address, records string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txs[address] = records
}

func (f *fakeHorizon) setStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

func (f *fakeHorizon) setGate(gate chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = gate
}

func (f *fakeHorizon) serve(w http.ResponseWriter, r *http.Request) {
	f.hits.Add(1)
	f.mu.Lock()
	status, gate, submit := f.status, f.gate, f.submit
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if status != 0 {
		w.WriteHeader(status)
		w.Write([]byte(`{"title": "Forced failure"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodPost && r.URL.Path == "/transactions" {
		w.Write([]byte(submit))
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/accounts/")
	address, sub, _ := strings.Cut(rest, "/")

	f.mu.Lock()
	balances, funded := f.accounts[address]
	records := f.txs[address]
	f.mu.Unlock()

	if !funded {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title": "Resource Missing", "status": 404}`))
		return
	}
	if sub == "transactions" {
		if records == "" {
			records = "[]"
		}
		w.Write([]byte(`{"_embedded": {"records": ` + records + `}}`))
		return
	}
	w.Write([]byte(`{"id": "` + address + `", "account_id": "` + address + `", "sequence": "1", "balances": ` + balances + `}`))
}

func rpcServer(t *testing.T, results map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     uint64 `json:"id"`
			Method string `json:"method"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if res, ok := results[req.Method]; ok {
			resp["result"] = res
		} else {
			resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// testNetworks returns a network context whose testnet and mainnet point at separate fake servers.
func testNetworks(t *testing.T, testnet, mainnet *fakeHorizon) *network.Context {
	t.Helper()
	return network.NewContext(network.Endpoints{
		Testnet: network.Endpoint{HorizonURL: testnet.URL, RPCURL: testnet.URL, Contracts: testContracts(t, 10)},
		Mainnet: network.Endpoint{HorizonURL: mainnet.URL, RPCURL: mainnet.URL, Contracts: testContracts(t, 30)},
	}, network.Testnet)
}
