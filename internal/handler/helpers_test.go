package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/scf-launchpad/internal/client"
	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/logger"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
	"github.com/AlexZinkM/scf-launchpad/internal/portfolio"
	"github.com/AlexZinkM/scf-launchpad/internal/project"
	"github.com/AlexZinkM/scf-launchpad/internal/service"
	"github.com/AlexZinkM/scf-launchpad/internal/storage"
	"github.com/AlexZinkM/scf-launchpad/internal/wallet"
)

func testAddress(t *testing.T, seed byte) string {
	t.Helper()
	addr, err := common.EncodeStrKey(common.VersionAccountID, bytes.Repeat([]byte{seed}, 32))
	require.NoError(t, err)
	return addr
}

// fakeAdapter is an installed wallet that authorizes a fixed address unless it rejects.
type fakeAdapter struct {
	address string
	reject  error

	mu         sync.Mutex
	authorized bool
}

func (a *fakeAdapter) Type() wallet.Type             { return wallet.TypeFreighter }
func (a *fakeAdapter) Available(context.Context) bool { return true }
func (a *fakeAdapter) Network(context.Context) (network.Selection, error) {
	return network.Testnet, nil
}

func (a *fakeAdapter) Connect(context.Context) (wallet.Account, error) {
	if a.reject != nil {
		return wallet.Account{}, a.reject
	}
	a.mu.Lock()
	a.authorized = true
	a.mu.Unlock()
	return wallet.Account{Address: a.address}, nil
}

func (a *fakeAdapter) CurrentAccount(context.Context) (wallet.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.authorized {
		return wallet.Account{}, common.ErrNotConnected
	}
	return wallet.Account{Address: a.address}, nil
}

func (a *fakeAdapter) Sign(_ context.Context, xdr, passphrase string) (string, error) {
	return xdr + "|" + passphrase, nil
}

// backend fakes Horizon, Pinata and the IPFS gateway on one server.
type backend struct {
	*httptest.Server

	mu       sync.Mutex
	accounts map[string]string
	pins     []string
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{accounts: map[string]string{}}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

func (b *backend) setAccount(address, balances string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[address] = balances
}

func (b *backend) pinned() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.pins...)
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/pinning/pinFileToIPFS":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		doc, _ := io.ReadAll(f)
		b.mu.Lock()
		b.pins = append(b.pins, string(doc))
		b.mu.Unlock()
		w.Write([]byte(`{"IpfsHash": "QmTestHash", "PinSize": 42, "Timestamp": "2024-05-01T10:00:00Z"}`))
	case r.URL.Path == "/data/pinList":
		w.Write([]byte(`{"count": 1, "rows": [{"id": "1", "ipfs_pin_hash": "QmTestHash", "size": 42, "date_pinned": "2024-05-01T10:00:00Z", "metadata": {"name": "project-Solar"}}]}`))
	case r.URL.Path == "/ipfs/QmTestHash":
		w.Write([]byte(`{"name": "Solar"}`))
	case r.Method == http.MethodPost && r.URL.Path == "/transactions":
		w.Write([]byte(`{"hash": "abc123", "ledger": 77, "successful": true}`))
	case strings.HasPrefix(r.URL.Path, "/accounts/"):
		address, sub, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/accounts/"), "/")
		b.mu.Lock()
		balances, funded := b.accounts[address]
		b.mu.Unlock()
		if !funded {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"title": "Resource Missing", "status": 404}`))
			return
		}
		if sub == "transactions" {
			w.Write([]byte(`{"_embedded": {"records": [
				{"hash": "h1", "ledger": 10, "created_at": "2024-05-01T10:00:00Z", "source_account": "` + address + `", "fee_charged": "100", "operation_count": 1, "successful": true},
				{"hash": "h2", "ledger": 9, "created_at": "2024-04-01T10:00:00Z", "source_account": "` + address + `", "fee_charged": "200", "operation_count": 2, "successful": false}
			]}}`))
			return
		}
		w.Write([]byte(`{"id": "` + address + `", "account_id": "` + address + `", "sequence": "1", "balances": ` + balances + `}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// testEnv wires the services against the fake backend.
type testEnv struct {
	backend *backend
	nc      *network.Context
	adapter *fakeAdapter
	wallets *service.WalletService
	stellar *service.StellarService
	blend   *service.BlendService
	ipfs    *service.IPFSService
	store   *project.Store
	view    *portfolio.View
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.Test(t)
	b := newBackend(t)

	nc := network.NewContext(network.Endpoints{
		Testnet: network.Endpoint{HorizonURL: b.URL, RPCURL: b.URL, Contracts: network.DefaultTestnetContracts()},
		Mainnet: network.Endpoint{HorizonURL: b.URL, RPCURL: b.URL, Contracts: network.DefaultMainnetContracts()},
	}, network.Testnet)
	cfg := nc.Current()

	kv := storage.NewMemoryKV()
	fa := &fakeAdapter{address: testAddress(t, 9)}
	wallets := service.NewWalletService(cfg, map[wallet.Type]wallet.Adapter{
		wallet.TypeFreighter:     fa,
		wallet.TypeWalletConnect: wallet.WalletConnectAdapter{},
	}, kv, nil, log)
	stellar := service.NewStellarService(cfg, nil, nil, log)
	blend := service.NewBlendService(cfg, service.BlendOptions{Demo: service.SeededDemo{}}, nil, log)
	pinata := client.NewPinataClient(b.URL, b.URL, client.PinataCredentials{JWT: "test-jwt"})
	ipfs := service.NewIPFSService(pinata, 0, nil, log)

	registry := service.NewRegistry(stellar, blend, wallets, ipfs, nil, log)
	registry.Bind(nc)

	view := portfolio.New(nc, stellar, blend, nil, log)
	t.Cleanup(view.Close)

	return &testEnv{
		backend: b,
		nc:      nc,
		adapter: fa,
		wallets: wallets,
		stellar: stellar,
		blend:   blend,
		ipfs:    ipfs,
		store:   project.NewStore(kv, log),
		view:    view,
	}
}

func (e *testEnv) connect(t *testing.T) string {
	t.Helper()
	account, err := e.wallets.Connect(context.Background(), wallet.TypeFreighter)
	require.NoError(t, err)
	return account.Address
}

func do(t *testing.T, h http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func mustField(t *testing.T, rec *httptest.ResponseRecorder, name string) json.RawMessage {
	t.Helper()
	fields := decode[map[string]json.RawMessage](t, rec)
	v, ok := fields[name]
	require.True(t, ok, "missing field %s in %s", name, rec.Body.String())
	return v
}
