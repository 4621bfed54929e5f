package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
)

// fakeExtension is a scriptable Freighter-compatible extension.
type fakeExtension struct {
	mu sync.Mutex

	installed  bool
	allowed    bool
	grant      bool
	reject     bool
	address    json.RawMessage
	network    json.RawMessage
	signErr    error
	gate       chan struct{}
	prompts    atomic.Int32
	signed     []string
	passphrase string
}

func newFakeExtension(t *testing.T) *fakeExtension {
	t.Helper()
	return &fakeExtension{
		installed: true,
		allowed:   true,
		grant:     true,
		address:   json.RawMessage(`{"address":"` + testAddress(t, 1) + `"}`),
		network:   json.RawMessage(`"TESTNET"`),
	}
}

func (f *fakeExtension) IsConnected(context.Context) (bool, error) {
	return f.installed, nil
}

func (f *fakeExtension) IsAllowed(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allowed, nil
}

func (f *fakeExtension) SetAllowed(context.Context) (bool, error) {
	f.prompts.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allowed = f.grant
	return f.grant, nil
}

func (f *fakeExtension) RequestAccess(ctx context.Context) (json.RawMessage, error) {
	f.prompts.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.reject {
		return nil, errors.New("User declined access")
	}
	return f.address, nil
}

func (f *fakeExtension) GetAddress(context.Context) (json.RawMessage, error) {
	return f.address, nil
}

func (f *fakeExtension) GetNetwork(context.Context) (json.RawMessage, error) {
	return f.network, nil
}

func (f *fakeExtension) SignTransaction(_ context.Context, xdr, passphrase string) (json.RawMessage, error) {
	if f.signErr != nil {
		return nil, f.signErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signed = append(f.signed, xdr)
	f.passphrase = passphrase
	return json.RawMessage(`{"signedTxXdr":"signed:` + xdr + `"}`), nil
}

func testAddress(t *testing.T, seed byte) string {
	t.Helper()
	payload := make([]byte, 32)
	for i := range payload {
		payload[i] = seed + byte(i)
	}
	addr, err := common.EncodeStrKey(common.VersionAccountID, payload)
	require.NoError(t, err)
	return addr
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}
