package service

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/logger"
	"github.com/AlexZinkM/scf-launchpad/internal/metrics"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
	"github.com/AlexZinkM/scf-launchpad/internal/storage"
	"github.com/AlexZinkM/scf-launchpad/internal/wallet"
)

// fakeAdapter is an always-installed wallet that authorizes a fixed address.
type fakeAdapter struct {
	address    string
	authorized atomic.Bool
	connects   atomic.Int32
}

func (a *fakeAdapter) Type() wallet.Type             { return wallet.TypeFreighter }
func (a *fakeAdapter) Available(context.Context) bool { return true }
func (a *fakeAdapter) Network(context.Context) (network.Selection, error) {
	return network.Testnet, nil
}

func (a *fakeAdapter) Connect(context.Context) (wallet.Account, error) {
	a.connects.Add(1)
	a.authorized.Store(true)
	return wallet.Account{Address: a.address}, nil
}

func (a *fakeAdapter) CurrentAccount(context.Context) (wallet.Account, error) {
	if !a.authorized.Load() {
		return wallet.Account{}, common.ErrNotConnected
	}
	return wallet.Account{Address: a.address}, nil
}

func (a *fakeAdapter) Sign(_ context.Context, xdr, passphrase string) (string, error) {
	return xdr + "|" + passphrase, nil
}

func newWalletService(t *testing.T, kv storage.KV, m *metrics.Metrics) (*WalletService, *fakeAdapter) {
	t.Helper()
	fa := &fakeAdapter{address: testAddress(t, 9)}
	adapters := map[wallet.Type]wallet.Adapter{
		wallet.TypeFreighter:     fa,
		wallet.TypeWalletConnect: wallet.WalletConnectAdapter{},
	}
	cfg := network.NewContext(network.DefaultEndpoints(), network.Testnet).Current()
	return NewWalletService(cfg, adapters, kv, m, logger.Test(t)), fa
}

func TestWalletConnectPersistsType(t *testing.T) {
	kv := storage.NewMemoryKV()
	m := metrics.New()
	s, fa := newWalletService(t, kv, m)
	ctx := context.Background()

	account, err := s.Connect(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, fa.address, account.Address)
	assert.Equal(t, wallet.TypeFreighter, s.WalletType())
	assert.True(t, s.Snapshot().IsConnected)

	saved, err := kv.Get(ctx, WalletTypeKey)
	require.NoError(t, err)
	assert.Equal(t, "freighter", string(saved))

	count, err := testutil.GatherAndCount(m.Registry(), "scf_launchpad_wallet_connects_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWalletConnectUnsupported(t *testing.T) {
	s, _ := newWalletService(t, storage.NewMemoryKV(), nil)
	ctx := context.Background()

	_, err := s.Connect(ctx, wallet.TypeWalletConnect)
	assert.ErrorIs(t, err, common.ErrNotImplemented)
	assert.False(t, s.Snapshot().IsConnected)

	_, err = s.Connect(ctx, "ledger")
	assert.Error(t, err)
}

func TestWalletDisconnectForgetsType(t *testing.T) {
	kv := storage.NewMemoryKV()
	s, fa := newWalletService(t, kv, nil)
	ctx := context.Background()

	_, err := s.Connect(ctx, wallet.TypeFreighter)
	require.NoError(t, err)
	s.Disconnect(ctx)

	snap := s.Snapshot()
	assert.False(t, snap.IsConnected)
	assert.Empty(t, snap.Address)
	assert.Empty(t, s.WalletType())
	_, err = kv.Get(ctx, WalletTypeKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// A later start must not reconnect on its own.
	next, _ := newWalletService(t, kv, nil)
	assert.False(t, next.Restore(ctx))
	assert.EqualValues(t, 1, fa.connects.Load())
}

func TestWalletRestoreSavedType(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, WalletTypeKey, []byte("freighter")))

	s, fa := newWalletService(t, kv, nil)
	assert.False(t, s.Restore(ctx), "not authorized yet")

	fa.authorized.Store(true)
	require.True(t, s.Restore(ctx))
	assert.Equal(t, fa.address, s.Snapshot().Address)
	assert.Zero(t, fa.connects.Load(), "restore never prompts")
}

func TestWalletRestoreIgnoresGarbage(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, WalletTypeKey, []byte("metamask")))

	s, _ := newWalletService(t, kv, nil)
	assert.False(t, s.Restore(ctx))
	assert.Empty(t, s.WalletType())
}

func TestWalletSignUsesBinding(t *testing.T) {
	s, _ := newWalletService(t, storage.NewMemoryKV(), nil)
	ctx := context.Background()

	_, err := s.SignTransaction(ctx, "AAAA")
	assert.ErrorIs(t, err, common.ErrNotConnected)

	_, err = s.Connect(ctx, wallet.TypeFreighter)
	require.NoError(t, err)
	signed, err := s.SignTransaction(ctx, "AAAA")
	require.NoError(t, err)
	assert.Equal(t, "AAAA|"+network.TestnetPassphrase, signed.XDR)
}
