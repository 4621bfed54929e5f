package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/logger"
	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
	"github.com/AlexZinkM/scf-launchpad/internal/service"
	"github.com/AlexZinkM/scf-launchpad/internal/storage"
	"github.com/AlexZinkM/scf-launchpad/internal/wallet"
)

func TestWalletConnectAndDisconnect(t *testing.T) {
	env := newTestEnv(t)
	h := NewWalletHandler(env.wallets)

	rec := do(t, h.Get, http.MethodGet, "/wallet", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[wallet.Snapshot](t, rec).IsConnected)

	rec = do(t, h.Connect, http.MethodPost, "/wallet/connect", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	snap := decode[wallet.Snapshot](t, rec)
	assert.True(t, snap.IsConnected)
	assert.Equal(t, env.adapter.address, snap.Address)
	assert.Equal(t, wallet.TypeFreighter, snap.WalletType)

	rec = do(t, h.Disconnect, http.MethodPost, "/wallet/disconnect", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap = decode[wallet.Snapshot](t, rec)
	assert.False(t, snap.IsConnected)
	assert.True(t, snap.ManuallyDisconnected)
}

func TestWalletConnectRejected(t *testing.T) {
	env := newTestEnv(t)
	env.adapter.reject = common.ErrConnectionRejected
	h := NewWalletHandler(env.wallets)

	rec := do(t, h.Connect, http.MethodPost, "/wallet/connect", model.ConnectRequest{WalletType: "freighter"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	resp := decode[model.ErrorResponse](t, rec)
	assert.Equal(t, "CONNECTION_REJECTED", resp.Code)
	assert.True(t, resp.Retryable)
	assert.False(t, env.wallets.Snapshot().IsConnected)
}

func TestWalletConnectUnsupportedType(t *testing.T) {
	env := newTestEnv(t)
	h := NewWalletHandler(env.wallets)

	rec := do(t, h.Connect, http.MethodPost, "/wallet/connect", model.ConnectRequest{WalletType: "walletConnect"})
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, "NOT_IMPLEMENTED", decode[model.ErrorResponse](t, rec).Code)

	rec = do(t, h.Connect, http.MethodPost, "/wallet/connect", model.ConnectRequest{WalletType: "ledger"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWalletSignRequiresConnection(t *testing.T) {
	env := newTestEnv(t)
	h := NewWalletHandler(env.wallets)

	rec := do(t, h.Sign, http.MethodPost, "/wallet/sign", model.SignRequest{XDR: "AAAA"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "NOT_CONNECTED", decode[model.ErrorResponse](t, rec).Code)
}

func TestWalletSignUsesActivePassphrase(t *testing.T) {
	env := newTestEnv(t)
	env.connect(t)
	h := NewWalletHandler(env.wallets)

	rec := do(t, h.Sign, http.MethodPost, "/wallet/sign", model.SignRequest{XDR: "AAAA"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[model.SignResponse](t, rec)
	assert.Equal(t, "AAAA|"+network.TestnetPassphrase, resp.SignedXDR)
	assert.Equal(t, "testnet", resp.Network)
	assert.Equal(t, network.TestnetPassphrase, resp.NetworkPassphrase)
}

func TestWalletSignRefusesNetworkMismatch(t *testing.T) {
	env := newTestEnv(t)
	env.connect(t)
	env.nc.Set(network.Mainnet)
	h := NewWalletHandler(env.wallets)

	// the fake wallet stays on testnet while the app moved to mainnet
	rec := do(t, h.Sign, http.MethodPost, "/wallet/sign", model.SignRequest{XDR: "AAAA"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "SIGNING_FAILED", decode[model.ErrorResponse](t, rec).Code)
}

func TestWalletSignValidation(t *testing.T) {
	env := newTestEnv(t)
	h := NewWalletHandler(env.wallets)

	rec := do(t, h.Sign, http.MethodPost, "/wallet/sign", model.SignRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h.Sign, http.MethodGet, "/wallet/sign", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWalletDisconnectForgetsType(t *testing.T) {
	env := newTestEnv(t)
	env.connect(t)
	h := NewWalletHandler(env.wallets)

	do(t, h.Disconnect, http.MethodPost, "/wallet/disconnect", nil)
	assert.False(t, env.wallets.Restore(context.Background()))
}

func TestWalletConnectWithoutExtensionLinksInstall(t *testing.T) {
	log := logger.Test(t)
	cfg := network.NewContext(network.DefaultEndpoints(), network.Testnet).Current()
	wallets := service.NewWalletService(cfg, wallet.DefaultAdapters(nil), storage.NewMemoryKV(), nil, log)
	h := NewWalletHandler(wallets)

	rec := do(t, h.Connect, http.MethodPost, "/wallet/connect", nil)
	require.Equal(t, http.StatusPreconditionFailed, rec.Code, rec.Body.String())
	resp := decode[model.ErrorResponse](t, rec)
	assert.Equal(t, "WALLET_NOT_INSTALLED", resp.Code)
	assert.Equal(t, common.FreighterInstallURL, resp.InstallURL)

	rec = do(t, h.Connect, http.MethodPost, "/wallet/connect", model.ConnectRequest{WalletType: string(wallet.TypeWalletConnect)})
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
