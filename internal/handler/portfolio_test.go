package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/scf-launchpad/internal/portfolio"
)

func TestPortfolioRefresh(t *testing.T) {
	env := newTestEnv(t)
	addr := env.connect(t)
	env.backend.setAccount(addr, fundedBalances)
	h := NewPortfolioHandler(env.view, env.wallets)

	rec := do(t, h.Get, http.MethodGet, "/portfolio", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[portfolio.State](t, rec).Balances)

	rec = do(t, h.Refresh, http.MethodPost, "/portfolio/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	state := decode[portfolio.State](t, rec)
	assert.Equal(t, addr, state.Address)
	assert.Len(t, state.Balances, 2)
	assert.NotEmpty(t, state.Positions)
	assert.False(t, state.LoadingBalances)
	assert.False(t, state.LoadingPositions)
	assert.Nil(t, state.BalancesError)
	assert.NotNil(t, state.UpdatedAt)
}

func TestPortfolioRefreshReportsBalanceError(t *testing.T) {
	env := newTestEnv(t)
	h := NewPortfolioHandler(env.view, env.wallets)

	rec := do(t, h.Refresh, http.MethodPost, "/portfolio/refresh?address=GBAD", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	state := decode[portfolio.State](t, rec)
	require.NotNil(t, state.BalancesError)
	assert.Equal(t, "INVALID_ADDRESS", state.BalancesError.Code)
	assert.False(t, state.LoadingBalances)
	assert.False(t, state.LoadingPositions)
}

func TestPortfolioRefreshRequiresWallet(t *testing.T) {
	env := newTestEnv(t)
	h := NewPortfolioHandler(env.view, env.wallets)

	rec := do(t, h.Refresh, http.MethodPost, "/portfolio/refresh", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h.Refresh, http.MethodGet, "/portfolio/refresh", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPortfolioRefreshAfterClose(t *testing.T) {
	env := newTestEnv(t)
	env.connect(t)
	env.view.Close()
	h := NewPortfolioHandler(env.view, env.wallets)

	rec := do(t, h.Refresh, http.MethodPost, "/portfolio/refresh", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
