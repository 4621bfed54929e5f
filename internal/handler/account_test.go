package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/scf-launchpad/internal/model"
)

const fundedBalances = `[
	{"balance": "100.5000000", "asset_type": "native"},
	{"balance": "25.0000000", "limit": "1000.0000000", "asset_type": "credit_alphanum4", "asset_code": "USDC", "asset_issuer": "GISSUER"}
]`

func TestBalancesForQueryAddress(t *testing.T) {
	env := newTestEnv(t)
	addr := testAddress(t, 1)
	env.backend.setAccount(addr, fundedBalances)
	h := NewAccountHandler(env.stellar, env.wallets)

	rec := do(t, h.Balances, http.MethodGet, "/account/balances?address="+addr, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[model.BalancesResponse](t, rec)
	assert.Equal(t, addr, resp.Address)
	assert.Equal(t, "testnet", resp.Network)
	require.Len(t, resp.Balances, 2)
	assert.Equal(t, "XLM", resp.Balances[0].Asset)
	assert.Nil(t, resp.Balances[0].Limit)
	assert.Equal(t, "USDC", resp.Balances[1].Asset)
}

func TestBalancesForConnectedWallet(t *testing.T) {
	env := newTestEnv(t)
	addr := env.connect(t)
	env.backend.setAccount(addr, fundedBalances)
	h := NewAccountHandler(env.stellar, env.wallets)

	rec := do(t, h.Balances, http.MethodGet, "/account/balances", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, addr, decode[model.BalancesResponse](t, rec).Address)
}

func TestBalancesUnfundedAccountIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	h := NewAccountHandler(env.stellar, env.wallets)

	rec := do(t, h.Balances, http.MethodGet, "/account/balances?address="+testAddress(t, 2), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(mustField(t, rec, "balances")))
}

func TestBalancesErrors(t *testing.T) {
	env := newTestEnv(t)
	h := NewAccountHandler(env.stellar, env.wallets)

	rec := do(t, h.Balances, http.MethodGet, "/account/balances?address=GNOTANADDRESS", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ADDRESS", decode[model.ErrorResponse](t, rec).Code)

	rec = do(t, h.Balances, http.MethodGet, "/account/balances", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "NOT_CONNECTED", decode[model.ErrorResponse](t, rec).Code)
}

func TestSummaryWithoutRateSource(t *testing.T) {
	env := newTestEnv(t)
	addr := testAddress(t, 1)
	env.backend.setAccount(addr, fundedBalances)
	h := NewAccountHandler(env.stellar, env.wallets)

	rec := do(t, h.Summary, http.MethodGet, "/account/summary?address="+addr, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[model.AccountSummary](t, rec)
	assert.Equal(t, "100.5000000", resp.XLM)
	assert.Empty(t, resp.Rate)
	assert.Empty(t, resp.XLMInUSD)
}

func TestTransactionsFilters(t *testing.T) {
	env := newTestEnv(t)
	addr := testAddress(t, 1)
	env.backend.setAccount(addr, fundedBalances)
	h := NewAccountHandler(env.stellar, env.wallets)

	rec := do(t, h.Transactions, http.MethodGet, "/account/transactions?address="+addr, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	all := decode[model.TransactionsResponse](t, rec)
	assert.Len(t, all.Transactions, 2)
	assert.Equal(t, "0.0000300", all.TotalFeesXLM)

	rec = do(t, h.Transactions, http.MethodGet, "/account/transactions?successful=true&address="+addr, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ok := decode[model.TransactionsResponse](t, rec)
	require.Len(t, ok.Transactions, 1)
	assert.Equal(t, "h1", ok.Transactions[0].Hash)

	rec = do(t, h.Transactions, http.MethodGet, "/account/transactions?from=2024-04-15&to=2024-05-01&address="+addr, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	inRange := decode[model.TransactionsResponse](t, rec)
	require.Len(t, inRange.Transactions, 1)
	assert.Equal(t, "h1", inRange.Transactions[0].Hash)
}

func TestTransactionsRejectsBadQuery(t *testing.T) {
	env := newTestEnv(t)
	h := NewAccountHandler(env.stellar, env.wallets)
	addr := testAddress(t, 1)

	for _, q := range []string{
		"from=01-05-2024",
		"to=yesterday",
		"successful=maybe",
		"limit=ten",
		"limit=500",
		"from=2024-05-02&to=2024-05-01",
		"minFee=2&maxFee=1",
	} {
		rec := do(t, h.Transactions, http.MethodGet, "/account/transactions?address="+addr+"&"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestSubmit(t *testing.T) {
	env := newTestEnv(t)
	h := NewAccountHandler(env.stellar, env.wallets)

	rec := do(t, h.Submit, http.MethodPost, "/transactions/submit", model.SubmitRequest{SignedXDR: "AAAA"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[model.SubmitResponse](t, rec)
	assert.Equal(t, "abc123", resp.Hash)
	assert.Equal(t, int64(77), resp.Ledger)

	rec = do(t, h.Submit, http.MethodPost, "/transactions/submit", model.SubmitRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
