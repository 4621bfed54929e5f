package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/service"
)

// AccountHandler serves ledger reads for an account on the active network
type AccountHandler struct {
	stellar *service.StellarService
	wallets *service.WalletService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(stellar *service.StellarService, wallets *service.WalletService) *AccountHandler {
	return &AccountHandler{stellar: stellar, wallets: wallets}
}

// Balances handles GET /account/balances
// @Summary      Account balances
// @Description  Lists the balances of an account. An unfunded account has no balances.
// @Tags         account
// @Produce      json
// @Param        address  query     string  false  "Account address (default: connected wallet)"
// @Success      200      {object}  model.BalancesResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /account/balances [get]
func (h *AccountHandler) Balances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	address, err := resolveAddress(r, h.wallets)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.stellar.AccountBalances(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.BalancesResponse{
		Address:  address,
		Network:  string(res.Network),
		Epoch:    res.Epoch,
		Balances: res.Value,
	})
}

// Summary handles GET /account/summary
// @Summary      Account summary (USD = XLM * rate)
// @Description  Gets the balances with the XLM amount priced in USD. The USD value is empty when the price feed fails.
// @Tags         account
// @Produce      json
// @Param        address  query     string  false  "Account address (default: connected wallet)"
// @Success      200      {object}  model.AccountSummary
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /account/summary [get]
func (h *AccountHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	address, err := resolveAddress(r, h.wallets)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.stellar.AccountSummary(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Value)
}

// Transactions handles GET /account/transactions
// @Summary      Transaction history
// @Description  Gets the newest transactions of an account with optional filters. Dates: YYYY-MM-DD, to is inclusive.
// @Tags         account
// @Produce      json
// @Param        address     query     string  false  "Account address (default: connected wallet)"
// @Param        hash        query     string  false  "Transaction hash"
// @Param        from        query     string  false  "From date (YYYY-MM-DD)"
// @Param        to          query     string  false  "To date (YYYY-MM-DD)"
// @Param        minFee      query     string  false  "Minimum fee in XLM"
// @Param        maxFee      query     string  false  "Maximum fee in XLM"
// @Param        successful  query     bool    false  "Only successful or only failed transactions"
// @Param        limit       query     int     false  "Page size requested from Horizon (max 200)"
// @Success      200         {object}  model.TransactionsResponse
// @Failure      400         {object}  model.ErrorResponse
// @Failure      502         {object}  model.ErrorResponse
// @Router       /account/transactions [get]
func (h *AccountHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	var req model.TransactionFilter
	q := r.URL.Query()

	const dateLayout = "2006-01-02"
	if fromStr := q.Get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			writeBadRequest(w, "invalid from date: use YYYY-MM-DD (e.g. 2006-01-02)")
			return
		}
		req.From = &t
	}
	if toStr := q.Get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			writeBadRequest(w, "invalid to date: use YYYY-MM-DD (e.g. 2006-01-02)")
			return
		}
		// End of day so filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		req.To = &t
	}

	if hash := q.Get("hash"); hash != "" {
		req.Hash = &hash
	}
	if minFee := q.Get("minFee"); minFee != "" {
		req.MinFee = &minFee
	}
	if maxFee := q.Get("maxFee"); maxFee != "" {
		req.MaxFee = &maxFee
	}
	if s := q.Get("successful"); s != "" {
		ok, err := strconv.ParseBool(s)
		if err != nil {
			writeBadRequest(w, "invalid successful: use true or false")
			return
		}
		req.Successful = &ok
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeBadRequest(w, "invalid limit")
			return
		}
		req.Limit = n
	}

	if err := req.Validate(); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	address, err := resolveAddress(r, h.wallets)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.stellar.Transactions(r.Context(), address, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Value)
}

// Submit handles POST /transactions/submit
// @Summary      Submit signed transaction
// @Description  Submits a signed envelope to Horizon of the active network
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request  body      model.SubmitRequest  true  "Signed envelope"
// @Success      200      {object}  model.SubmitResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Router       /transactions/submit [post]
func (h *AccountHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.SignedXDR) == "" {
		writeBadRequest(w, "signedXdr is required")
		return
	}

	res, err := h.stellar.Submit(r.Context(), req.SignedXDR)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Value)
}
