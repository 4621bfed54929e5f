package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/service"
	"github.com/AlexZinkM/scf-launchpad/internal/wallet"
)

// WalletHandler drives the wallet session
type WalletHandler struct {
	wallets *service.WalletService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(wallets *service.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

// Get handles GET /wallet
// @Summary      Wallet session state
// @Description  Returns the connection state, address, wallet type and bound network
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  wallet.Snapshot
// @Router       /wallet [get]
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.wallets.Snapshot())
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Runs the wallet handshake. Concurrent calls share one handshake.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ConnectRequest  false  "Wallet type"
// @Success      200      {object}  wallet.Snapshot
// @Failure      403      {object}  model.ErrorResponse
// @Failure      412      {object}  model.ErrorResponse
// @Failure      501      {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	var t wallet.Type
	if req.WalletType != "" {
		parsed, err := wallet.ParseType(req.WalletType)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		t = parsed
	}

	if _, err := h.wallets.Connect(r.Context(), t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.wallets.Snapshot())
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Description  Clears the session and forgets the wallet type so the next start does not reconnect
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  wallet.Snapshot
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	h.wallets.Disconnect(r.Context())
	writeJSON(w, http.StatusOK, h.wallets.Snapshot())
}

// Sign handles POST /wallet/sign
// @Summary      Sign transaction
// @Description  Signs a base64 transaction envelope with the connected wallet for the active network passphrase
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignRequest  true  "Unsigned envelope"
// @Success      200      {object}  model.SignResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Router       /wallet/sign [post]
func (h *WalletHandler) Sign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.XDR) == "" {
		writeBadRequest(w, "xdr is required")
		return
	}

	signed, err := h.wallets.SignTransaction(r.Context(), req.XDR)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SignResponse{
		SignedXDR:         signed.XDR,
		Network:           string(signed.Network),
		NetworkPassphrase: signed.Passphrase,
	})
}
