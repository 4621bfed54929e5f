package handler

import (
	"errors"
	"net/http"

	"github.com/AlexZinkM/scf-launchpad/internal/portfolio"
	"github.com/AlexZinkM/scf-launchpad/internal/service"
)

// PortfolioHandler serves the portfolio view of the connected wallet
type PortfolioHandler struct {
	view    *portfolio.View
	wallets *service.WalletService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(view *portfolio.View, wallets *service.WalletService) *PortfolioHandler {
	return &PortfolioHandler{view: view, wallets: wallets}
}

// Get handles GET /portfolio
// @Summary      Portfolio state
// @Description  Returns the balances and positions currently shown, with loading flags
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  portfolio.State
// @Router       /portfolio [get]
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.view.Snapshot())
}

// Refresh handles POST /portfolio/refresh
// @Summary      Refresh portfolio
// @Description  Reloads balances and positions. A balance failure is reported in balancesError and can be retried.
// @Tags         portfolio
// @Produce      json
// @Param        address  query     string  false  "Account address (default: connected wallet)"
// @Success      200      {object}  portfolio.State
// @Failure      409      {object}  model.ErrorResponse
// @Router       /portfolio/refresh [post]
func (h *PortfolioHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	address, err := resolveAddress(r, h.wallets)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.view.Refresh(r.Context(), address); errors.Is(err, portfolio.ErrClosed) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, h.view.Snapshot())
}
