package handler

import (
	"net/http"

	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/service"
)

// BlendHandler serves Blend lending positions, pools and the network status
type BlendHandler struct {
	blend   *service.BlendService
	wallets *service.WalletService
}

// NewBlendHandler creates a new BlendHandler
func NewBlendHandler(blend *service.BlendService, wallets *service.WalletService) *BlendHandler {
	return &BlendHandler{blend: blend, wallets: wallets}
}

// positionsAddress is like resolveAddress, but no wallet simply means no positions.
func (h *BlendHandler) positionsAddress(r *http.Request) string {
	address, err := resolveAddress(r, h.wallets)
	if err != nil {
		return ""
	}
	return address
}

// Positions handles GET /positions
// @Summary      Lending positions
// @Description  Lists the Blend positions of an account. Demo positions are only ever produced on testnet.
// @Tags         blend
// @Produce      json
// @Param        address  query     string  false  "Account address (default: connected wallet)"
// @Success      200      {object}  model.PositionsResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /positions [get]
func (h *BlendHandler) Positions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	address := h.positionsAddress(r)
	res, err := h.blend.UserPositions(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.PositionsResponse{
		Address:   address,
		Network:   string(res.Network),
		Epoch:     res.Epoch,
		Positions: res.Value,
	})
}

// Suggestions handles GET /positions/suggestions
// @Summary      Optimization suggestions
// @Description  Derives at most three yield, safety or leverage hints from the positions of an account
// @Tags         blend
// @Produce      json
// @Param        address  query     string  false  "Account address (default: connected wallet)"
// @Success      200      {object}  model.SuggestionsResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /positions/suggestions [get]
func (h *BlendHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	address := h.positionsAddress(r)
	positions, err := h.blend.UserPositions(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	res := h.blend.Suggestions(positions.Value)
	writeJSON(w, http.StatusOK, model.SuggestionsResponse{
		Address:     address,
		Network:     string(positions.Network),
		Epoch:       positions.Epoch,
		Suggestions: res.Value,
	})
}

// Pools handles GET /pools
// @Summary      Lending pools
// @Description  Lists the known pool reserves, or the reserve of one asset contract when asset is set
// @Tags         blend
// @Produce      json
// @Param        asset  query     string  false  "Asset contract address"
// @Success      200    {object}  model.PoolsResponse
// @Failure      404    {object}  model.ErrorResponse
// @Router       /pools [get]
func (h *BlendHandler) Pools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	if asset := r.URL.Query().Get("asset"); asset != "" {
		res, err := h.blend.PoolInfo(r.Context(), asset)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, model.PoolsResponse{
			Network: string(res.Network),
			Epoch:   res.Epoch,
			Pools:   []model.PoolInfo{res.Value},
		})
		return
	}

	res, err := h.blend.Pools(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.PoolsResponse{
		Network: string(res.Network),
		Epoch:   res.Epoch,
		Pools:   res.Value,
	})
}

// Status handles GET /status
// @Summary      Network status
// @Description  Checks the Soroban RPC of the active network and whether the Blend contracts are deployed
// @Tags         blend
// @Produce      json
// @Success      200  {object}  model.Status
// @Failure      502  {object}  model.ErrorResponse
// @Router       /status [get]
func (h *BlendHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	res, err := h.blend.Status(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Value)
}
