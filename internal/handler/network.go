package handler

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

// NetworkHandler exposes the active network selection
type NetworkHandler struct {
	nc *network.Context
}

// NewNetworkHandler creates a new NetworkHandler
func NewNetworkHandler(nc *network.Context) *NetworkHandler {
	return &NetworkHandler{nc: nc}
}

func networkResponse(cfg network.Config) model.NetworkResponse {
	return model.NetworkResponse{
		Network:    string(cfg.Network),
		Passphrase: cfg.Passphrase,
		HorizonURL: cfg.HorizonURL,
		RPCURL:     cfg.RPCURL,
		Path:       cfg.Network.Path(),
		Epoch:      cfg.Epoch,
	}
}

// Network handles GET and POST /network
// @Summary      Get or switch the active network
// @Description  GET returns the active Stellar network. POST switches it; every service is rebound before the response is written.
// @Tags         network
// @Accept       json
// @Produce      json
// @Param        request  body      model.NetworkRequest  false  "Network to switch to (POST only)"
// @Success      200      {object}  model.NetworkResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /network [get]
// @Router       /network [post]
func (h *NetworkHandler) Network(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, networkResponse(h.nc.Current()))
	case http.MethodPost:
		var req model.NetworkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid JSON body")
			return
		}
		sel, err := network.ParseSelection(req.Network)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, networkResponse(h.nc.Set(sel)))
	default:
		http.Error(w, "Method not allowed. Should be GET or POST", http.StatusMethodNotAllowed)
	}
}
