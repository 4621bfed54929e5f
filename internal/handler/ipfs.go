package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/service"
)

// IPFSHandler proxies IPFS pinning so the Pinata credentials stay on the backend
type IPFSHandler struct {
	ipfs *service.IPFSService
}

// NewIPFSHandler creates a new IPFSHandler
func NewIPFSHandler(ipfs *service.IPFSService) *IPFSHandler {
	return &IPFSHandler{ipfs: ipfs}
}

// Pin handles POST /ipfs/pin
// @Summary      Pin JSON document
// @Description  Stores a JSON document on IPFS through Pinata and returns its content hash
// @Tags         ipfs
// @Accept       json
// @Produce      json
// @Param        request  body      model.PinRequest  true  "Document to pin"
// @Success      200      {object}  model.PinResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      429      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /ipfs/pin [post]
func (h *IPFSHandler) Pin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.PinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	res, err := h.ipfs.Pin(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Pins handles GET /ipfs/pins
// @Summary      List pins
// @Description  Lists the documents pinned with the configured Pinata account
// @Tags         ipfs
// @Produce      json
// @Success      200  {array}   client.Pin
// @Failure      502  {object}  model.ErrorResponse
// @Router       /ipfs/pins [get]
func (h *IPFSHandler) Pins(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	pins, err := h.ipfs.Pins(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pins)
}

// Fetch handles GET /ipfs/{hash}
// @Summary      Fetch pinned document
// @Description  Reads a pinned JSON document from the IPFS gateway
// @Tags         ipfs
// @Produce      json
// @Param        hash  path      string  true  "Content hash"
// @Success      200   {object}  object
// @Failure      502   {object}  model.ErrorResponse
// @Router       /ipfs/{hash} [get]
func (h *IPFSHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	hash := strings.TrimSpace(r.PathValue("hash"))
	if hash == "" {
		writeBadRequest(w, "hash is required")
		return
	}

	doc, err := h.ipfs.Fetch(r.Context(), hash)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
