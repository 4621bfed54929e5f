package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/project"
	"github.com/AlexZinkM/scf-launchpad/internal/service"
)

// anonymousCreator is recorded as creator when no wallet is connected.
const anonymousCreator = "anonymous"

// ProjectHandler manages the local funding projects
type ProjectHandler struct {
	store   *project.Store
	ipfs    *service.IPFSService
	wallets *service.WalletService
}

// NewProjectHandler creates a new ProjectHandler. ipfs may be nil when pinning is not configured.
func NewProjectHandler(store *project.Store, ipfs *service.IPFSService, wallets *service.WalletService) *ProjectHandler {
	return &ProjectHandler{store: store, ipfs: ipfs, wallets: wallets}
}

// Projects handles GET and POST /projects
// @Summary      List or add projects
// @Description  GET lists the stored projects in insertion order. POST stores a new project created by the connected wallet, optionally pinning it to IPFS first.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request  body      model.ProjectRequest  false  "Project (POST only)"
// @Success      200      {array}   model.StoredProject
// @Success      201      {object}  model.StoredProject
// @Failure      400      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /projects [get]
// @Router       /projects [post]
func (h *ProjectHandler) Projects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed. Should be GET or POST", http.StatusMethodNotAllowed)
	}
}

func (h *ProjectHandler) list(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) create(w http.ResponseWriter, r *http.Request) {
	var req model.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	createdBy := anonymousCreator
	if account, ok := h.wallets.Session().Account(); ok {
		createdBy = account.Address
	}

	p := model.StoredProject{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Category:      req.Category,
		TargetAmount:  req.TargetAmount,
		APY:           req.APY,
		RiskLevel:     req.RiskLevel,
		Duration:      req.Duration,
		MinInvestment: req.MinInvestment,
		TeamSize:      req.TeamSize,
		SCFRound:      req.SCFRound,
		DaysRemaining: req.Duration,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if req.PinToIPFS {
		if h.ipfs == nil {
			http.Error(w, "IPFS pinning is not configured", http.StatusNotImplemented)
			return
		}
		hash, err := h.ipfs.PinProject(r.Context(), p)
		if err != nil {
			writeError(w, err)
			return
		}
		p.IpfsHash = hash
	}

	saved, err := h.store.Save(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// Remove handles DELETE /projects/{id}
// @Summary      Remove project
// @Description  Removes every project with the id. Removing an unknown id succeeds.
// @Tags         projects
// @Param        id   path  string  true  "Project id"
// @Success      204
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed. Should be DELETE", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeBadRequest(w, "id is required")
		return
	}
	if err := h.store.Remove(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
