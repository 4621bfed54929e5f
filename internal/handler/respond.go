package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeBadRequest reports a malformed request. It is not part of the error taxonomy.
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: msg, Code: "BAD_REQUEST"})
}

// writeError maps err onto a status code and the API error body.
func writeError(w http.ResponseWriter, err error) {
	resp := toErrorResponse(err)
	writeJSON(w, statusFor(err), resp)
}

func toErrorResponse(err error) model.ErrorResponse {
	resp := model.ErrorResponse{
		Error:     err.Error(),
		Code:      common.ErrorCode(err),
		Retryable: common.IsRetryable(err),
	}
	if errors.Is(err, common.ErrWalletNotInstalled) {
		resp.InstallURL = common.FreighterInstallURL
	}
	return resp
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrNotConnected):
		return http.StatusConflict
	case errors.Is(err, common.ErrPermissionDenied), errors.Is(err, common.ErrConnectionRejected):
		return http.StatusForbidden
	case errors.Is(err, common.ErrWalletNotInstalled):
		return http.StatusPreconditionFailed
	case errors.Is(err, common.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, common.ErrSigningFailed), errors.Is(err, common.ErrSubmitFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrFetchFailed), errors.Is(err, common.ErrUploadFailed):
		return http.StatusBadGateway
	case errors.Is(err, common.ErrAccountNotFound), errors.Is(err, common.ErrPoolNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrRateLimited):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// resolveAddress returns the ?address= query parameter or, when absent, the connected account.
func resolveAddress(r *http.Request, wallets *service.WalletService) (string, error) {
	if addr := r.URL.Query().Get("address"); addr != "" {
		return addr, nil
	}
	account, ok := wallets.Session().Account()
	if !ok {
		return "", common.ErrNotConnected
	}
	return account.Address, nil
}
