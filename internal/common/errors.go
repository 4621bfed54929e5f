package common

import (
	"errors"
)

// FreighterInstallURL is shown to users whose browser has no wallet extension.
const FreighterInstallURL = "https://www.freighter.app/"

// Error taxonomy shared by the wallet session, services and handlers.
// All of them are recoverable: callers surface them as dismissable notices.
var (
	ErrWalletNotInstalled = errors.New("wallet extension is not installed")
	ErrPermissionDenied   = errors.New("permission denied by wallet")
	ErrConnectionRejected = errors.New("connection rejected by user")
	ErrNotConnected       = errors.New("wallet not connected")
	ErrSigningFailed      = errors.New("transaction signing failed")
	ErrFetchFailed        = errors.New("fetch failed")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUploadFailed       = errors.New("upload failed")
	ErrSubmitFailed       = errors.New("transaction submission failed")
	ErrNotImplemented     = errors.New("not implemented")
	ErrInvalidAddress     = errors.New("invalid Stellar address")
	ErrPoolNotFound       = errors.New("pool not found")
	ErrRateLimited        = errors.New("too many requests")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrWalletNotInstalled, "WALLET_NOT_INSTALLED"},
	{ErrPermissionDenied, "PERMISSION_DENIED"},
	{ErrConnectionRejected, "CONNECTION_REJECTED"},
	{ErrNotConnected, "NOT_CONNECTED"},
	{ErrSigningFailed, "SIGNING_FAILED"},
	{ErrFetchFailed, "FETCH_FAILED"},
	{ErrAccountNotFound, "ACCOUNT_NOT_FOUND"},
	{ErrUploadFailed, "UPLOAD_FAILED"},
	{ErrSubmitFailed, "SUBMIT_FAILED"},
	{ErrNotImplemented, "NOT_IMPLEMENTED"},
	{ErrInvalidAddress, "INVALID_ADDRESS"},
	{ErrPoolNotFound, "POOL_NOT_FOUND"},
	{ErrRateLimited, "RATE_LIMITED"},
}

// ErrorCode returns the stable API code for err, or "INTERNAL" when err is outside the taxonomy.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "INTERNAL"
}

// IsRetryable reports whether the user can reasonably retry the failed action.
func IsRetryable(err error) bool {
	switch {
	case errors.Is(err, ErrFetchFailed),
		errors.Is(err, ErrUploadFailed),
		errors.Is(err, ErrRateLimited),
		errors.Is(err, ErrConnectionRejected),
		errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrSigningFailed):
		return true
	}
	return false
}
