package wallet

import (
	"context"
	"encoding/json"
)

// Extension is the Freighter-compatible capability a wallet extension exposes.
//
// Responses that changed shape across extension versions are returned raw and
// normalized by the adapter (see ParseAccount and ParseNetwork).
type Extension interface {
	// IsConnected reports whether the extension is installed and reachable.
	IsConnected(ctx context.Context) (bool, error)
	// IsAllowed reports whether this app is already authorized.
	IsAllowed(ctx context.Context) (bool, error)
	// SetAllowed asks the user to authorize this app.
	SetAllowed(ctx context.Context) (bool, error)
	// RequestAccess asks the user for the account address.
	RequestAccess(ctx context.Context) (json.RawMessage, error)
	// GetAddress returns the address of an authorized app without prompting.
	GetAddress(ctx context.Context) (json.RawMessage, error)
	// GetNetwork returns the network the extension is set to.
	GetNetwork(ctx context.Context) (json.RawMessage, error)
	// SignTransaction signs a base64 XDR envelope for the given passphrase.
	SignTransaction(ctx context.Context, xdr, passphrase string) (json.RawMessage, error)
}
