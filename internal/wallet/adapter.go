package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

// Type names a wallet backend.
type Type string

const (
	TypeFreighter     Type = "freighter"
	TypeWalletConnect Type = "walletConnect"
)

// ParseType validates a wallet type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeFreighter, TypeWalletConnect:
		return Type(s), nil
	}
	return "", fmt.Errorf("unsupported wallet type: %s", s)
}

// Adapter hides a specific wallet backend behind a uniform handshake.
type Adapter interface {
	Type() Type
	// Available reports whether the backend is installed.
	Available(ctx context.Context) bool
	// Connect runs the interactive handshake and may prompt the user.
	Connect(ctx context.Context) (Account, error)
	// CurrentAccount returns an already authorized account without prompting.
	CurrentAccount(ctx context.Context) (Account, error)
	// Network returns the network the wallet is set to.
	Network(ctx context.Context) (network.Selection, error)
	// Sign signs xdr for passphrase and returns the signed envelope.
	Sign(ctx context.Context, xdr, passphrase string) (string, error)
}

// FreighterAdapter drives a Freighter-compatible extension.
type FreighterAdapter struct {
	ext Extension
}

// NewFreighterAdapter returns an adapter for ext. A nil ext means the extension is absent.
func NewFreighterAdapter(ext Extension) *FreighterAdapter {
	return &FreighterAdapter{ext: ext}
}

func (a *FreighterAdapter) Type() Type { return TypeFreighter }

func (a *FreighterAdapter) Available(ctx context.Context) bool {
	if a.ext == nil {
		return false
	}
	ok, err := a.ext.IsConnected(ctx)
	return err == nil && ok
}

func (a *FreighterAdapter) Connect(ctx context.Context) (Account, error) {
	if !a.Available(ctx) {
		return Account{}, fmt.Errorf("%w: install it from %s", common.ErrWalletNotInstalled, common.FreighterInstallURL)
	}

	allowed, err := a.ext.IsAllowed(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", common.ErrPermissionDenied, err)
	}
	if !allowed {
		granted, err := a.ext.SetAllowed(ctx)
		if err != nil {
			return Account{}, fmt.Errorf("%w: %v", common.ErrPermissionDenied, err)
		}
		if !granted {
			return Account{}, fmt.Errorf("%w: allow this app to access Freighter", common.ErrPermissionDenied)
		}
	}

	raw, err := a.ext.RequestAccess(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", common.ErrConnectionRejected, err)
	}
	acc, err := ParseAccount(raw)
	if err != nil {
		if errors.Is(err, common.ErrInvalidAddress) {
			return Account{}, err
		}
		return Account{}, fmt.Errorf("%w: %v", common.ErrConnectionRejected, err)
	}
	return acc, nil
}

func (a *FreighterAdapter) CurrentAccount(ctx context.Context) (Account, error) {
	if !a.Available(ctx) {
		return Account{}, common.ErrWalletNotInstalled
	}
	allowed, err := a.ext.IsAllowed(ctx)
	if err != nil || !allowed {
		return Account{}, common.ErrNotConnected
	}
	raw, err := a.ext.GetAddress(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", common.ErrNotConnected, err)
	}
	return ParseAccount(raw)
}

func (a *FreighterAdapter) Network(ctx context.Context) (network.Selection, error) {
	if a.ext == nil {
		return "", common.ErrWalletNotInstalled
	}
	raw, err := a.ext.GetNetwork(ctx)
	if err != nil {
		return "", err
	}
	return ParseNetwork(raw)
}

func (a *FreighterAdapter) Sign(ctx context.Context, xdr, passphrase string) (string, error) {
	if a.ext == nil {
		return "", common.ErrWalletNotInstalled
	}
	raw, err := a.ext.SignTransaction(ctx, xdr, passphrase)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrSigningFailed, err)
	}
	signed, err := parseSigned(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrSigningFailed, err)
	}
	return signed, nil
}

// DefaultAdapters returns every supported wallet type. Freighter is always
// present; with a nil ext it reports the extension as not installed.
func DefaultAdapters(ext Extension) map[Type]Adapter {
	return map[Type]Adapter{
		TypeFreighter:     NewFreighterAdapter(ext),
		TypeWalletConnect: WalletConnectAdapter{},
	}
}

// WalletConnectAdapter is a placeholder for WalletConnect sessions. Every
// operation fails explicitly so callers never mistake it for a working wallet.
type WalletConnectAdapter struct{}

func (WalletConnectAdapter) Type() Type { return TypeWalletConnect }

func (WalletConnectAdapter) Available(context.Context) bool { return false }

func (WalletConnectAdapter) Connect(context.Context) (Account, error) {
	return Account{}, fmt.Errorf("%w: WalletConnect", common.ErrNotImplemented)
}

func (WalletConnectAdapter) CurrentAccount(context.Context) (Account, error) {
	return Account{}, fmt.Errorf("%w: WalletConnect", common.ErrNotImplemented)
}

func (WalletConnectAdapter) Network(context.Context) (network.Selection, error) {
	return "", fmt.Errorf("%w: WalletConnect", common.ErrNotImplemented)
}

func (WalletConnectAdapter) Sign(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: WalletConnect", common.ErrNotImplemented)
}
