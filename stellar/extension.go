package stellar

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/crypto"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
	"github.com/AlexZinkM/scf-launchpad/internal/storage"
)

// GrantKey is the KV key holding the address this app was allowed to access.
const GrantKey = "blend_local_extension_grant"

// ApprovalKind is what the user is asked to approve.
type ApprovalKind string

const (
	ApproveAccess ApprovalKind = "access"
	ApproveSign   ApprovalKind = "sign"
)

// ApprovalRequest describes a pending user decision.
type ApprovalRequest struct {
	Kind       ApprovalKind
	Address    string
	Passphrase string
	XDR        string
}

// Approver decides on access and signing requests in place of the extension popup.
type Approver interface {
	Approve(ctx context.Context, req ApprovalRequest) (bool, error)
}

// ApproverFunc adapts a function to Approver.
type ApproverFunc func(ctx context.Context, req ApprovalRequest) (bool, error)

func (f ApproverFunc) Approve(ctx context.Context, req ApprovalRequest) (bool, error) {
	return f(ctx, req)
}

// AutoApprove approves every request.
var AutoApprove = ApproverFunc(func(context.Context, ApprovalRequest) (bool, error) { return true, nil })

// PasswordSource returns a copy of the key file password. The caller zeroes it after use.
type PasswordSource func() ([]byte, error)

// LocalExtension is a Freighter-compatible extension backed by an encrypted key file.
// The key is decrypted only for the duration of a single signature.
type LocalExtension struct {
	log      *zap.SugaredLogger
	path     string
	approver Approver
	password PasswordSource
	cooldown time.Duration
	grants   storage.KV

	mu       sync.Mutex
	network  network.Selection
	allowed  bool
	lastSign time.Time
}

// LocalExtensionOptions configures a LocalExtension.
type LocalExtensionOptions struct {
	Path     string
	Network  network.Selection
	Approver Approver
	Password PasswordSource
	// SignCooldown is the minimum time between two signatures. Zero disables it.
	SignCooldown time.Duration
	// Grants persists the access grant across restarts. Nil keeps it in memory only.
	Grants storage.KV
}

// NewLocalExtension creates an extension over the key file at opts.Path.
func NewLocalExtension(opts LocalExtensionOptions, log *zap.SugaredLogger) *LocalExtension {
	approver := opts.Approver
	if approver == nil {
		approver = AutoApprove
	}
	sel := opts.Network
	if sel == "" {
		sel = network.Testnet
	}
	return &LocalExtension{
		log:      log.Named("local-extension"),
		path:     opts.Path,
		approver: approver,
		password: opts.Password,
		cooldown: opts.SignCooldown,
		grants:   opts.Grants,
		network:  sel,
	}
}

// SetNetwork changes the network the extension reports, as a user would in the extension settings.
func (e *LocalExtension) SetNetwork(sel network.Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.network = sel
}

func (e *LocalExtension) address() (string, error) {
	kf, err := crypto.ReadKeyFile(e.path)
	if err != nil {
		return "", err
	}
	if err := common.ValidateAccountID(kf.Address); err != nil {
		return "", err
	}
	return kf.Address, nil
}

func (e *LocalExtension) IsConnected(context.Context) (bool, error) {
	_, err := e.address()
	if err != nil {
		e.log.Debugw("key file unavailable", "path", e.path, "error", err)
		return false, nil
	}
	return true, nil
}

func (e *LocalExtension) IsAllowed(ctx context.Context) (bool, error) {
	e.mu.Lock()
	allowed := e.allowed
	e.mu.Unlock()
	if allowed || e.grants == nil {
		return allowed, nil
	}

	granted, err := e.grants.Get(ctx, GrantKey)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	addr, err := e.address()
	if err != nil || string(granted) != addr {
		return false, nil
	}

	e.mu.Lock()
	e.allowed = true
	e.mu.Unlock()
	return true, nil
}

func (e *LocalExtension) SetAllowed(ctx context.Context) (bool, error) {
	addr, err := e.address()
	if err != nil {
		return false, err
	}
	ok, err := e.approver.Approve(ctx, ApprovalRequest{Kind: ApproveAccess, Address: addr})
	if err != nil {
		return false, err
	}
	e.mu.Lock()
	e.allowed = ok
	e.mu.Unlock()

	if e.grants != nil {
		if ok {
			err = e.grants.Set(ctx, GrantKey, []byte(addr))
		} else {
			err = e.grants.Delete(ctx, GrantKey)
		}
		if err != nil {
			e.log.Warnw("failed to persist access grant", "address", addr, "error", err)
		}
	}
	return ok, nil
}

func (e *LocalExtension) RequestAccess(ctx context.Context) (json.RawMessage, error) {
	allowed, _ := e.IsAllowed(ctx)
	if !allowed {
		ok, err := e.SetAllowed(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("user declined access")
		}
	}
	return e.GetAddress(ctx)
}

func (e *LocalExtension) GetAddress(ctx context.Context) (json.RawMessage, error) {
	if allowed, _ := e.IsAllowed(ctx); !allowed {
		return nil, errors.New("app is not allowed")
	}
	addr, err := e.address()
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]string{"address": addr})
}

func (e *LocalExtension) GetNetwork(context.Context) (json.RawMessage, error) {
	e.mu.Lock()
	sel := e.network
	e.mu.Unlock()
	return json.Marshal(map[string]string{
		"network":           sel.WalletName(),
		"networkPassphrase": sel.Passphrase(),
	})
}

func (e *LocalExtension) SignTransaction(ctx context.Context, xdr, passphrase string) (json.RawMessage, error) {
	if allowed, _ := e.IsAllowed(ctx); !allowed {
		return nil, errors.New("app is not allowed")
	}
	if e.password == nil {
		return nil, errors.New("no password source configured")
	}

	addr, err := e.address()
	if err != nil {
		return nil, err
	}

	ok, err := e.approver.Approve(ctx, ApprovalRequest{Kind: ApproveSign, Address: addr, Passphrase: passphrase, XDR: xdr})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("user declined to sign")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cooldown > 0 && !e.lastSign.IsZero() {
		if elapsed := time.Since(e.lastSign); elapsed < e.cooldown {
			return nil, fmt.Errorf("cooldown active, please wait %v", (e.cooldown - elapsed).Round(time.Second))
		}
	}

	signed, err := e.sign(addr, xdr, passphrase)
	if err != nil {
		return nil, err
	}
	e.lastSign = time.Now()
	e.log.Infow("transaction signed", "address", addr)

	return json.Marshal(map[string]string{"signedTxXdr": signed, "signerAddress": addr})
}

func (e *LocalExtension) sign(addr, xdr, passphrase string) (string, error) {
	password, err := e.password()
	if err != nil {
		return "", err
	}
	defer clear(password)

	_, data, err := crypto.DecryptKeyFile(e.path, password)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt key file: %w", err)
	}
	defer clear(data.Seed)

	if len(data.Seed) != ed25519.SeedSize {
		return "", errors.New("invalid seed length")
	}
	key := ed25519.NewKeyFromSeed(data.Seed)
	defer clear(key)

	pub, err := common.DecodeStrKey(common.VersionAccountID, addr)
	if err != nil {
		return "", err
	}
	if !bytes.Equal(key.Public().(ed25519.PublicKey), pub) {
		return "", errors.New("private key does not match address")
	}

	return SignEnvelope(xdr, passphrase, key)
}
