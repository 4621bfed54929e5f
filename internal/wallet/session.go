package wallet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

// HandshakeTimeout bounds one wallet handshake, including the time the user
// takes to answer the extension prompt.
const HandshakeTimeout = 2 * time.Minute

// State is the connection state of a Session.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Snapshot is the read-only view of a Session exposed to the UI.
type Snapshot struct {
	State                State             `json:"state"`
	Address              string            `json:"address,omitempty"`
	IsConnected          bool              `json:"isConnected"`
	IsConnecting         bool              `json:"isConnecting"`
	WalletType           Type              `json:"walletType,omitempty"`
	Network              network.Selection `json:"network"`
	Error                string            `json:"error,omitempty"`
	ManuallyDisconnected bool              `json:"manuallyDisconnected"`
}

// Signed is a signed envelope together with the network it was signed for.
type Signed struct {
	XDR        string            `json:"signedXdr"`
	Network    network.Selection `json:"network"`
	Passphrase string            `json:"networkPassphrase"`
}

// Session manages the connection lifecycle to one wallet backend.
//
// Only one handshake runs at a time; concurrent Connect calls share its result.
// Every Disconnect or adapter change bumps the generation, and a handshake
// finishing under an older generation is discarded.
type Session struct {
	log   *zap.SugaredLogger
	group singleflight.Group

	mu                   sync.Mutex
	adapter              Adapter
	binding              network.Config
	state                State
	account              Account
	lastErr              error
	generation           uint64
	manuallyDisconnected bool
	observers            []func(Snapshot)
}

// NewSession creates a disconnected session using adapter on the cfg network.
func NewSession(adapter Adapter, cfg network.Config, log *zap.SugaredLogger) *Session {
	return &Session{
		log:     log.Named("wallet-session"),
		adapter: adapter,
		binding: cfg,
		state:   StateDisconnected,
	}
}

// OnChange registers fn to receive a snapshot after every state transition.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// SetAdapter switches the wallet backend. The current connection is dropped.
func (s *Session) SetAdapter(adapter Adapter) {
	s.mu.Lock()
	if s.adapter != nil && adapter != nil && s.adapter.Type() == adapter.Type() {
		s.adapter = adapter
		s.mu.Unlock()
		return
	}
	s.adapter = adapter
	s.generation++
	s.resetLocked()
	snap, obs := s.snapshotLocked(), s.observersLocked()
	s.mu.Unlock()
	notify(obs, snap)
}

// UpdateNetwork rebinds the session to cfg. Signing always uses the bound passphrase.
func (s *Session) UpdateNetwork(cfg network.Config) {
	s.mu.Lock()
	if s.binding.Network == cfg.Network && s.binding.Epoch == cfg.Epoch {
		s.mu.Unlock()
		return
	}
	s.binding = cfg
	snap, obs := s.snapshotLocked(), s.observersLocked()
	s.mu.Unlock()
	notify(obs, snap)
}

// Connect runs the wallet handshake. While a handshake is in flight further
// calls wait for and return the same result instead of prompting again.
// The handshake is not tied to any caller's ctx; a cancelled caller stops
// waiting while the others still get the result.
func (s *Session) Connect(ctx context.Context) (Account, error) {
	ch := s.group.DoChan("connect", func() (any, error) {
		hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), HandshakeTimeout)
		defer cancel()
		return s.connect(hctx)
	})

	select {
	case <-ctx.Done():
		return Account{}, ctx.Err()
	case res := <-ch:
		if res.Shared {
			s.log.Debugw("joined in-flight wallet handshake")
		}
		if res.Err != nil {
			return Account{}, res.Err
		}
		return res.Val.(Account), nil
	}
}

func (s *Session) connect(ctx context.Context) (Account, error) {
	s.mu.Lock()
	if s.state == StateConnected {
		acc := s.account
		s.mu.Unlock()
		return acc, nil
	}
	adapter := s.adapter
	if adapter == nil {
		s.mu.Unlock()
		return Account{}, fmt.Errorf("%w: no wallet selected", common.ErrWalletNotInstalled)
	}
	s.state = StateConnecting
	s.lastErr = nil
	gen := s.generation
	snap, obs := s.snapshotLocked(), s.observersLocked()
	s.mu.Unlock()
	notify(obs, snap)

	acc, err := adapter.Connect(ctx)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.log.Infow("discarding wallet handshake finished after session reset")
		return Account{}, fmt.Errorf("%w: session was reset during the handshake", common.ErrConnectionRejected)
	}
	if err != nil {
		s.resetLocked()
		s.lastErr = err
	} else {
		s.state = StateConnected
		s.account = acc
		s.manuallyDisconnected = false
	}
	snap, obs = s.snapshotLocked(), s.observersLocked()
	s.mu.Unlock()
	notify(obs, snap)

	if err != nil {
		s.log.Warnw("wallet connect failed", "walletType", adapter.Type(), "error", err)
		return Account{}, err
	}
	s.log.Infow("wallet connected", "walletType", adapter.Type(), "address", acc.Address)
	return acc, nil
}

// Restore silently reconnects to an already authorized wallet. It never prompts
// and does nothing after an explicit Disconnect in this session.
func (s *Session) Restore(ctx context.Context) bool {
	s.mu.Lock()
	if s.manuallyDisconnected || s.state != StateDisconnected || s.adapter == nil {
		s.mu.Unlock()
		return false
	}
	adapter, gen := s.adapter, s.generation
	s.mu.Unlock()

	acc, err := adapter.CurrentAccount(ctx)
	if err != nil {
		s.log.Debugw("no existing wallet connection", "walletType", adapter.Type(), "error", err)
		return false
	}

	s.mu.Lock()
	if gen != s.generation || s.state != StateDisconnected || s.manuallyDisconnected {
		s.mu.Unlock()
		return false
	}
	s.state = StateConnected
	s.account = acc
	s.lastErr = nil
	snap, obs := s.snapshotLocked(), s.observersLocked()
	s.mu.Unlock()
	notify(obs, snap)

	s.log.Infow("wallet connection restored", "address", acc.Address)
	return true
}

// Disconnect clears the local session. The extension keeps its authorization;
// only an explicit Connect reconnects afterwards.
func (s *Session) Disconnect() {
	s.mu.Lock()
	s.generation++
	s.resetLocked()
	s.manuallyDisconnected = true
	snap, obs := s.snapshotLocked(), s.observersLocked()
	s.mu.Unlock()
	notify(obs, snap)
}

// SignTransaction signs a base64 XDR envelope with the passphrase of the bound network.
func (s *Session) SignTransaction(ctx context.Context, xdr string) (Signed, error) {
	s.mu.Lock()
	if s.state != StateConnected {
		s.mu.Unlock()
		return Signed{}, common.ErrNotConnected
	}
	adapter, cfg := s.adapter, s.binding
	s.mu.Unlock()

	if xdr == "" {
		return Signed{}, fmt.Errorf("%w: empty transaction envelope", common.ErrSigningFailed)
	}

	walletNet, err := adapter.Network(ctx)
	if err != nil {
		s.log.Warnw("could not read wallet network, signing with app network", "error", err)
	} else if walletNet != cfg.Network {
		return Signed{}, fmt.Errorf("%w: wallet is set to %s but the app targets %s", common.ErrSigningFailed, walletNet, cfg.Network)
	}

	signed, err := adapter.Sign(ctx, xdr, cfg.Passphrase)
	if err != nil {
		return Signed{}, err
	}
	return Signed{XDR: signed, Network: cfg.Network, Passphrase: cfg.Passphrase}, nil
}

// Account returns the connected account.
func (s *Session) Account() (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnected {
		return Account{}, false
	}
	return s.account, true
}

// Snapshot returns the current session view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) resetLocked() {
	s.state = StateDisconnected
	s.account = Account{}
	s.lastErr = nil
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:                s.state,
		IsConnected:          s.state == StateConnected,
		IsConnecting:         s.state == StateConnecting,
		Network:              s.binding.Network,
		ManuallyDisconnected: s.manuallyDisconnected,
	}
	if s.state == StateConnected {
		snap.Address = s.account.Address
	}
	if s.adapter != nil {
		snap.WalletType = s.adapter.Type()
	}
	if s.lastErr != nil {
		snap.Error = s.lastErr.Error()
	}
	return snap
}

func (s *Session) observersLocked() []func(Snapshot) {
	obs := make([]func(Snapshot), len(s.observers))
	copy(obs, s.observers)
	return obs
}

func notify(obs []func(Snapshot), snap Snapshot) {
	for _, fn := range obs {
		fn(snap)
	}
}
