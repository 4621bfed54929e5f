package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/metrics"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
	"github.com/AlexZinkM/scf-launchpad/internal/storage"
	"github.com/AlexZinkM/scf-launchpad/internal/wallet"
)

// WalletTypeKey stores the last used wallet type.
const WalletTypeKey = "blend_wallet_type"

// WalletService selects the wallet backend and owns the wallet session.
type WalletService struct {
	log      *zap.SugaredLogger
	kv       storage.KV
	metrics  *metrics.Metrics
	session  *wallet.Session
	adapters map[wallet.Type]wallet.Adapter

	mu         sync.Mutex
	walletType wallet.Type
}

// NewWalletService creates a WalletService. adapters holds one adapter per
// supported wallet type; the session starts without a backend until Initialize.
func NewWalletService(cfg network.Config, adapters map[wallet.Type]wallet.Adapter, kv storage.KV, m *metrics.Metrics, log *zap.SugaredLogger) *WalletService {
	return &WalletService{
		log:      log.Named("wallet-service"),
		kv:       kv,
		metrics:  m,
		session:  wallet.NewSession(nil, cfg, log),
		adapters: adapters,
	}
}

// Session returns the wallet session.
func (s *WalletService) Session() *wallet.Session {
	return s.session
}

// UpdateNetwork rebinds the session to cfg.
func (s *WalletService) UpdateNetwork(cfg network.Config) {
	s.session.UpdateNetwork(cfg)
}

// WalletType returns the selected wallet type, empty when none is selected.
func (s *WalletService) WalletType() wallet.Type {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.walletType
}

// Initialize selects the backend of type t and remembers it for the next start.
func (s *WalletService) Initialize(ctx context.Context, t wallet.Type) error {
	if _, err := wallet.ParseType(string(t)); err != nil {
		return err
	}
	adapter, ok := s.adapters[t]
	if !ok {
		return fmt.Errorf("%w: wallet type %s is not configured", common.ErrNotImplemented, t)
	}

	s.mu.Lock()
	s.walletType = t
	s.mu.Unlock()
	s.session.SetAdapter(adapter)

	if err := s.kv.Set(ctx, WalletTypeKey, []byte(t)); err != nil {
		s.log.Warnw("Failed to persist wallet type", "type", t, "error", err)
	}
	return nil
}

// Connect runs the wallet handshake with the backend of type t. An empty t
// reuses the selected backend, then the saved one, then Freighter.
func (s *WalletService) Connect(ctx context.Context, t wallet.Type) (wallet.Account, error) {
	if t == "" {
		t = s.preferredType(ctx)
	}
	if err := s.Initialize(ctx, t); err != nil {
		return wallet.Account{}, err
	}

	account, err := s.session.Connect(ctx)
	if err != nil {
		s.metrics.WalletConnect(string(t), strings.ToLower(common.ErrorCode(err)))
		s.log.Infow("Wallet connection failed", "type", t, "error", err)
		return wallet.Account{}, err
	}
	s.metrics.WalletConnect(string(t), "success")
	s.log.Infow("Wallet connected", "type", t, "address", account.Address)
	return account, nil
}

func (s *WalletService) preferredType(ctx context.Context) wallet.Type {
	if t := s.WalletType(); t != "" {
		return t
	}
	if t, ok := s.savedType(ctx); ok {
		return t
	}
	return wallet.TypeFreighter
}

func (s *WalletService) savedType(ctx context.Context) (wallet.Type, bool) {
	raw, err := s.kv.Get(ctx, WalletTypeKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warnw("Failed to read saved wallet type", "error", err)
		}
		return "", false
	}
	t, err := wallet.ParseType(string(raw))
	if err != nil {
		s.log.Warnw("Ignoring saved wallet type", "value", string(raw))
		return "", false
	}
	return t, true
}

// Restore reconnects silently with the saved wallet type. It never prompts and
// does nothing when no wallet was used before or the user disconnected.
func (s *WalletService) Restore(ctx context.Context) bool {
	t, ok := s.savedType(ctx)
	if !ok {
		return false
	}
	if err := s.Initialize(ctx, t); err != nil {
		s.log.Warnw("Saved wallet type unavailable", "type", t, "error", err)
		return false
	}
	restored := s.session.Restore(ctx)
	if restored {
		s.metrics.WalletConnect(string(t), "restored")
	}
	return restored
}

// Disconnect clears the session and forgets the wallet type, so the next start
// does not reconnect.
func (s *WalletService) Disconnect(ctx context.Context) {
	s.session.Disconnect()

	s.mu.Lock()
	s.walletType = ""
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, WalletTypeKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Warnw("Failed to forget wallet type", "error", err)
	}
}

// SignTransaction signs xdr with the connected wallet.
func (s *WalletService) SignTransaction(ctx context.Context, xdr string) (wallet.Signed, error) {
	return s.session.SignTransaction(ctx, xdr)
}

// Snapshot returns the session state.
func (s *WalletService) Snapshot() wallet.Snapshot {
	return s.session.Snapshot()
}
