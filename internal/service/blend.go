package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexZinkM/scf-launchpad/internal/client"
	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

// maxSuggestions caps the optimization hints returned for a portfolio.
const maxSuggestions = 3

// PoolLoader reads the reserves of a deployed Blend pool contract.
type PoolLoader interface {
	LoadPool(ctx context.Context, cfg network.Config, poolAddress string) ([]model.PoolInfo, error)
}

// BlendOptions configures a BlendService.
type BlendOptions struct {
	// Demo provides testnet placeholder data. Nil disables demo data.
	Demo DemoDataProvider
	// Loader reads the known pools of the active network. Nil means no real pools.
	Loader PoolLoader
}

type blendBinding struct {
	cfg network.Config
	rpc *client.SorobanClient
}

// BlendService exposes Blend lending pools and the positions of a wallet.
// Mainnet results only ever come from real pools.
type BlendService struct {
	log    *zap.SugaredLogger
	opts   ClientOptions
	demo   DemoDataProvider
	loader PoolLoader

	mu sync.RWMutex
	b  *blendBinding
}

// NewBlendService creates a BlendService bound to cfg.
func NewBlendService(cfg network.Config, bo BlendOptions, opts ClientOptions, log *zap.SugaredLogger) *BlendService {
	s := &BlendService{
		log:    log.Named("blend-service"),
		opts:   opts,
		demo:   bo.Demo,
		loader: bo.Loader,
	}
	if s.loader == nil && len(cfg.Contracts.KnownPools) > 0 {
		s.log.Warnw("Known pools configured without a pool loader; they are only checked by status", "network", cfg.Network, "pools", cfg.Contracts.KnownPools)
	}
	s.UpdateNetwork(cfg)
	return s
}

// UpdateNetwork rebinds the service to cfg.
func (s *BlendService) UpdateNetwork(cfg network.Config) {
	s.mu.RLock()
	current := s.b
	s.mu.RUnlock()
	if current != nil && sameBinding(current.cfg, cfg) {
		return
	}

	next := &blendBinding{
		cfg: cfg,
		rpc: client.NewSorobanClient(cfg.RPCURL, s.opts.get("soroban")...),
	}

	s.mu.Lock()
	s.b = next
	s.mu.Unlock()
	s.log.Infow("Network binding updated",
		"network", cfg.Network,
		"epoch", cfg.Epoch,
		"rpc", cfg.RPCURL,
		"mainnet", cfg.IsMainnet(),
		"demo", s.demo != nil && !cfg.IsMainnet())
}

func (s *BlendService) binding() *blendBinding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b
}

// Config returns the network configuration the service is bound to.
func (s *BlendService) Config() network.Config {
	return s.binding().cfg
}

// UserPositions returns the Blend positions of address. Mainnet positions are
// never synthesized; until real position loading exists mainnet yields none.
func (s *BlendService) UserPositions(ctx context.Context, address string) (Tagged[[]model.Position], error) {
	b := s.binding()
	if strings.TrimSpace(address) == "" {
		return tag(b.cfg, []model.Position{}), nil
	}
	if err := common.ValidateAccountID(address); err != nil {
		return Tagged[[]model.Position]{}, err
	}

	testnet, ok := b.cfg.Testnet()
	if !ok {
		s.log.Debugw("No real position source on mainnet", "address", address)
		return tag(b.cfg, []model.Position{}), nil
	}
	if s.demo == nil {
		return tag(b.cfg, []model.Position{}), nil
	}
	positions := s.demo.Positions(testnet, address)
	s.log.Debugw("Generated demo positions", "address", address, "count", len(positions))
	return tag(b.cfg, positions), nil
}

// Pools returns the reserves of every known pool. Testnet falls back to demo
// pools when no real pool loads; mainnet returns an empty list instead.
func (s *BlendService) Pools(ctx context.Context) (Tagged[[]model.PoolInfo], error) {
	b := s.binding()
	pools := s.loadKnownPools(ctx, b.cfg)
	if len(pools) > 0 {
		return tag(b.cfg, pools), nil
	}
	if testnet, ok := b.cfg.Testnet(); ok && s.demo != nil {
		return tag(b.cfg, s.demo.Pools(testnet)), nil
	}
	return tag(b.cfg, []model.PoolInfo{}), nil
}

// PoolInfo returns the reserve of the asset contract assetAddress.
func (s *BlendService) PoolInfo(ctx context.Context, assetAddress string) (Tagged[model.PoolInfo], error) {
	b := s.binding()
	for _, p := range s.loadKnownPools(ctx, b.cfg) {
		if p.Address == assetAddress {
			return tag(b.cfg, p), nil
		}
	}

	name := b.cfg.Contracts.AssetName(assetAddress)
	testnet, ok := b.cfg.Testnet()
	if !ok {
		return Tagged[model.PoolInfo]{}, fmt.Errorf("%w: no real pool for %s on mainnet", common.ErrPoolNotFound, name)
	}
	if s.demo != nil {
		for _, p := range s.demo.Pools(testnet) {
			if p.Address == assetAddress {
				return tag(b.cfg, p), nil
			}
		}
	}
	return Tagged[model.PoolInfo]{}, fmt.Errorf("%w: %s", common.ErrPoolNotFound, name)
}

func (s *BlendService) loadKnownPools(ctx context.Context, cfg network.Config) []model.PoolInfo {
	known := cfg.Contracts.KnownPools
	if s.loader == nil || len(known) == 0 {
		return nil
	}

	var pools []model.PoolInfo
	for _, addr := range known {
		reserves, err := s.loader.LoadPool(ctx, cfg, addr)
		if err != nil {
			s.log.Warnw("Failed to load pool", "pool", addr, "network", cfg.Network, "error", err)
			continue
		}
		for i := range reserves {
			reserves[i].PoolAddress = addr
			reserves[i].IsRealData = true
		}
		pools = append(pools, reserves...)
	}
	return pools
}

// Suggestions derives at most three optimization hints from positions.
func (s *BlendService) Suggestions(positions []model.Position) Tagged[[]model.Suggestion] {
	b := s.binding()
	return tag(b.cfg, suggest(positions))
}

func suggest(positions []model.Position) []model.Suggestion {
	out := []model.Suggestion{}
	for _, p := range positions {
		if p.Type == model.PositionLending && p.APY < 10 {
			boost := 1 + float64(hashString(p.ID)%30)/10
			out = append(out, model.Suggestion{
				ID:            "yield-" + p.ID,
				Type:          "yield",
				Title:         fmt.Sprintf("Optimize %s Yield", p.Asset),
				Description:   fmt.Sprintf("Move to higher-yield pool for +%.1f%% APY", boost),
				EstimatedGain: p.TotalValue * 0.03,
				RiskLevel:     "low",
			})
		}
		if p.HealthFactor < 1.5 {
			out = append(out, model.Suggestion{
				ID:          "safety-" + p.ID,
				Type:        "safety",
				Title:       fmt.Sprintf("Improve %s Safety", p.Asset),
				Description: "Add collateral to increase health factor above 1.5",
				RiskLevel:   "low",
			})
		}
		if p.Type == model.PositionLending && p.HealthFactor > 2.0 {
			out = append(out, model.Suggestion{
				ID:            "leverage-" + p.ID,
				Type:          "leverage",
				Title:         fmt.Sprintf("Strategic Leverage with %s", p.Asset),
				Description:   "Use as collateral for additional lending position",
				EstimatedGain: p.TotalValue * 0.15,
				RiskLevel:     "medium",
			})
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// Status checks the Soroban RPC of the active network: node health, that it
// serves the expected passphrase, and that the Blend pool factory and backstop
// contracts and every known pool are deployed.
func (s *BlendService) Status(ctx context.Context) (Tagged[model.Status], error) {
	b := s.binding()
	st := model.Status{Network: string(b.cfg.Network), Epoch: b.cfg.Epoch}

	health, err := b.rpc.GetHealth(ctx)
	if err != nil {
		return Tagged[model.Status]{}, err
	}
	st.RPCHealthy = health.Status == "healthy"
	st.LatestLedger = health.LatestLedger

	info, err := b.rpc.GetNetwork(ctx)
	if err != nil {
		return Tagged[model.Status]{}, err
	}
	st.Passphrase = info.Passphrase
	st.PassphraseOK = info.Passphrase == b.cfg.Passphrase
	if !st.PassphraseOK {
		st.Error = fmt.Sprintf("RPC serves %q, expected %q", info.Passphrase, b.cfg.Passphrase)
		s.log.Warnw("RPC network mismatch", "rpc", b.cfg.RPCURL, "passphrase", info.Passphrase)
		return tag(b.cfg, st), nil
	}

	known := b.cfg.Contracts.KnownPools
	contracts := append([]string{b.cfg.Contracts.PoolFactory, b.cfg.Contracts.Backstop}, known...)
	deployed, err := s.contractsDeployed(ctx, b, contracts...)
	if err != nil {
		st.Error = err.Error()
		s.log.Warnw("Contract check failed", "error", err)
		return tag(b.cfg, st), nil
	}
	st.PoolFactoryOK = deployed[b.cfg.Contracts.PoolFactory]
	st.BackstopOK = deployed[b.cfg.Contracts.Backstop]
	if len(known) > 0 {
		st.KnownPools = make(map[string]bool, len(known))
		for _, pool := range known {
			st.KnownPools[pool] = deployed[pool]
		}
	}
	return tag(b.cfg, st), nil
}

func (s *BlendService) contractsDeployed(ctx context.Context, b *blendBinding, contracts ...string) (map[string]bool, error) {
	keys := make([]string, 0, len(contracts))
	byKey := make(map[string]string, len(contracts))
	for _, c := range contracts {
		key, err := client.ContractInstanceKey(c)
		if err != nil {
			return nil, fmt.Errorf("contract %q: %w", c, err)
		}
		keys = append(keys, key)
		byKey[key] = c
	}

	entries, err := b.rpc.GetLedgerEntries(ctx, keys)
	if err != nil {
		return nil, err
	}
	deployed := make(map[string]bool, len(contracts))
	for _, e := range entries {
		if c, ok := byKey[e.Key]; ok {
			deployed[c] = true
		}
	}
	return deployed, nil
}
