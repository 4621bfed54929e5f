package service

import (
	"go.uber.org/zap"

	"github.com/AlexZinkM/scf-launchpad/internal/metrics"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

// Registry holds the single instance of every network-bound service.
type Registry struct {
	Stellar *StellarService
	Blend   *BlendService
	Wallet  *WalletService
	IPFS    *IPFSService

	log     *zap.SugaredLogger
	metrics *metrics.Metrics
}

// NewRegistry groups the services. ipfs may be nil when pinning is not configured.
func NewRegistry(stellar *StellarService, blend *BlendService, wallet *WalletService, ipfs *IPFSService, m *metrics.Metrics, log *zap.SugaredLogger) *Registry {
	return &Registry{
		Stellar: stellar,
		Blend:   blend,
		Wallet:  wallet,
		IPFS:    ipfs,
		log:     log.Named("registry"),
		metrics: m,
	}
}

// UpdateNetwork rebinds every service to cfg. It returns after all of them are updated.
func (r *Registry) UpdateNetwork(cfg network.Config) {
	r.Stellar.UpdateNetwork(cfg)
	r.Blend.UpdateNetwork(cfg)
	r.Wallet.UpdateNetwork(cfg)
	r.metrics.NetworkSwitched(string(cfg.Network))
	r.log.Infow("Services rebound", "network", cfg.Network, "epoch", cfg.Epoch)
}

// Bind subscribes the registry to nc and aligns the services with its current
// configuration. Subscribe the registry before any other consumer so services
// are rebound before anyone re-fetches.
func (r *Registry) Bind(nc *network.Context) {
	cfg := nc.Current()
	r.Stellar.UpdateNetwork(cfg)
	r.Blend.UpdateNetwork(cfg)
	r.Wallet.UpdateNetwork(cfg)
	nc.Subscribe(r.UpdateNetwork)
}
