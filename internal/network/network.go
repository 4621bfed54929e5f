// Package network holds the process-wide Stellar network selection and the
// configuration derived from it.
package network

import (
	"fmt"
	"strings"
	"sync"
)

// Selection is one of the two supported Stellar networks.
type Selection string

const (
	Testnet Selection = "testnet"
	Mainnet Selection = "mainnet"
)

// Network passphrases as required by Stellar transaction signing.
const (
	TestnetPassphrase = "Test SDF Network ; September 2015"
	MainnetPassphrase = "Public Global Stellar Network ; September 2015"
)

// ParseSelection accepts both the app spelling (testnet/mainnet) and the
// wallet spelling (TESTNET/PUBLIC).
func ParseSelection(s string) (Selection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "testnet":
		return Testnet, nil
	case "mainnet", "public", "pubnet":
		return Mainnet, nil
	}
	return "", fmt.Errorf("unknown network %q: must be testnet or mainnet", s)
}

// SelectionForPassphrase maps a network passphrase back to its selection.
func SelectionForPassphrase(passphrase string) (Selection, bool) {
	switch passphrase {
	case TestnetPassphrase:
		return Testnet, true
	case MainnetPassphrase:
		return Mainnet, true
	}
	return "", false
}

// Passphrase returns the signing passphrase of s.
func (s Selection) Passphrase() string {
	if s == Mainnet {
		return MainnetPassphrase
	}
	return TestnetPassphrase
}

// Path is the deep-link path segment for s.
func (s Selection) Path() string {
	return "/" + string(s)
}

// WalletName is the network name used by wallet extensions.
func (s Selection) WalletName() string {
	if s == Mainnet {
		return "PUBLIC"
	}
	return "TESTNET"
}

// Endpoint holds the URLs of one network.
type Endpoint struct {
	HorizonURL string
	RPCURL     string
	Contracts  Contracts
}

// Endpoints holds the per-network endpoints injected from configuration.
type Endpoints struct {
	Testnet Endpoint
	Mainnet Endpoint
}

// DefaultEndpoints returns the public SDF endpoints with the known Blend deployments.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Testnet: Endpoint{
			HorizonURL: "https://horizon-testnet.stellar.org",
			RPCURL:     "https://soroban-testnet.stellar.org",
			Contracts:  DefaultTestnetContracts(),
		},
		Mainnet: Endpoint{
			HorizonURL: "https://horizon.stellar.org",
			RPCURL:     "https://soroban-rpc.mainnet.stellar.gateway.fm",
			Contracts:  DefaultMainnetContracts(),
		},
	}
}

func (e Endpoints) get(s Selection) Endpoint {
	if s == Mainnet {
		return e.Mainnet
	}
	return e.Testnet
}

// Config is a read-only snapshot of the active network configuration.
// Epoch increases on every effective network change and tags outbound reads.
type Config struct {
	Network    Selection `json:"network"`
	Passphrase string    `json:"passphrase"`
	HorizonURL string    `json:"horizonUrl"`
	RPCURL     string    `json:"rpcUrl"`
	Contracts  Contracts `json:"contracts"`
	Epoch      uint64    `json:"epoch"`
}

// IsMainnet reports whether c targets the public network.
func (c Config) IsMainnet() bool {
	return c.Network == Mainnet
}

// TestnetConfig is a Config proven to target testnet. It can only be obtained
// through Config.Testnet, which keeps demo data off mainnet code paths.
type TestnetConfig struct {
	cfg Config
}

// Config returns the underlying snapshot.
func (t TestnetConfig) Config() Config {
	return t.cfg
}

// Testnet returns a TestnetConfig when c targets testnet.
func (c Config) Testnet() (TestnetConfig, bool) {
	if c.Network != Testnet {
		return TestnetConfig{}, false
	}
	return TestnetConfig{cfg: c}, true
}

// Context is the single source of truth for the active network.
type Context struct {
	endpoints Endpoints

	// setMu serializes Set so subscribers observe changes in order and
	// a Set returns only after every subscriber ran.
	setMu sync.Mutex

	mu          sync.RWMutex
	current     Config
	subscribers []func(Config)
}

// NewContext creates a Context starting on initial.
func NewContext(endpoints Endpoints, initial Selection) *Context {
	c := &Context{endpoints: endpoints}
	c.current = c.derive(initial, 1)
	return c
}

func (c *Context) derive(s Selection, epoch uint64) Config {
	ep := c.endpoints.get(s)
	return Config{
		Network:    s,
		Passphrase: s.Passphrase(),
		HorizonURL: ep.HorizonURL,
		RPCURL:     ep.RPCURL,
		Contracts:  ep.Contracts,
		Epoch:      epoch,
	}
}

// Current returns the active configuration.
func (c *Context) Current() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Subscribe registers fn to be called synchronously on every network change.
// Subscribers run in registration order.
func (c *Context) Subscribe(fn func(Config)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Set switches the active network. Setting the current network is a no-op.
// When Set returns, every subscriber has observed the new configuration.
func (c *Context) Set(s Selection) Config {
	c.setMu.Lock()
	defer c.setMu.Unlock()

	c.mu.Lock()
	if c.current.Network == s {
		cfg := c.current
		c.mu.Unlock()
		return cfg
	}
	cfg := c.derive(s, c.current.Epoch+1)
	c.current = cfg
	subs := make([]func(Config), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(cfg)
	}
	return cfg
}
