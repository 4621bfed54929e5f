// Package service holds the network-bound services of the launchpad: Stellar
// ledger reads, Blend positions, the wallet and IPFS pinning. Services are built
// explicitly and grouped in a Registry; there are no package-level instances.
package service

import (
	"github.com/AlexZinkM/scf-launchpad/internal/client"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

// Tagged is a service result together with the network binding it was produced under.
type Tagged[T any] struct {
	Network network.Selection `json:"network"`
	Epoch   uint64            `json:"epoch"`
	Value   T                 `json:"value"`
}

func tag[T any](cfg network.Config, v T) Tagged[T] {
	return Tagged[T]{Network: cfg.Network, Epoch: cfg.Epoch, Value: v}
}

// IsCurrent reports whether t was produced under cfg.
func (t Tagged[T]) IsCurrent(cfg network.Config) bool {
	return t.Network == cfg.Network && t.Epoch == cfg.Epoch
}

// ClientOptions returns the outbound client options for a target
// ("horizon", "soroban", "pinata", "coingecko").
type ClientOptions func(target string) []client.Option

func (f ClientOptions) get(target string) []client.Option {
	if f == nil {
		return nil
	}
	return f(target)
}

// sameBinding reports whether a and b describe the same effective binding.
func sameBinding(a, b network.Config) bool {
	return a.Network == b.Network &&
		a.Epoch == b.Epoch &&
		a.HorizonURL == b.HorizonURL &&
		a.RPCURL == b.RPCURL
}
