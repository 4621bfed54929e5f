package service

import (
	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

// DemoPoolAddress marks pools that are placeholders rather than deployed contracts.
const DemoPoolAddress = "TESTNET_DEMO_MODE"

// DemoDataProvider produces placeholder Blend data for testnet showcases.
// It only accepts a network.TestnetConfig, so mainnet code paths cannot reach it.
type DemoDataProvider interface {
	Pools(cfg network.TestnetConfig) []model.PoolInfo
	Positions(cfg network.TestnetConfig, address string) []model.Position
}

// SeededDemo derives stable demo positions from a hash of the wallet address,
// so the same wallet always sees the same portfolio.
type SeededDemo struct{}

type demoPool struct {
	asset                string
	totalSupply          float64
	totalBorrow          float64
	supplyAPY            float64
	borrowAPY            float64
	utilizationRate      float64
	liquidationThreshold float64
}

type demoAsset struct {
	asset         string
	minAmount     int64
	maxAmount     int64
	preferLending bool
}

var demoPools = []demoPool{
	{"USDC", 1250000, 980000, 8.5, 12.3, 0.784, 0.85},
	{"XLM", 5000000, 3200000, 12.1, 16.8, 0.64, 0.75},
	{"BLND", 850000, 420000, 15.2, 19.5, 0.494, 0.70},
	{"wETH", 320000, 180000, 6.8, 9.4, 0.5625, 0.80},
	{"wBTC", 45000, 32000, 4.2, 7.1, 0.711, 0.75},
}

var demoAssets = []demoAsset{
	{"USDC", 5000, 25000, true},
	{"XLM", 10000, 50000, false},
	{"BLND", 2000, 8000, true},
	{"wETH", 3000, 12000, false},
	{"wBTC", 1000, 5000, true},
}

func assetAddress(c network.Contracts, asset string) string {
	switch asset {
	case "USDC":
		return c.USDC
	case "XLM":
		return c.XLM
	case "BLND":
		return c.BLND
	case "wETH":
		return c.WETH
	case "wBTC":
		return c.WBTC
	}
	return ""
}

func findDemoPool(asset string) (demoPool, bool) {
	for _, p := range demoPools {
		if p.asset == asset {
			return p, true
		}
	}
	return demoPool{}, false
}

func (p demoPool) info(c network.Contracts) model.PoolInfo {
	return model.PoolInfo{
		Asset:                p.asset,
		Address:              assetAddress(c, p.asset),
		PoolAddress:          DemoPoolAddress,
		TotalSupply:          p.totalSupply,
		TotalBorrow:          p.totalBorrow,
		SupplyAPY:            p.supplyAPY,
		BorrowAPY:            p.borrowAPY,
		UtilizationRate:      p.utilizationRate,
		LiquidationThreshold: p.liquidationThreshold,
	}
}

// Pools returns one demo reserve per known testnet asset.
func (SeededDemo) Pools(cfg network.TestnetConfig) []model.PoolInfo {
	contracts := cfg.Config().Contracts
	out := make([]model.PoolInfo, 0, len(demoPools))
	for _, p := range demoPools {
		out = append(out, p.info(contracts))
	}
	return out
}

// Positions returns the demo positions of address. The first three assets always
// produce a position, the rest depend on the address hash. At least two are returned.
func (SeededDemo) Positions(cfg network.TestnetConfig, address string) []model.Position {
	contracts := cfg.Config().Contracts
	positions := make([]model.Position, 0, len(demoAssets))

	for i, a := range demoAssets {
		addr := assetAddress(contracts, a.asset)
		seed := hashString(address + addr)
		if i >= 3 && seed%100 <= 30 {
			continue
		}
		pool, ok := findDemoPool(a.asset)
		if !ok {
			continue
		}

		lending := seed%100 > 65
		if a.preferLending {
			lending = seed%100 > 25
		}
		amount := float64(a.minAmount + seed%(a.maxAmount-a.minAmount))

		supplyAPY := pool.supplyAPY
		if i == 1 && lending {
			// a lower yield keeps the yield suggestion visible
			supplyAPY = max(3, pool.supplyAPY-5)
		}

		p := model.Position{
			Asset:                pool.asset,
			Address:              addr,
			Amount:               amount,
			TotalValue:           amount,
			LiquidationThreshold: pool.liquidationThreshold,
			Status:               demoStatus(lending, seed),
			Demo:                 true,
		}
		if lending {
			p.ID = addr + "-supply"
			p.Type = model.PositionLending
			p.APY = supplyAPY
			p.HealthFactor = 2.1 + float64(seed%40)/100
		} else {
			p.ID = addr + "-borrow"
			p.Type = model.PositionBorrowing
			p.APY = -pool.borrowAPY
			p.HealthFactor = 1.3 + float64(seed%60)/100
		}
		positions = append(positions, p)
	}

	if len(positions) < 2 {
		usdc, _ := findDemoPool("USDC")
		xlm, _ := findDemoPool("XLM")
		positions = append(positions,
			model.Position{
				ID:                   contracts.USDC + "-supply-guaranteed",
				Asset:                usdc.asset,
				Address:              contracts.USDC,
				Type:                 model.PositionLending,
				Amount:               15000,
				APY:                  usdc.supplyAPY,
				TotalValue:           15000,
				HealthFactor:         2.4,
				LiquidationThreshold: usdc.liquidationThreshold,
				Status:               model.StatusHealthy,
				Demo:                 true,
			},
			model.Position{
				ID:                   contracts.XLM + "-borrow-guaranteed",
				Asset:                xlm.asset,
				Address:              contracts.XLM,
				Type:                 model.PositionBorrowing,
				Amount:               8000,
				APY:                  -xlm.borrowAPY,
				TotalValue:           8000,
				HealthFactor:         1.6,
				LiquidationThreshold: xlm.liquidationThreshold,
				Status:               model.StatusHealthy,
				Demo:                 true,
			},
		)
	}
	return positions
}

func demoStatus(lending bool, seed int64) string {
	if !lending && seed%100 > 85 {
		return model.StatusAtRisk
	}
	return model.StatusHealthy
}

// hashString is a 32-bit multiplicative string hash (h*31 + c), returned as a non-negative value.
func hashString(s string) int64 {
	var h int32
	for _, c := range s {
		h = h<<5 - h + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
