package network

// Contracts are the Blend protocol deployments and token contracts of a network.
type Contracts struct {
	PoolFactory  string `json:"poolFactory"`
	Backstop     string `json:"backstop"`
	Emitter      string `json:"emitter"`
	CometFactory string `json:"cometFactory,omitempty"`
	Comet        string `json:"comet,omitempty"`
	BLND         string `json:"blnd"`
	USDC         string `json:"usdc"`
	XLM          string `json:"xlm"`
	WETH         string `json:"weth,omitempty"`
	WBTC         string `json:"wbtc,omitempty"`

	// KnownPools lists pool contract addresses to load real reserves from.
	KnownPools []string `json:"knownPools,omitempty"`
}

// DefaultMainnetContracts returns the public Blend mainnet deployment.
func DefaultMainnetContracts() Contracts {
	return Contracts{
		PoolFactory:  "CCZD6ESMOGMPWH2KRO4O7RGTAPGTUPFWFQBELQSS7ZUK63V3TZWETGAG",
		Backstop:     "CAO3AGAMZVRMHITL36EJ2VZQWKYRPWMQAPDQD5YEOF3GIF7T44U4JAL3",
		Emitter:      "CCOQM6S7ICIUWA225O5PSJWUBEMXGFSSW2PQFO6FP4DQEKMS5DASRGRR",
		CometFactory: "CA2LVIPU6HJHHPPD6EDDYJTV2QEUBPGOAVJ4VIYNTMFUCRM4LFK3TJKF",
		Comet:        "CAS3FL6TLZKDGGSISDBWGGPXT3NRR4DYTZD7YOD3HMYO6LTJUVGRVEAM",
		BLND:         "CD25MNVTZDL4Y3XBCPCJXGXATV5WUHHOWMYFF4YBEGU5FCPGMYTVG5JY",
		USDC:         "CCW67TSZV3SSS2HXMBQ5JFGCKJNXKZM7UQUWUZPUTHXSTZLEO7SJMI75",
		XLM:          "CAS3J7GYLGXMF6TDJBBYYSE3HQ6BBSMLNUQ34T6TZMYMW2EVH34XOWMA",
	}
}

// DefaultTestnetContracts returns the Blend v2 testnet deployment.
func DefaultTestnetContracts() Contracts {
	return Contracts{
		PoolFactory:  "CDIE73IJJKOWXWCPU5GWQ745FUKWCSH3YKZRF5IQW7GE3G7YAZ773MYK",
		Backstop:     "CC4TSDVQKBAYMK4BEDM65CSNB3ISI2A54OOBRO6IPSTFHJY3DEEKHRKV",
		Emitter:      "CBKGB24EGKHUS3755GU6IC5YFNDAGCRCGYAONM3HKES2223TIHKQ4QBZ",
		CometFactory: "CD7E4SS4ZIY2JDEZP3PTWAIBBWMRG2NNFFXKHC7FCW43ZWTSI2KJYG5P",
		Comet:        "CAVWKK4WB7SWLKI7VBPPGP6KNUKLUAWQIHE44V7G7MYOG4K23PW2PXKJ",
		BLND:         "CB22KRA3YZVCNCQI64JQ5WE7UY2VAV7WFLK6A2JN3HEX56T2EDAFO7QF",
		USDC:         "CAQCFVLOBK5GIULPNZRGATJJMIZL5BSP7X5YJVMGCPTUEPFM4AVSRCJU",
		XLM:          "CDLZFC3SYJYDZT7K67VZ75HPJVIEUVNIXF47ZG2FB2RMQQVU2HHGCYSC",
		WETH:         "CAZAQB3D7KSLSNOSQKYD2V4JP5V2Y3B4RDJZRLBFCCIXDCTE3WHSY3UE",
		WBTC:         "CAP5AMC2OHNVREO66DFIN6DHJMPOBAJ2KCDDIMFBR7WWJH5RZBFM3UEI",
	}
}

// AssetName returns the ticker of a token contract, or "Unknown".
func (c Contracts) AssetName(address string) string {
	switch {
	case address == "":
		return "Unknown"
	case address == c.USDC:
		return "USDC"
	case address == c.XLM:
		return "XLM"
	case address == c.BLND:
		return "BLND"
	case address == c.WETH:
		return "wETH"
	case address == c.WBTC:
		return "wBTC"
	}
	return "Unknown"
}
