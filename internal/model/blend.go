package model

// PositionType tells a supply from a borrow.
type PositionType string

const (
	PositionLending   PositionType = "lending"
	PositionBorrowing PositionType = "borrowing"
)

// Position statuses.
const (
	StatusHealthy = "healthy"
	StatusAtRisk  = "at_risk"
	StatusActive  = "active"
)

// Position is a lending or borrowing position in a Blend pool.
// Demo positions are generated for testnet and never stand for real funds.
type Position struct {
	ID                   string       `json:"id"`
	Asset                string       `json:"asset"`
	Address              string       `json:"address"`
	Type                 PositionType `json:"type"`
	Amount               float64      `json:"amount"`
	APY                  float64      `json:"apy"`
	TotalValue           float64      `json:"totalValue"`
	HealthFactor         float64      `json:"healthFactor"`
	LiquidationThreshold float64      `json:"liquidationThreshold"`
	Status               string       `json:"status"`
	Demo                 bool         `json:"demo"`
}

// PoolInfo describes one reserve of a Blend pool.
type PoolInfo struct {
	Asset                string  `json:"asset"`
	Address              string  `json:"address"`
	PoolAddress          string  `json:"poolAddress"`
	TotalSupply          float64 `json:"totalSupply"`
	TotalBorrow          float64 `json:"totalBorrow"`
	SupplyAPY            float64 `json:"supplyAPY"`
	BorrowAPY            float64 `json:"borrowAPY"`
	UtilizationRate      float64 `json:"utilizationRate"`
	LiquidationThreshold float64 `json:"liquidationThreshold"`
	IsRealData           bool    `json:"isRealData"`
}

// Suggestion is an optimization hint derived from positions.
type Suggestion struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	EstimatedGain float64 `json:"estimatedGain"`
	RiskLevel     string  `json:"riskLevel"`
}

// PositionsResponse represents response for GET /positions
type PositionsResponse struct {
	Address   string     `json:"address"`
	Network   string     `json:"network"`
	Epoch     uint64     `json:"epoch"`
	Positions []Position `json:"positions"`
}

// SuggestionsResponse represents response for GET /positions/suggestions
type SuggestionsResponse struct {
	Address     string       `json:"address"`
	Network     string       `json:"network"`
	Epoch       uint64       `json:"epoch"`
	Suggestions []Suggestion `json:"suggestions"`
}

// PoolsResponse represents response for GET /pools
type PoolsResponse struct {
	Network string     `json:"network"`
	Epoch   uint64     `json:"epoch"`
	Pools   []PoolInfo `json:"pools"`
}

// Status represents response for GET /status
type Status struct {
	Network       string `json:"network"`
	Epoch         uint64 `json:"epoch"`
	RPCHealthy    bool   `json:"rpcHealthy"`
	LatestLedger  uint32 `json:"latestLedger"`
	Passphrase    string `json:"passphrase"`
	PassphraseOK  bool   `json:"passphraseOk"`
	PoolFactoryOK bool   `json:"poolFactoryOk"`
	BackstopOK    bool   `json:"backstopOk"`
	// KnownPools reports for each configured pool contract whether it is deployed.
	KnownPools map[string]bool `json:"knownPools,omitempty"`
	Error      string          `json:"error,omitempty"`
}
