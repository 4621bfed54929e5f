package model

// Balance is one asset held by an account.
type Balance struct {
	Asset   string  `json:"asset"`
	Issuer  string  `json:"issuer,omitempty"`
	Balance string  `json:"balance"`
	Limit   *string `json:"limit"`
}

// BalancesResponse represents response for GET /account/balances
type BalancesResponse struct {
	Address  string    `json:"address"`
	Network  string    `json:"network"`
	Epoch    uint64    `json:"epoch"`
	Balances []Balance `json:"balances"`
}

// AccountSummary represents response for GET /account/summary
type AccountSummary struct {
	Address  string    `json:"address"`
	Network  string    `json:"network"`
	XLM      string    `json:"xlm"`
	Balances []Balance `json:"balances"`
	// Rate is the XLM/USD price; empty when the price feed is unavailable.
	Rate     string `json:"rate"`
	XLMInUSD string `json:"xlm_amount_in_usd"`
}
