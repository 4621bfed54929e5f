package model

// SignRequest represents request for POST /wallet/sign
type SignRequest struct {
	XDR string `json:"xdr"`
}

// SignResponse represents response for POST /wallet/sign
type SignResponse struct {
	SignedXDR         string `json:"signedXdr"`
	Network           string `json:"network"`
	NetworkPassphrase string `json:"networkPassphrase"`
}

// ConnectRequest represents request for POST /wallet/connect
type ConnectRequest struct {
	// WalletType defaults to the last used wallet, then freighter.
	WalletType string `json:"walletType,omitempty"`
}

// NetworkRequest represents request for POST /network
type NetworkRequest struct {
	Network string `json:"network"`
}

// NetworkResponse represents response for GET|POST /network
type NetworkResponse struct {
	Network    string `json:"network"`
	Passphrase string `json:"passphrase"`
	HorizonURL string `json:"horizonUrl"`
	RPCURL     string `json:"rpcUrl"`
	Path       string `json:"path"`
	Epoch      uint64 `json:"epoch"`
}
