package model

// KeyFile represents the .skey file structure
type KeyFile struct {
	Network    string    `json:"network"`
	Address    string    `json:"address"`
	QR         string    `json:"QR"`
	KDF        KDFParams `json:"kdf"`
	Salt       string    `json:"salt"`
	Nonce      string    `json:"nonce"`
	CipherText string    `json:"cipherText"`
}

// KDFParams are the scrypt cost parameters the key file was encrypted with
type KDFParams struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

// KeyData represents decrypted key material
type KeyData struct {
	Seed      []byte `json:"seed"` // 32 bytes ed25519 seed (stored as base64 in JSON)
	CreatedAt string `json:"createdAt"`
}
