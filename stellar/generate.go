package stellar

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"time"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/crypto"
	"github.com/AlexZinkM/scf-launchpad/internal/model"

	"github.com/skip2/go-qrcode"
)

const (
	networkStellar = "stellar"
)

// GenerateKeyFile generates a new Stellar keypair and saves it to a .skey file.
// Returns the generated account address on success.
// password must be []byte for security (caller should zero it after use)
func GenerateKeyFile(filePath string, password []byte, params model.KDFParams) (address string, err error) {
	if filepath.Ext(filePath) != crypto.KeyFileExt {
		return "", fmt.Errorf("file must have %s extension", crypto.KeyFileExt)
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate keypair: %w", err)
	}
	defer clear(priv)

	address, err = common.EncodeStrKey(common.VersionAccountID, pub)
	if err != nil {
		return "", err
	}

	qrCode, err := generateQRCode(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	data := &model.KeyData{
		Seed:      priv.Seed(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	defer clear(data.Seed)

	header := crypto.Header{Network: networkStellar, Address: address, QR: qrCode}
	if err := crypto.EncryptKeyFile(filePath, header, data, password, params); err != nil {
		if crypto.IsFileExistsError(err) {
			return "", err
		}
		return "", fmt.Errorf("failed to encrypt key file: %w", err)
	}

	return address, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
