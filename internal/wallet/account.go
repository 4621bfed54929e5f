package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

// Account is the normalized identity of a connected wallet.
type Account struct {
	Address string `json:"address"`
}

// extensionResult covers the object shapes returned by different extension versions.
type extensionResult struct {
	Address     string `json:"address"`
	PublicKey   string `json:"publicKey"`
	Network     string `json:"network"`
	Passphrase  string `json:"networkPassphrase"`
	SignedTxXDR string `json:"signedTxXdr"`
	Error       any    `json:"error"`
}

func decodeResult(raw json.RawMessage) (string, *extensionResult, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil, errors.New("empty extension response")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil, nil
	}

	var res extensionResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", nil, fmt.Errorf("unrecognized extension response: %w", err)
	}
	if res.Error != nil {
		return "", nil, fmt.Errorf("extension error: %v", res.Error)
	}
	return "", &res, nil
}

// ParseAccount normalizes an address response: a bare string, {address} or {publicKey}.
func ParseAccount(raw json.RawMessage) (Account, error) {
	s, res, err := decodeResult(raw)
	if err != nil {
		return Account{}, err
	}

	address := s
	if res != nil {
		address = res.Address
		if address == "" {
			address = res.PublicKey
		}
	}
	address = strings.TrimSpace(address)

	if err := common.ValidateAccountID(address); err != nil {
		return Account{}, err
	}
	return Account{Address: address}, nil
}

// ParseNetwork normalizes a network response: "PUBLIC"/"TESTNET", or an object carrying
// network and/or networkPassphrase. The passphrase wins when both are present.
func ParseNetwork(raw json.RawMessage) (network.Selection, error) {
	s, res, err := decodeResult(raw)
	if err != nil {
		return "", err
	}

	if res != nil {
		if res.Passphrase != "" {
			sel, ok := network.SelectionForPassphrase(res.Passphrase)
			if !ok {
				return "", fmt.Errorf("unsupported network passphrase %q", res.Passphrase)
			}
			return sel, nil
		}
		s = res.Network
	}
	return network.ParseSelection(s)
}

func parseSigned(raw json.RawMessage) (string, error) {
	s, res, err := decodeResult(raw)
	if err != nil {
		return "", err
	}
	if res != nil {
		s = res.SignedTxXDR
	}
	if s == "" {
		return "", errors.New("extension returned no signed transaction")
	}
	return s, nil
}
