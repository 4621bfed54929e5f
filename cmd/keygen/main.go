// Command keygen creates a new Stellar key file for the local wallet extension.
// Usage: go run ./cmd/keygen [-out wallet.skey]
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"os"

	"github.com/AlexZinkM/scf-launchpad/internal/config"
	"github.com/AlexZinkM/scf-launchpad/internal/crypto"
	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/stellar"
)

func main() {
	out := flag.String("out", "", "key file path (default: WALLET_FILE_PATH)")
	flag.Parse()

	resp, code := generate(*out)
	json.NewEncoder(os.Stdout).Encode(resp)
	os.Exit(code)
}

func generate(path string) (model.GenerateResponse, int) {
	if path == "" {
		if err := config.Init(); err != nil {
			return failure(err), 1
		}
		path = config.GetWalletFilePath()
	}
	if path == "" {
		return failure(errors.New("no key file path: pass -out or set WALLET_FILE_PATH")), 2
	}

	password, err := config.ReadPassword("New wallet password: ")
	if err != nil {
		return failure(err), 1
	}
	defer clear(password)

	confirm, err := config.ReadPassword("Repeat password: ")
	if err != nil {
		return failure(err), 1
	}
	defer clear(confirm)
	if !bytes.Equal(password, confirm) {
		return failure(errors.New("passwords do not match")), 1
	}

	address, err := stellar.GenerateKeyFile(path, password, crypto.DefaultParams)
	if err != nil {
		return failure(err), 1
	}
	return model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		Address: address,
		Path:    path,
	}, 0
}

func failure(err error) model.GenerateResponse {
	return model.GenerateResponse{Success: false, Message: err.Error()}
}
