// Command rekey re-encrypts a key file with a new password and the current scrypt parameters.
// Salt and nonce are regenerated; the address and QR code are kept.
// Usage: go run ./cmd/rekey [-file wallet.skey]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/AlexZinkM/scf-launchpad/internal/config"
	"github.com/AlexZinkM/scf-launchpad/internal/crypto"
)

func main() {
	file := flag.String("file", "", "key file path (default: WALLET_FILE_PATH)")
	flag.Parse()

	if err := rekey(*file); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("Key file re-encrypted")
}

func rekey(path string) error {
	if path == "" {
		if err := config.Init(); err != nil {
			return err
		}
		path = config.GetWalletFilePath()
	}
	if path == "" {
		return fmt.Errorf("no key file path: pass -file or set WALLET_FILE_PATH")
	}

	kf, err := crypto.ReadKeyFile(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Key file for %s (scrypt N=%d)\n", kf.Address, kf.KDF.N)

	oldPassword, err := config.ReadPassword("Current password: ")
	if err != nil {
		return err
	}
	defer clear(oldPassword)

	newPassword, err := config.ReadPassword("New password: ")
	if err != nil {
		return err
	}
	defer clear(newPassword)

	return crypto.Rekey(path, oldPassword, newPassword, crypto.DefaultParams)
}
