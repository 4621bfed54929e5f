package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/scf-launchpad/internal/model"
)

// ErrInvalidPassword is returned when the key file cannot be opened with the given password.
var ErrInvalidPassword = errors.New("invalid password")

// ReadKeyFile reads the public part of a .skey file (without decryption)
func ReadKeyFile(filePath string) (*model.KeyFile, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("file does not exist")
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	fileData = bytes.TrimPrefix(fileData, utf8BOM)

	var kf model.KeyFile
	if err := json.Unmarshal(fileData, &kf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal key file: %w", err)
	}
	if kf.KDF.N == 0 {
		// files written before the parameters were recorded
		kf.KDF = DefaultParams
	}
	return &kf, nil
}

// DecryptKeyFile reads and decrypts a .skey file
// password must be []byte for security (caller should zero it after use)
func DecryptKeyFile(filePath string, password []byte) (*model.KeyFile, *model.KeyData, error) {
	kf, err := ReadKeyFile(filePath)
	if err != nil {
		return nil, nil, err
	}
	data, err := open(kf, password)
	if err != nil {
		return nil, nil, err
	}
	return kf, data, nil
}

func open(kf *model.KeyFile, password []byte) (*model.KeyData, error) {
	salt, err := base64.StdEncoding.DecodeString(kf.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(kf.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(kf.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(password, salt, kf.KDF)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesGCM.NonceSize() {
		return nil, errors.New("invalid nonce length")
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var data model.KeyData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal key data: %w", err)
	}
	return &data, nil
}

// Rekey re-encrypts a key file in place with a new password and scrypt parameters.
// Salt and nonce are regenerated; the public header is kept.
func Rekey(filePath string, oldPassword, newPassword []byte, params model.KDFParams) error {
	kf, data, err := DecryptKeyFile(filePath, oldPassword)
	if err != nil {
		return err
	}
	defer clear(data.Seed)

	sealed, err := seal(Header{Network: kf.Network, Address: kf.Address, QR: kf.QR}, data, newPassword, params)
	if err != nil {
		return err
	}
	return writeKeyFile(filePath, sealed)
}
