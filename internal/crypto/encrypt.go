package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlexZinkM/scf-launchpad/internal/model"

	"golang.org/x/crypto/scrypt"
)

// KeyFileExt is the extension every key file must carry.
const KeyFileExt = ".skey"

const (
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

// utf8BOM is prepended so the file displays correctly in Windows editors.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DefaultParams are the scrypt parameters for newly created key files.
//
// N=2^18 (~256MB RAM, 0.5-2s) keeps brute force expensive while still
// running on machines with modest memory.
var DefaultParams = model.KDFParams{N: 1 << 18, R: 8, P: 1}

// FileExistsError is returned when the target key file already has content.
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("file is not empty: %s", e.Path)
}

// IsFileExistsError checks if err is a FileExistsError
func IsFileExistsError(err error) bool {
	var target *FileExistsError
	return errors.As(err, &target)
}

// Header is the public part of a key file written next to the ciphertext.
type Header struct {
	Network string
	Address string
	QR      string
}

// EncryptKeyFile encrypts key data and writes it to a new .skey file.
// password must be []byte for security (caller should zero it after use)
func EncryptKeyFile(filePath string, header Header, data *model.KeyData, password []byte, params model.KDFParams) error {
	if !strings.HasSuffix(filePath, KeyFileExt) {
		return fmt.Errorf("file must have %s extension", KeyFileExt)
	}

	if info, err := os.Stat(filePath); err == nil && info.Size() > 0 {
		return &FileExistsError{Path: filePath}
	}

	kf, err := seal(header, data, password, params)
	if err != nil {
		return err
	}
	return writeKeyFile(filePath, kf)
}

func seal(header Header, data *model.KeyData, password []byte, params model.KDFParams) (*model.KeyFile, error) {
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, params)
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	return &model.KeyFile{
		Network:    header.Network,
		Address:    header.Address,
		QR:         header.QR,
		KDF:        params,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

func newGCM(password, salt []byte, params model.KDFParams) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, params.N, params.R, params.P, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

func writeKeyFile(filePath string, kf *model.KeyFile) error {
	fileData, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal key file: %w", err)
	}

	out := make([]byte, 0, len(utf8BOM)+len(fileData))
	out = append(out, utf8BOM...)
	out = append(out, fileData...)

	if err := os.WriteFile(filePath, out, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
