package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/scf-launchpad/internal/model"
)

var testParams = model.KDFParams{N: 1 << 10, R: 8, P: 1}

func testData() *model.KeyData {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	return &model.KeyData{Seed: seed, CreatedAt: "2026-01-02T03:04:05Z"}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.skey")
	header := Header{Network: "stellar", Address: "GADDR", QR: "cXI="}

	require.NoError(t, EncryptKeyFile(path, header, testData(), []byte("pw"), testParams))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, utf8BOM, raw[:3])

	kf, data, err := DecryptKeyFile(path, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "GADDR", kf.Address)
	assert.Equal(t, testParams, kf.KDF)
	assert.Equal(t, testData().Seed, data.Seed)
	assert.Equal(t, "2026-01-02T03:04:05Z", data.CreatedAt)
}

func TestDecryptWrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.skey")
	require.NoError(t, EncryptKeyFile(path, Header{}, testData(), []byte("pw"), testParams))

	_, _, err := DecryptKeyFile(path, []byte("nope"))
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestEncryptRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.skey")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	err := EncryptKeyFile(path, Header{}, testData(), []byte("pw"), testParams)
	assert.True(t, IsFileExistsError(err))
}

func TestEncryptChecksExtension(t *testing.T) {
	err := EncryptKeyFile(filepath.Join(t.TempDir(), "wallet.json"), Header{}, testData(), []byte("pw"), testParams)
	assert.ErrorContains(t, err, KeyFileExt)
}

func TestReadKeyFileMissingAndEmpty(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadKeyFile(filepath.Join(dir, "missing.skey"))
	assert.ErrorContains(t, err, "does not exist")

	empty := filepath.Join(dir, "empty.skey")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	_, err = ReadKeyFile(empty)
	assert.ErrorContains(t, err, "empty")
}

func TestRekey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.skey")
	require.NoError(t, EncryptKeyFile(path, Header{Address: "GADDR"}, testData(), []byte("old"), testParams))

	newParams := model.KDFParams{N: 1 << 11, R: 8, P: 1}
	require.NoError(t, Rekey(path, []byte("old"), []byte("new"), newParams))

	_, _, err := DecryptKeyFile(path, []byte("old"))
	assert.ErrorIs(t, err, ErrInvalidPassword)

	kf, data, err := DecryptKeyFile(path, []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, "GADDR", kf.Address)
	assert.Equal(t, newParams, kf.KDF)
	assert.Equal(t, testData().Seed, data.Seed)
}
