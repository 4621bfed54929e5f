package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

func TestInitDefaults(t *testing.T) {
	require.NoError(t, Init(filepath.Join(t.TempDir(), "missing.env")))
	c := Get()

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, network.Testnet, c.Selection())
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.True(t, c.DemoData)
	assert.Equal(t, 10, c.PinRatePerMinute)

	ep := c.Endpoints()
	assert.Equal(t, "https://horizon-testnet.stellar.org", ep.Testnet.HorizonURL)
	assert.Equal(t, network.DefaultMainnetContracts().PoolFactory, ep.Mainnet.Contracts.PoolFactory)
	assert.False(t, c.PinataCredentials().Valid())
}

func TestInitFromEnvFile(t *testing.T) {
	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("STELLAR_NETWORK=PUBLIC\nMAINNET_KNOWN_POOLS=CPOOL1,CPOOL2\nPINATA_JWT=secret\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("STELLAR_NETWORK")
		os.Unsetenv("MAINNET_KNOWN_POOLS")
		os.Unsetenv("PINATA_JWT")
	})
	t.Setenv("MAINNET_HORIZON_URL", "http://horizon.local")

	require.NoError(t, Init(env))
	c := Get()
	assert.Equal(t, network.Mainnet, c.Selection())
	ep := c.Endpoints()
	assert.Equal(t, []string{"CPOOL1", "CPOOL2"}, ep.Mainnet.Contracts.KnownPools)
	assert.Equal(t, "http://horizon.local", ep.Mainnet.HorizonURL)
	assert.True(t, c.PinataCredentials().Valid())
}

func TestInitRejectsUnknownNetwork(t *testing.T) {
	t.Setenv("STELLAR_NETWORK", "futurenet")
	assert.Error(t, Init(filepath.Join(t.TempDir(), "missing.env")))
}

func TestPasswordNotSet(t *testing.T) {
	passwordBytes = nil
	_, err := GetWalletPasswordBytes()
	assert.Error(t, err)

	passwordBytes = []byte("pw")
	t.Cleanup(func() { passwordBytes = nil })
	got, err := GetWalletPasswordBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("pw"), got)
	got[0] = 'x'
	assert.Equal(t, []byte("pw"), passwordBytes, "callers get a copy")
}
