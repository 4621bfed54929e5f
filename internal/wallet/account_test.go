package wallet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

func TestParseAccountShapes(t *testing.T) {
	addr := testAddress(t, 7)

	for _, raw := range []string{
		`"` + addr + `"`,
		`{"address":"` + addr + `"}`,
		`{"publicKey":"` + addr + `"}`,
		`{"address":" ` + addr + ` "}`,
	} {
		acc, err := ParseAccount(json.RawMessage(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, addr, acc.Address)
	}
}

func TestParseAccountRejects(t *testing.T) {
	_, err := ParseAccount(json.RawMessage(`"GABC"`))
	assert.ErrorIs(t, err, common.ErrInvalidAddress)

	_, err = ParseAccount(json.RawMessage(`{"error":"User declined access"}`))
	assert.ErrorContains(t, err, "User declined access")

	_, err = ParseAccount(json.RawMessage(`null`))
	assert.Error(t, err)

	_, err = ParseAccount(json.RawMessage(`42`))
	assert.Error(t, err)
}

func TestParseNetworkShapes(t *testing.T) {
	cases := []struct {
		raw  string
		want network.Selection
	}{
		{`"TESTNET"`, network.Testnet},
		{`"PUBLIC"`, network.Mainnet},
		{`{"network":"PUBLIC"}`, network.Mainnet},
		{`{"network":"PUBLIC","networkPassphrase":"Test SDF Network ; September 2015"}`, network.Testnet},
		{`{"networkPassphrase":"Public Global Stellar Network ; September 2015"}`, network.Mainnet},
	}
	for _, tc := range cases {
		got, err := ParseNetwork(json.RawMessage(tc.raw))
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}

	_, err := ParseNetwork(json.RawMessage(`{"networkPassphrase":"Standalone Network ; February 2017"}`))
	assert.Error(t, err)
}

func TestParseSigned(t *testing.T) {
	s, err := parseSigned(json.RawMessage(`"AAAA"`))
	require.NoError(t, err)
	assert.Equal(t, "AAAA", s)

	s, err = parseSigned(json.RawMessage(`{"signedTxXdr":"BBBB"}`))
	require.NoError(t, err)
	assert.Equal(t, "BBBB", s)

	_, err = parseSigned(json.RawMessage(`{}`))
	assert.Error(t, err)
}
