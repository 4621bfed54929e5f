package wallet

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

func newTestSession(t *testing.T, ext Extension) (*Session, *network.Context) {
	t.Helper()
	nc := network.NewContext(network.DefaultEndpoints(), network.Testnet)
	s := NewSession(NewFreighterAdapter(ext), nc.Current(), zaptest.NewLogger(t).Sugar())
	nc.Subscribe(s.UpdateNetwork)
	return s, nc
}

func TestConnectNotInstalledDoesNotPrompt(t *testing.T) {
	ext := newFakeExtension(t)
	ext.installed = false
	s, _ := newTestSession(t, ext)

	_, err := s.Connect(context.Background())
	require.ErrorIs(t, err, common.ErrWalletNotInstalled)
	assert.Contains(t, err.Error(), common.FreighterInstallURL)
	assert.Zero(t, ext.prompts.Load())

	snap := s.Snapshot()
	assert.Equal(t, StateDisconnected, snap.State)
	assert.NotEmpty(t, snap.Error)
}

func TestConnectNilExtension(t *testing.T) {
	s, _ := newTestSession(t, nil)
	_, err := s.Connect(context.Background())
	assert.ErrorIs(t, err, common.ErrWalletNotInstalled)
}

func TestConnectPermissionDenied(t *testing.T) {
	ext := newFakeExtension(t)
	ext.allowed = false
	ext.grant = false
	s, _ := newTestSession(t, ext)

	_, err := s.Connect(context.Background())
	require.ErrorIs(t, err, common.ErrPermissionDenied)
	assert.Equal(t, StateDisconnected, s.Snapshot().State)
}

func TestConnectGrantsPermissionThenConnects(t *testing.T) {
	ext := newFakeExtension(t)
	ext.allowed = false
	s, _ := newTestSession(t, ext)

	acc, err := s.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testAddress(t, 1), acc.Address)
	assert.EqualValues(t, 2, ext.prompts.Load())
}

func TestConnectRejected(t *testing.T) {
	ext := newFakeExtension(t)
	ext.reject = true
	s, _ := newTestSession(t, ext)

	_, err := s.Connect(context.Background())
	require.ErrorIs(t, err, common.ErrConnectionRejected)
	assert.True(t, common.IsRetryable(err))

	snap := s.Snapshot()
	assert.False(t, snap.IsConnected)
	assert.Empty(t, snap.Address)
}

func TestConnectInvalidAddress(t *testing.T) {
	ext := newFakeExtension(t)
	ext.address = []byte(`"not-an-address"`)
	s, _ := newTestSession(t, ext)

	_, err := s.Connect(context.Background())
	assert.ErrorIs(t, err, common.ErrInvalidAddress)
}

func TestConnectSuccessSnapshot(t *testing.T) {
	ext := newFakeExtension(t)
	s, _ := newTestSession(t, ext)

	var states []State
	s.OnChange(func(snap Snapshot) { states = append(states, snap.State) })

	_, err := s.Connect(context.Background())
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, StateConnected, snap.State)
	assert.True(t, snap.IsConnected)
	assert.False(t, snap.IsConnecting)
	assert.Equal(t, testAddress(t, 1), snap.Address)
	assert.Equal(t, TypeFreighter, snap.WalletType)
	assert.Equal(t, network.Testnet, snap.Network)
	assert.Equal(t, []State{StateConnecting, StateConnected}, states)

	// Already connected: no new prompt.
	_, err = s.Connect(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, ext.prompts.Load())
}

func TestConcurrentConnectPromptsOnce(t *testing.T) {
	ext := newFakeExtension(t)
	ext.gate = make(chan struct{})
	s, _ := newTestSession(t, ext)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]Account, callers)
	errs := make([]error, callers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = s.Connect(context.Background())
	}()
	waitFor(t, func() bool { return ext.prompts.Load() == 1 })

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.Connect(context.Background())
		}(i)
	}
	waitFor(t, func() bool { return s.Snapshot().IsConnecting })
	close(ext.gate)
	wg.Wait()

	assert.EqualValues(t, 1, ext.prompts.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, testAddress(t, 1), results[i].Address)
	}
}

func TestCancelledCallerDoesNotAbortSharedHandshake(t *testing.T) {
	ext := newFakeExtension(t)
	ext.gate = make(chan struct{})
	s, _ := newTestSession(t, ext)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := s.Connect(ctx)
		first <- err
	}()
	waitFor(t, func() bool { return ext.prompts.Load() == 1 })

	second := make(chan Account, 1)
	go func() {
		acc, err := s.Connect(context.Background())
		assert.NoError(t, err)
		second <- acc
	}()

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(ext.gate)
	select {
	case acc := <-second:
		assert.Equal(t, testAddress(t, 1), acc.Address)
	case <-time.After(2 * time.Second):
		t.Fatal("joined caller did not get the handshake result")
	}
	assert.EqualValues(t, 1, ext.prompts.Load())
	assert.True(t, s.Snapshot().IsConnected)
}

func TestDisconnectDuringHandshakeDiscardsResult(t *testing.T) {
	ext := newFakeExtension(t)
	ext.gate = make(chan struct{})
	s, _ := newTestSession(t, ext)

	done := make(chan error, 1)
	go func() {
		_, err := s.Connect(context.Background())
		done <- err
	}()
	waitFor(t, func() bool { return ext.prompts.Load() == 1 })

	s.Disconnect()
	close(ext.gate)

	err := <-done
	assert.ErrorIs(t, err, common.ErrConnectionRejected)
	snap := s.Snapshot()
	assert.Equal(t, StateDisconnected, snap.State)
	assert.Empty(t, snap.Address)
}

func TestRestoreRespectsManualDisconnect(t *testing.T) {
	ext := newFakeExtension(t)
	s, _ := newTestSession(t, ext)

	require.True(t, s.Restore(context.Background()))
	assert.True(t, s.Snapshot().IsConnected)
	assert.Zero(t, ext.prompts.Load())

	s.Disconnect()
	assert.True(t, s.Snapshot().ManuallyDisconnected)
	assert.False(t, s.Restore(context.Background()))
	assert.False(t, s.Snapshot().IsConnected)

	_, err := s.Connect(context.Background())
	require.NoError(t, err)
	assert.False(t, s.Snapshot().ManuallyDisconnected)
}

func TestRestoreWithoutAuthorizationIsSilent(t *testing.T) {
	ext := newFakeExtension(t)
	ext.allowed = false
	s, _ := newTestSession(t, ext)

	assert.False(t, s.Restore(context.Background()))
	assert.Zero(t, ext.prompts.Load())
	assert.Empty(t, s.Snapshot().Error)
}

func TestSignRequiresConnection(t *testing.T) {
	s, _ := newTestSession(t, newFakeExtension(t))

	_, err := s.SignTransaction(context.Background(), "AAAA")
	assert.ErrorIs(t, err, common.ErrNotConnected)
}

func TestSignUsesBoundPassphrase(t *testing.T) {
	ext := newFakeExtension(t)
	s, nc := newTestSession(t, ext)
	_, err := s.Connect(context.Background())
	require.NoError(t, err)

	signed, err := s.SignTransaction(context.Background(), "AAAA")
	require.NoError(t, err)
	assert.Equal(t, "signed:AAAA", signed.XDR)
	assert.Equal(t, network.TestnetPassphrase, ext.passphrase)

	nc.Set(network.Mainnet)
	ext.network = []byte(`{"network":"PUBLIC","networkPassphrase":"Public Global Stellar Network ; September 2015"}`)

	signed, err = s.SignTransaction(context.Background(), "BBBB")
	require.NoError(t, err)
	assert.Equal(t, network.Mainnet, signed.Network)
	assert.Equal(t, network.MainnetPassphrase, ext.passphrase)
}

func TestSignNetworkMismatch(t *testing.T) {
	ext := newFakeExtension(t)
	s, nc := newTestSession(t, ext)
	_, err := s.Connect(context.Background())
	require.NoError(t, err)

	nc.Set(network.Mainnet)
	_, err = s.SignTransaction(context.Background(), "AAAA")
	require.ErrorIs(t, err, common.ErrSigningFailed)
	assert.Empty(t, ext.signed)
}

func TestSignFailureWrapped(t *testing.T) {
	ext := newFakeExtension(t)
	ext.signErr = errors.New("User declined")
	s, _ := newTestSession(t, ext)
	_, err := s.Connect(context.Background())
	require.NoError(t, err)

	_, err = s.SignTransaction(context.Background(), "AAAA")
	assert.ErrorIs(t, err, common.ErrSigningFailed)

	_, err = s.SignTransaction(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrSigningFailed)
}

func TestWalletConnectFailsExplicitly(t *testing.T) {
	nc := network.NewContext(network.DefaultEndpoints(), network.Testnet)
	s := NewSession(WalletConnectAdapter{}, nc.Current(), zaptest.NewLogger(t).Sugar())

	_, err := s.Connect(context.Background())
	assert.ErrorIs(t, err, common.ErrNotImplemented)
	assert.False(t, s.Snapshot().IsConnected)
}

func TestSetAdapterDropsConnection(t *testing.T) {
	s, _ := newTestSession(t, newFakeExtension(t))
	_, err := s.Connect(context.Background())
	require.NoError(t, err)

	s.SetAdapter(WalletConnectAdapter{})
	snap := s.Snapshot()
	assert.False(t, snap.IsConnected)
	assert.Equal(t, TypeWalletConnect, snap.WalletType)
}

func TestSnapshotInvariantsUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 20; run++ {
		ext := newFakeExtension(t)
		s, _ := newTestSession(t, ext)
		s.OnChange(func(snap Snapshot) {
			assert.False(t, snap.IsConnected && snap.IsConnecting)
			assert.Equal(t, snap.IsConnected, snap.Address != "")
		})

		for step := 0; step < 30; step++ {
			switch rng.Intn(4) {
			case 0:
				_, _ = s.Connect(context.Background())
			case 1:
				s.Disconnect()
			case 2:
				s.Restore(context.Background())
			case 3:
				ext.reject = rng.Intn(2) == 0
			}
			snap := s.Snapshot()
			assert.False(t, snap.IsConnected && snap.IsConnecting)
			assert.Equal(t, snap.IsConnected, snap.Address != "")
		}
	}
}
