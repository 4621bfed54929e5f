package events

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/scf-launchpad/internal/logger"
	"github.com/AlexZinkM/scf-launchpad/internal/metrics"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
	"github.com/AlexZinkM/scf-launchpad/internal/wallet"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev map[string]any
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestHubBroadcastsNetworkAndWalletChanges(t *testing.T) {
	hub := NewHub(nil, metrics.New(), logger.Test(t))
	srv := httptest.NewServer(hub)
	defer srv.Close()

	a, b := dial(t, srv), dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 5*time.Millisecond)

	nc := network.NewContext(network.DefaultEndpoints(), network.Testnet)
	nc.Subscribe(hub.NetworkChanged)
	nc.Set(network.Mainnet)

	for _, conn := range []*websocket.Conn{a, b} {
		ev := readEvent(t, conn)
		assert.Equal(t, TypeNetwork, ev["type"])
		data := ev["data"].(map[string]any)
		assert.Equal(t, "mainnet", data["network"])
		assert.EqualValues(t, 2, data["epoch"])
	}

	hub.WalletChanged(wallet.Snapshot{State: wallet.StateDisconnected, ManuallyDisconnected: true})
	ev := readEvent(t, a)
	assert.Equal(t, TypeWallet, ev["type"])
}

func TestHubUnregistersOnClientClose(t *testing.T) {
	hub := NewHub(nil, nil, logger.Test(t))
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)

	// Publishing without clients is a no-op.
	hub.Publish(TypePortfolio, map[string]string{"address": "G"})
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub(nil, nil, logger.Test(t))
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	hub.Close()
	assert.Zero(t, hub.Clients())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "the hub closed the connection")

	late, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err == nil {
		defer late.Close()
		_, _, err = late.ReadMessage()
		assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
	} else if resp != nil {
		resp.Body.Close()
	}
}
