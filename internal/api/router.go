package api

import (
	"errors"
	"net/http"

	"github.com/AlexZinkM/scf-launchpad/internal/handler"
	"github.com/AlexZinkM/scf-launchpad/internal/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers are the endpoint groups served by the router
type Handlers struct {
	Network   *handler.NetworkHandler
	Wallet    *handler.WalletHandler
	Account   *handler.AccountHandler
	Blend     *handler.BlendHandler
	Portfolio *handler.PortfolioHandler
	Projects  *handler.ProjectHandler
	IPFS      *handler.IPFSHandler
	// Events streams state changes over websockets at /ws. Optional.
	Events http.Handler
}

func (h Handlers) validate() error {
	if h.Network == nil || h.Wallet == nil || h.Account == nil || h.Blend == nil ||
		h.Portfolio == nil || h.Projects == nil || h.IPFS == nil {
		return errors.New("router: every endpoint handler must be set")
	}
	return nil
}

// SetupRouter sets up router with handlers. m may be nil; cors may be nil to disable CORS.
func SetupRouter(h Handlers, m *metrics.Metrics, cors *CORS) (http.Handler, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)
	mux.Handle("/metrics", m.Handler())
	if h.Events != nil {
		mux.Handle("/ws", h.Events)
	}

	// Network and wallet
	mux.HandleFunc("/network", h.Network.Network)
	mux.HandleFunc("/wallet", h.Wallet.Get)
	mux.HandleFunc("/wallet/connect", h.Wallet.Connect)
	mux.HandleFunc("/wallet/disconnect", h.Wallet.Disconnect)
	mux.HandleFunc("/wallet/sign", h.Wallet.Sign)

	// Ledger
	mux.HandleFunc("/account/balances", h.Account.Balances)
	mux.HandleFunc("/account/summary", h.Account.Summary)
	mux.HandleFunc("/account/transactions", h.Account.Transactions)
	mux.HandleFunc("/transactions/submit", h.Account.Submit)

	// Blend
	mux.HandleFunc("/positions", h.Blend.Positions)
	mux.HandleFunc("/positions/suggestions", h.Blend.Suggestions)
	mux.HandleFunc("/pools", h.Blend.Pools)
	mux.HandleFunc("/status", h.Blend.Status)

	// Portfolio
	mux.HandleFunc("/portfolio", h.Portfolio.Get)
	mux.HandleFunc("/portfolio/refresh", h.Portfolio.Refresh)

	// Projects
	mux.HandleFunc("/projects", h.Projects.Projects)
	mux.HandleFunc("/projects/{id}", h.Projects.Remove)

	// IPFS
	mux.HandleFunc("/ipfs/pin", h.IPFS.Pin)
	mux.HandleFunc("/ipfs/pins", h.IPFS.Pins)
	mux.HandleFunc("/ipfs/{hash}", h.IPFS.Fetch)

	var out http.Handler = m.InstrumentHandler(mux)
	if cors != nil {
		out = cors.Handler(out)
	}
	return out, nil
}
