// Package portfolio keeps the displayed balances and positions of the connected
// wallet consistent with the active network.
package portfolio

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/metrics"
	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
	"github.com/AlexZinkM/scf-launchpad/internal/service"
)

// ErrClosed is returned by Refresh after Close.
var ErrClosed = errors.New("portfolio view closed")

// BalanceSource reads account balances.
type BalanceSource interface {
	AccountBalances(ctx context.Context, address string) (service.Tagged[[]model.Balance], error)
}

// PositionSource reads lending positions.
type PositionSource interface {
	UserPositions(ctx context.Context, address string) (service.Tagged[[]model.Position], error)
}

// NetworkSource reports the active network.
type NetworkSource interface {
	Current() network.Config
}

// State is what the portfolio screen shows.
type State struct {
	Address          string            `json:"address"`
	Network          network.Selection `json:"network"`
	Epoch            uint64            `json:"epoch"`
	Balances         []model.Balance   `json:"balances"`
	Positions        []model.Position  `json:"positions"`
	LoadingBalances  bool              `json:"loadingBalances"`
	LoadingPositions bool              `json:"loadingPositions"`
	// BalancesError is set when the last balance fetch failed; the user may retry.
	BalancesError *model.ErrorResponse `json:"balancesError,omitempty"`
	UpdatedAt     *time.Time           `json:"updatedAt,omitempty"`
}

// View holds the portfolio State. Results are applied only when they were
// issued under the network that is still active; anything else is dropped.
type View struct {
	log       *zap.SugaredLogger
	metrics   *metrics.Metrics
	net       NetworkSource
	balances  BalanceSource
	positions PositionSource

	mu        sync.Mutex
	state     State
	closed    bool
	gen       uint64
	observers []func(State)
}

// New creates an empty View.
func New(net NetworkSource, balances BalanceSource, positions PositionSource, m *metrics.Metrics, log *zap.SugaredLogger) *View {
	cfg := net.Current()
	return &View{
		log:       log.Named("portfolio"),
		metrics:   m,
		net:       net,
		balances:  balances,
		positions: positions,
		state:     emptyState(cfg),
	}
}

func emptyState(cfg network.Config) State {
	return State{
		Network:   cfg.Network,
		Epoch:     cfg.Epoch,
		Balances:  []model.Balance{},
		Positions: []model.Position{},
	}
}

// OnChange registers fn to receive the state after every change. fn runs with
// the view locked and must not call back into it.
func (v *View) OnChange(fn func(State)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.observers = append(v.observers, fn)
}

// Snapshot returns the current state.
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Refresh loads balances and positions of address concurrently. It returns the
// balance error, if any; a positions failure only leaves positions empty.
func (v *View) Refresh(ctx context.Context, address string) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	issued := v.net.Current()
	if issued.Epoch != v.state.Epoch || address != v.state.Address {
		v.gen++
		v.state = emptyState(issued)
		v.state.Address = address
	}
	gen := v.gen
	v.state.LoadingBalances = true
	v.state.LoadingPositions = true
	v.publishLocked()

	var (
		g          errgroup.Group
		balanceErr error
	)
	g.Go(func() error {
		res, err := v.balances.AccountBalances(ctx, address)
		balanceErr = err
		v.apply(gen, issued, "balances", res.Network, res.Epoch, err, func(s *State) {
			s.LoadingBalances = false
			if err != nil {
				s.BalancesError = &model.ErrorResponse{
					Error:     err.Error(),
					Code:      common.ErrorCode(err),
					Retryable: common.IsRetryable(err),
				}
				return
			}
			s.BalancesError = nil
			s.Balances = res.Value
		})
		return nil
	})
	g.Go(func() error {
		res, err := v.positions.UserPositions(ctx, address)
		if err != nil {
			v.log.Warnw("Positions unavailable", "address", address, "error", err)
		}
		v.apply(gen, issued, "positions", res.Network, res.Epoch, err, func(s *State) {
			s.LoadingPositions = false
			if err != nil {
				s.Positions = []model.Position{}
				return
			}
			s.Positions = res.Value
		})
		return nil
	})
	_ = g.Wait()
	return balanceErr
}

// apply runs update on the state unless the result is stale: the view was
// reset or closed since issue, or the result belongs to another network epoch.
func (v *View) apply(gen uint64, issued network.Config, source string, net network.Selection, epoch uint64, err error, update func(*State)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	current := v.net.Current()
	stale := v.closed ||
		gen != v.gen ||
		issued.Epoch != current.Epoch ||
		(err == nil && (net != current.Network || epoch != current.Epoch))
	if stale {
		v.metrics.StaleResult(source)
		v.log.Debugw("Discarding stale result", "source", source, "issuedEpoch", issued.Epoch, "currentEpoch", current.Epoch)
		return
	}

	update(&v.state)
	now := time.Now().UTC()
	v.state.UpdatedAt = &now
	v.publishLocked()
}

// Reset clears the state and drops every in-flight result. It runs on
// disconnect and on network change.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.state = emptyState(v.net.Current())
	v.publishLocked()
}

// Close marks the view dead. Results that complete afterwards are ignored.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.gen++
}

func (v *View) publishLocked() {
	if v.closed {
		return
	}
	snap := v.state
	for _, fn := range v.observers {
		fn(snap)
	}
}
