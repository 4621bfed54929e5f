package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexZinkM/scf-launchpad/internal/client"
	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
	"github.com/AlexZinkM/scf-launchpad/stellar"
)

// defaultTransactionLimit is the page size used when the filter sets none.
const defaultTransactionLimit = 50

// RateSource prices XLM in a fiat currency.
type RateSource interface {
	GetXLMRate(ctx context.Context, currency string) (string, error)
}

type stellarBinding struct {
	cfg     network.Config
	horizon *client.HorizonClient
}

// StellarService reads accounts and transactions from the Horizon server of the active network.
type StellarService struct {
	log   *zap.SugaredLogger
	opts  ClientOptions
	rates RateSource

	mu sync.RWMutex
	b  *stellarBinding
}

// NewStellarService creates a StellarService bound to cfg. rates may be nil.
func NewStellarService(cfg network.Config, rates RateSource, opts ClientOptions, log *zap.SugaredLogger) *StellarService {
	s := &StellarService{
		log:   log.Named("stellar-service"),
		opts:  opts,
		rates: rates,
	}
	s.UpdateNetwork(cfg)
	return s
}

// UpdateNetwork rebinds the service to cfg. The new Horizon client is built
// before the swap so readers never see a half-updated binding.
func (s *StellarService) UpdateNetwork(cfg network.Config) {
	s.mu.RLock()
	current := s.b
	s.mu.RUnlock()
	if current != nil && sameBinding(current.cfg, cfg) {
		return
	}

	next := &stellarBinding{
		cfg:     cfg,
		horizon: client.NewHorizonClient(cfg.HorizonURL, s.opts.get("horizon")...),
	}

	s.mu.Lock()
	s.b = next
	s.mu.Unlock()
	s.log.Infow("Network binding updated", "network", cfg.Network, "epoch", cfg.Epoch, "horizon", cfg.HorizonURL)
}

func (s *StellarService) binding() *stellarBinding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b
}

// Config returns the network configuration the service is bound to.
func (s *StellarService) Config() network.Config {
	return s.binding().cfg
}

// AccountBalances returns the balances of address. An account that does not
// exist on the ledger yet has no balances.
func (s *StellarService) AccountBalances(ctx context.Context, address string) (Tagged[[]model.Balance], error) {
	b := s.binding()
	if err := common.ValidateAccountID(address); err != nil {
		return Tagged[[]model.Balance]{}, err
	}

	account, err := b.horizon.GetAccount(ctx, address)
	if errors.Is(err, common.ErrAccountNotFound) {
		s.log.Debugw("Account not funded", "address", address, "network", b.cfg.Network)
		return tag(b.cfg, []model.Balance{}), nil
	}
	if err != nil {
		return Tagged[[]model.Balance]{}, err
	}
	return tag(b.cfg, toBalances(account.Balances)), nil
}

func toBalances(in []client.HorizonBalance) []model.Balance {
	out := make([]model.Balance, 0, len(in))
	for _, hb := range in {
		bal := model.Balance{Balance: hb.Balance}
		switch hb.AssetType {
		case "native":
			bal.Asset = "XLM"
		case "liquidity_pool_shares":
			bal.Asset = "POOL_SHARE"
			bal.Issuer = hb.LiquidityID
		default:
			bal.Asset = hb.AssetCode
			bal.Issuer = hb.AssetIssuer
		}
		if bal.Asset == "" {
			bal.Asset = "UNKNOWN"
		}
		if bal.Balance == "" {
			bal.Balance = "0"
		}
		if hb.Limit != "" {
			limit := hb.Limit
			bal.Limit = &limit
		}
		out = append(out, bal)
	}
	return out
}

// AccountSummary returns the balances of address with the XLM amount priced in USD.
// A price feed failure leaves the rate empty.
func (s *StellarService) AccountSummary(ctx context.Context, address string) (Tagged[model.AccountSummary], error) {
	balances, err := s.AccountBalances(ctx, address)
	if err != nil {
		return Tagged[model.AccountSummary]{}, err
	}

	summary := model.AccountSummary{
		Address:  address,
		Network:  string(balances.Network),
		XLM:      "0",
		Balances: balances.Value,
	}
	for _, b := range balances.Value {
		if b.Asset == "XLM" && b.Issuer == "" {
			summary.XLM = b.Balance
			break
		}
	}

	if s.rates != nil {
		rate, err := s.rates.GetXLMRate(ctx, "usd")
		if err != nil {
			s.log.Warnw("XLM rate unavailable", "error", err)
		} else {
			// Float only for display, never for amounts that are signed or submitted.
			xlm, _ := strconv.ParseFloat(summary.XLM, 64)
			rateFloat, _ := strconv.ParseFloat(rate, 64)
			summary.Rate = rate
			summary.XLMInUSD = fmt.Sprintf("%.2f", xlm*rateFloat)
		}
	}

	return Tagged[model.AccountSummary]{Network: balances.Network, Epoch: balances.Epoch, Value: summary}, nil
}

// Transactions returns the newest transactions of address matching filter.
func (s *StellarService) Transactions(ctx context.Context, address string, filter *model.TransactionFilter) (Tagged[model.TransactionsResponse], error) {
	b := s.binding()
	if err := common.ValidateAccountID(address); err != nil {
		return Tagged[model.TransactionsResponse]{}, err
	}
	limit := defaultTransactionLimit
	if filter != nil {
		if err := filter.Validate(); err != nil {
			return Tagged[model.TransactionsResponse]{}, err
		}
		if filter.Limit > 0 {
			limit = filter.Limit
		}
	}

	records, err := b.horizon.GetTransactions(ctx, address, limit)
	if err != nil && !errors.Is(err, common.ErrAccountNotFound) {
		return Tagged[model.TransactionsResponse]{}, err
	}

	txs := make([]model.Transaction, 0, len(records))
	for _, r := range records {
		fee, err := strconv.ParseUint(r.FeeCharged, 10, 64)
		if err != nil {
			s.log.Warnw("Skipping transaction with malformed fee", "hash", r.Hash, "fee", r.FeeCharged)
			continue
		}
		txs = append(txs, model.Transaction{
			Hash:           r.Hash,
			Ledger:         r.Ledger,
			SourceAccount:  r.SourceAccount,
			FeeCharged:     common.StroopsToAmount(fee),
			OperationCount: r.OperationCount,
			Memo:           r.Memo,
			Successful:     r.Successful,
			CreatedAt:      r.CreatedAt,
		})
	}

	filtered, err := stellar.FilterTransactions(txs, filter)
	if err != nil {
		return Tagged[model.TransactionsResponse]{}, err
	}
	total, err := stellar.TotalFees(filtered)
	if err != nil {
		return Tagged[model.TransactionsResponse]{}, err
	}

	return tag(b.cfg, model.TransactionsResponse{
		Address:      address,
		Network:      string(b.cfg.Network),
		TotalFeesXLM: total,
		Transactions: filtered,
	}), nil
}

// Submit sends a signed envelope to the Horizon server of the active network.
func (s *StellarService) Submit(ctx context.Context, signedXDR string) (Tagged[model.SubmitResponse], error) {
	b := s.binding()
	if signedXDR == "" {
		return Tagged[model.SubmitResponse]{}, fmt.Errorf("%w: empty envelope", common.ErrSubmitFailed)
	}
	res, err := b.horizon.SubmitTransaction(ctx, signedXDR)
	if err != nil {
		return Tagged[model.SubmitResponse]{}, err
	}
	s.log.Infow("Transaction submitted", "hash", res.Hash, "ledger", res.Ledger, "network", b.cfg.Network)
	return tag(b.cfg, model.SubmitResponse{
		Hash:       res.Hash,
		Ledger:     res.Ledger,
		Successful: res.Successful,
	}), nil
}
