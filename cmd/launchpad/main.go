// Command launchpad serves the SCF launchpad backend: network selection, the
// wallet session, ledger and Blend reads, the project store and IPFS pinning.
//
// Usage: go run ./cmd/launchpad
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/AlexZinkM/scf-launchpad/docs"
	"github.com/AlexZinkM/scf-launchpad/internal/api"
	"github.com/AlexZinkM/scf-launchpad/internal/client"
	"github.com/AlexZinkM/scf-launchpad/internal/config"
	"github.com/AlexZinkM/scf-launchpad/internal/events"
	"github.com/AlexZinkM/scf-launchpad/internal/handler"
	"github.com/AlexZinkM/scf-launchpad/internal/logger"
	"github.com/AlexZinkM/scf-launchpad/internal/metrics"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
	"github.com/AlexZinkM/scf-launchpad/internal/portfolio"
	"github.com/AlexZinkM/scf-launchpad/internal/project"
	"github.com/AlexZinkM/scf-launchpad/internal/service"
	"github.com/AlexZinkM/scf-launchpad/internal/storage"
	"github.com/AlexZinkM/scf-launchpad/internal/wallet"
	"github.com/AlexZinkM/scf-launchpad/stellar"
)

const shutdownTimeout = 10 * time.Second

// @title SCF Launchpad API
// @version 1.0
// @description Wallet, network and portfolio backend for the Stellar Community Fund launchpad.
// @BasePath /
func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg := config.Get()

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: logger.Format(cfg.LogFormat)})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Errorw("Launchpad stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	kv, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	nc := network.NewContext(cfg.Endpoints(), cfg.Selection())

	clientOpts := service.ClientOptions(func(target string) []client.Option {
		return []client.Option{
			client.WithTimeout(cfg.RequestTimeout),
			client.WithTransport(m.InstrumentTransport(target, http.DefaultTransport)),
		}
	})

	current := nc.Current()
	rates := client.NewCoinGeckoClient(cfg.CoinGeckoURL, clientOpts("coingecko")...)
	stellarSvc := service.NewStellarService(current, rates, clientOpts, log)

	blendOpts := service.BlendOptions{}
	if cfg.DemoData {
		blendOpts.Demo = service.SeededDemo{}
	}
	blendSvc := service.NewBlendService(current, blendOpts, clientOpts, log)

	adapters := wallet.DefaultAdapters(nil)
	var ext *stellar.LocalExtension
	if cfg.WalletFilePath != "" {
		if err := config.PromptForPassword(); err != nil {
			return err
		}
		approver := stellar.AutoApprove
		if !cfg.WalletAutoApprove {
			approver = newTerminalApprover(os.Stdin, os.Stderr, log).Approve
		}
		ext = stellar.NewLocalExtension(stellar.LocalExtensionOptions{
			Path:         cfg.WalletFilePath,
			Network:      current.Network,
			Approver:     approver,
			Password:     config.GetWalletPasswordBytes,
			SignCooldown: cfg.SignCooldown,
			Grants:       kv,
		}, log)
		adapters = wallet.DefaultAdapters(ext)
	}
	wallets := service.NewWalletService(current, adapters, kv, m, log)

	pinata := client.NewPinataClient(cfg.PinataAPIURL, cfg.GatewayURL, cfg.PinataCredentials(), clientOpts("pinata")...)
	ipfs := service.NewIPFSService(pinata, cfg.PinRatePerMinute, m, log)

	// The registry subscribes first so every service is rebound before any re-fetch.
	service.NewRegistry(stellarSvc, blendSvc, wallets, ipfs, m, log).Bind(nc)
	if ext != nil {
		nc.Subscribe(func(c network.Config) { ext.SetNetwork(c.Network) })
	}

	view := portfolio.New(nc, stellarSvc, blendSvc, m, log)
	defer view.Close()

	cors := api.NewCORS(cfg.AllowedOrigins)
	hub := events.NewHub(cors.CheckOrigin, m, log)
	defer hub.Close()

	nc.Subscribe(func(c network.Config) {
		view.Reset()
		hub.NetworkChanged(c)
	})
	wallets.Session().OnChange(func(snap wallet.Snapshot) {
		if !snap.IsConnected && !snap.IsConnecting {
			view.Reset()
		}
		hub.WalletChanged(snap)
	})
	view.OnChange(hub.PortfolioChanged)

	if wallets.Restore(ctx) {
		log.Infow("Wallet session restored", "wallet", wallets.WalletType())
	}

	router, err := api.SetupRouter(api.Handlers{
		Network:   handler.NewNetworkHandler(nc),
		Wallet:    handler.NewWalletHandler(wallets),
		Account:   handler.NewAccountHandler(stellarSvc, wallets),
		Blend:     handler.NewBlendHandler(blendSvc, wallets),
		Portfolio: handler.NewPortfolioHandler(view, wallets),
		Projects:  handler.NewProjectHandler(project.NewStore(kv, log), ipfs, wallets),
		IPFS:      handler.NewIPFSHandler(ipfs),
		Events:    hub,
	}, m, cors)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("Server starting", "port", cfg.Port, "network", current.Network, "swagger", "http://localhost:"+cfg.Port+"/swagger/index.html")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config) (storage.KV, error) {
	if len(cfg.RedisAddrs) > 0 {
		return storage.NewRedisKV(ctx, storage.RedisOptions{
			Addrs:    cfg.RedisAddrs,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	return storage.NewFileKV(cfg.StorePath)
}
