// Command puente runs the fiat/crypto bridge widget. By default it opens the
// interactive terminal form; with --web it serves the single-page widget and
// its JSON API over HTTP.
//
// Usage:
//
//	puente --config config.yaml
//	puente --web --addr :8080
//
// Optional environment is loaded from a .env file when present.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/puentelabs/puente/config"
	"github.com/puentelabs/puente/internal/catalog"
	"github.com/puentelabs/puente/internal/services/bridge"
	"github.com/puentelabs/puente/internal/services/converter"
	"github.com/puentelabs/puente/internal/services/feeoracle"
	"github.com/puentelabs/puente/internal/services/notify"
	"github.com/puentelabs/puente/internal/services/wallet"
	"github.com/puentelabs/puente/internal/setup"
	"github.com/puentelabs/puente/internal/web"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	webMode := flag.Bool("web", false, "serve the web widget instead of the terminal one")

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			logger.Fatal("failed to load catalog", zap.Error(err))
		}
	}
	if err := cat.Validate(); err != nil {
		logger.Fatal("invalid catalog", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := converter.New(cat)

	codes := make([]string, 0, len(cat.Crypto))
	for _, a := range cat.Crypto {
		codes = append(codes, a.Code)
	}
	stub := wallet.NewStubProvider(codes, cfg.DemoBalance, logger)

	var balances wallet.BalanceReader = stub
	var fees feeoracle.Oracle = feeoracle.NewStatic()
	var gasOracle *feeoracle.EthOracle
	if cfg.EthRPCURL != "" {
		gasOracle, err = feeoracle.NewEthOracle(ctx, cfg.EthRPCURL, logger)
		if err != nil {
			logger.Warn("gas oracle unavailable, using static fees", zap.Error(err))
		} else {
			fees = gasOracle
			go func() {
				if err := gasOracle.Run(ctx, cfg.GasPollInterval); err != nil && ctx.Err() == nil {
					logger.Error("gas price poller stopped", zap.Error(err))
				}
			}()
			ethReader, err := wallet.NewEthReader(ctx, cfg.EthRPCURL, stub)
			if err != nil {
				logger.Warn("eth balance reader unavailable, using stub balances", zap.Error(err))
			} else {
				balances = ethReader
			}
		}
	}

	notifier := notify.NewDedupSink(notify.NewZapSink(logger), 60, 10)

	svc, err := bridge.New(engine, stub, balances, fees, notifier, logger)
	if err != nil {
		logger.Fatal("failed to create bridge service", zap.Error(err))
	}

	if *webMode {
		server := web.NewServer(cfg.ListenAddr, svc, nil)
		if gasOracle != nil {
			server.Fees = gasOracle
		}
		logger.Info("serving web widget", zap.String("addr", cfg.ListenAddr))
		if len(cfg.AutoTLSDomains) > 0 {
			err = server.StartWithAutoTLS(ctx, cfg.AutoTLSDomains, cfg.CertCacheDir)
		} else {
			err = server.Start(ctx)
		}
		if err != nil {
			logger.Fatal("web server failed", zap.Error(err))
		}
		return
	}

	if err := setup.NewWidget(svc, cfg.DefaultSlippage).Run(ctx); err != nil {
		logger.Fatal("widget failed", zap.Error(err))
	}
}
