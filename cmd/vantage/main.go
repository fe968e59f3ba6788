package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	configtypes "github.com/daszybak/polymarket_vantage/internal/config"
	"github.com/daszybak/polymarket_vantage/internal/polymarket/clob"
	"github.com/daszybak/polymarket_vantage/internal/polymarket/gamma"
	"github.com/daszybak/polymarket_vantage/internal/polymarket/trading"
	"github.com/daszybak/polymarket_vantage/internal/probe"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "path to optional config file")
	flag.Parse()

	// A local .env is a convenience for the signing key; absence is fine.
	_ = godotenv.Load()

	cfg, err := readConfig(*configPath)
	if err != nil {
		log.Fatalf("Couldn't read config: %v", err)
	}

	logger := newLogger(cfg.LogLevel).With("run_id", uuid.NewString())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reporter := probe.NewReporter(os.Stdout)
	reporter.Println("--- Polymarket Vantage Usability Test ---")
	reporter.Blank()

	var tradingClient *trading.Client
	secrets, err := configtypes.LoadSecrets()
	switch {
	case err != nil:
		reporter.Warn("Couldn't read signing key from environment: %v", err)
		reporter.Info("Continuing in unauthenticated mode.")
	case secrets.PrivateKey.Configured():
		tradingClient = trading.New(trading.Config{
			BaseURL:       cfg.Polymarket.ClobURL,
			ChainID:       cfg.Polymarket.ChainID,
			SignatureType: cfg.Polymarket.SignatureType,
			Funder:        secrets.Funder,
		}, secrets.PrivateKey.PrivateKey, logger)
		logger.Info("signing key configured", "address", secrets.PrivateKey.Address())
	}

	runner := &probe.Runner{
		Clob:            clob.New(cfg.Polymarket.ClobURL),
		Gamma:           gamma.New(cfg.Polymarket.GammaURL),
		Trading:         tradingClient,
		WebsocketURL:    cfg.Polymarket.WebsocketURL,
		FallbackTokenID: cfg.Polymarket.FallbackTokenID,
		CallTimeout:     cfg.Timeouts.Call.OrDefault(10 * time.Second),
		BookTimeout:     cfg.Timeouts.Book.OrDefault(5 * time.Second),
		Reporter:        reporter,
		Ledger:          probe.NewLedger(),
		Log:             logger,
	}

	runner.Run(ctx)
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
}
