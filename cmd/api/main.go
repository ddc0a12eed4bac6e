package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"safeguard-backend/internal/app"
	"safeguard-backend/internal/config"
	applog "safeguard-backend/internal/logger"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	if err := applog.Init(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer applog.Sync()
	if err := cfg.Validate(); err != nil {
		applog.Error("invalid configuration", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		applog.Error("server stopped with error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(context.Background()) }()

	rdb := app.OpenRedis(ctx, cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	reader, closeChain := app.NewChainReader(ctx, cfg)
	defer closeChain()

	api := app.NewAPI(cfg, store, app.Deps{Redis: rdb, Docs: app.NewIPFSStore(cfg), Chain: reader})
	e := api.Echo(cfg)

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	go api.Policies.RunExpirySweeper(sweepCtx, cfg.ExpirySweep)

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		applog.Info("listening", zap.String("addr", addr), zap.String("store", cfg.StoreDriver), zap.String("ipfs", cfg.IPFSMode))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	applog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
