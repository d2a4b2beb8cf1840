package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/swapdemo/internal/api"
	"github.com/rovshanmuradov/swapdemo/internal/config"
	"github.com/rovshanmuradov/swapdemo/internal/logger"
	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/submit"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "Path to config file (optional)")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.CreatePrettyLogger(cfg.DebugLogging)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	store := pricefeed.NewStore()
	loader := pricefeed.NewLoader(
		pricefeed.NewClient(cfg.FeedClientConfig(), appLogger.Named("feed")),
		pricefeed.NewNormalizer(cfg.IconBaseURL, appLogger.Named("normalize")),
		appLogger,
	)

	// The server starts even if the first load fails; /api/reload retries it.
	if _, err := loader.LoadInto(rootCtx, store); err != nil {
		appLogger.Warn("Initial price feed load failed", zap.Error(err))
	}

	srv := api.NewServer(api.Config{
		Store:              store,
		Loader:             loader,
		Submitter:          submit.NewSimulator(cfg.SubmitDelay, appLogger),
		DefaultSlippageBps: cfg.DefaultSlippageBps,
		RateLimit: api.RateLimit{
			RequestsPerMinute: cfg.RateLimitRPM,
			Burst:             cfg.RateLimitBurst,
		},
		Logger: appLogger.Named("api"),
	})

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		appLogger.Info("Swap API listening", zap.String("addr", cfg.ListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		appLogger.Info("Shutting down swap API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Swap API stopped with error", zap.Error(err))
	}
}
