package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/swapdemo/internal/config"
	"github.com/rovshanmuradov/swapdemo/internal/logger"
	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/session"
	"github.com/rovshanmuradov/swapdemo/internal/submit"
	"github.com/rovshanmuradov/swapdemo/internal/ui"
	"github.com/rovshanmuradov/swapdemo/internal/ui/screen"
)

const busSize = 64

func main() {
	configPath := flag.String("config", "", "Path to config file (optional)")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, closeLog, err := logger.CreateTUILogger(cfg.DebugLogging, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
		_ = closeLog()
	}()

	appLogger.Info("Starting swap TUI",
		zap.String("feed_url", cfg.FeedURL),
		zap.Int("slippage_bps", cfg.DefaultSlippageBps))

	client := pricefeed.NewClient(cfg.FeedClientConfig(), appLogger.Named("feed"))
	normalizer := pricefeed.NewNormalizer(cfg.IconBaseURL, appLogger.Named("normalize"))

	factory := &uiFactory{
		ctx: rootCtx,
		cfg: screen.SharedConfig{
			Session:     session.New(cfg.DefaultSlippageBps),
			Loader:      pricefeed.NewLoader(client, normalizer, appLogger.Named("loader")),
			Submitter:   submit.NewSimulator(cfg.SubmitDelay, appLogger.Named("submit")),
			AmountDelay: cfg.AmountDebounce,
			SearchDelay: cfg.SearchDebounce,
			Logger:      appLogger.Named("ui"),
		},
		busSize: busSize,
	}

	recovery := ui.NewRecoveryHandler(appLogger, func() (tea.Model, []tea.ProgramOption) {
		model := ui.NewSafeModel(factory.build(), appLogger)
		return model, []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithContext(rootCtx),
		}
	})

	if err := recovery.RunWithRecovery(rootCtx); err != nil {
		appLogger.Error("TUI application failed", zap.Error(err))
		log.Printf("TUI application failed: %v", err)
	}
	appLogger.Info("Shutting down swap TUI")
}
