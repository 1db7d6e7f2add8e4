package app

import (
	"context"
	"time"

	"github.com/oddsline/backend/internal/config"
	delivery "github.com/oddsline/backend/internal/delivery/http"
	"github.com/oddsline/backend/internal/delivery/telegram"
	"github.com/oddsline/backend/internal/infra/db"
	"github.com/oddsline/backend/internal/infra/llm"
	"github.com/oddsline/backend/internal/infra/log"
	"github.com/oddsline/backend/internal/infra/payments"
	"github.com/oddsline/backend/internal/infra/polymarket"
	"github.com/oddsline/backend/internal/usecase"
	"go.uber.org/zap"
)

type App struct {
	cfg       config.Config
	server    *delivery.Server
	checker   *usecase.AlertChecker
	logger    *zap.Logger
	cleanupFn func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	userRepo := db.NewUserRepository(dbConn)
	alertRepo := db.NewAlertRepository(dbConn)
	watchlistRepo := db.NewWatchlistRepository(dbConn)
	signalRepo := db.NewSignalRepository(dbConn)

	gammaClient := polymarket.NewGammaClient(cfg.GammaBaseURL, cfg.GammaTimeout, logger)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, logger)
	paymentClient := payments.NewClient(cfg.FacilitatorBaseURL, cfg.FacilitatorTimeout, logger)

	api, err := telegram.NewAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}
	notifier := telegram.NewNotifier(api, logger)

	checker := usecase.NewAlertChecker(alertRepo, userRepo, gammaClient, notifier, cfg.AlertCheckInterval, logger)

	handlers := delivery.Handlers{
		RunCtx:    ctx,
		Users:     usecase.NewUserUsecase(userRepo),
		Alerts:    usecase.NewAlertUsecase(userRepo, alertRepo, gammaClient),
		Watchlist: usecase.NewWatchlistUsecase(userRepo, watchlistRepo, gammaClient),
		Signals:   usecase.NewSignalUsecase(userRepo, signalRepo, gammaClient, llmClient, paymentClient),
		Markets:   delivery.NewMarketHandler(gammaClient, cfg.PriceStreamInterval, logger),
		Checker:   checker,
		Logger:    logger,
	}
	server := delivery.NewServer(cfg.HTTPAddr, handlers)

	cleanup := func() error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return &App{cfg: cfg, server: server, checker: checker, logger: logger, cleanupFn: cleanup}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("oddsline backend starting")

	if a.cfg.AlertCheckAutostart {
		a.checker.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

func (a *App) Shutdown() {
	a.logger.Info("oddsline backend shutting down")
	a.checker.Stop()
	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
