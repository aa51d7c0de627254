package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guardian_notifier/internal/app"
	domainChannel "guardian_notifier/internal/domain/channel"
	"guardian_notifier/internal/domain/scoring"
	"guardian_notifier/internal/infra/channel"
	"guardian_notifier/internal/infra/config"
	idb "guardian_notifier/internal/infra/database"
	"guardian_notifier/internal/infra/httpapi"
	"guardian_notifier/internal/infra/linksigner"
	"guardian_notifier/internal/infra/logger"
	"guardian_notifier/internal/infra/scheduler"
	"guardian_notifier/internal/infra/scoringapi"
	"guardian_notifier/internal/infra/telegram"

	"github.com/gin-gonic/gin"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.WithField("environment", cfg.Environment).Info("Guardian notifier starting...")

	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	mainLogger.Info("Database connection established successfully.")

	outcomeRepo := idb.NewPostgresNotificationRepository(db)
	configProvider := app.NewCachedConfigProvider(
		idb.NewPostgresSystemConfigRepository(db, cfg.DefaultSystemName),
		cfg.SystemConfigCacheTTL,
		logger.Component("system_config"),
	)

	scoringClient := scoringapi.NewClient(cfg.ScoringAPIURL, cfg.ScoringAPITimeout)
	var history scoring.HistoryRepository = scoringClient
	if cfg.ScoringHistorySource == config.HistorySourcePostgres {
		history = idb.NewPostgresScoringHistoryRepository(db)
	}

	signer := linksigner.NewJWTSigner(cfg.PublicLinkBaseURL, cfg.PublicLinkSecret, cfg.PublicLinkTTL)
	board := app.NewStatusBoard(cfg.StatusClearInterval)

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	var opener domainChannel.Opener
	var bot *telebot.Bot
	switch cfg.ChannelOpener {
	case config.OpenerTelegram:
		bot, err = telebot.NewBot(telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) {
				logCtx := logger.Component("telebot").WithError(err)
				if c != nil && c.Sender() != nil {
					logCtx = logCtx.WithField("sender_id", c.Sender().ID)
				}
				logCtx.Error("Telegram handler error")
			},
		})
		if err != nil {
			mainLogger.Fatalf("FATAL: Could not create Telegram bot: %v", err)
		}
		telegram.RegisterOperatorCommands(rootCtx, bot, cfg.OperatorTelegramID, board, outcomeRepo, logger.Component("telegram"))
		opener = channel.NewTelegramRelayOpener(telegram.NewTelebotAdapter(bot), cfg.OperatorTelegramID, logger.Component("channel"))
		mainLogger.Info("Telegram operator relay initialized.")
	default:
		opener = channel.NewConsoleOpener(logger.Component("channel"))
		mainLogger.Info("Console channel opener initialized.")
	}

	service := app.NewNotificationServiceImpl(
		app.NewMessageComposer(signer),
		app.NewDispatcher(cfg.ChannelBaseURL, opener, logger.Component("dispatcher")),
		app.NewStatusSynchronizer(outcomeRepo, logger.Component("status_sync")),
		app.NewScoringCoordinator(history, scoringClient, logger.Component("scoring")),
		board,
		app.NewLogListener(logger.Component("listener")),
		logger.Component("notification_service"),
	)

	refresher := scheduler.NewConfigRefreshScheduler(configProvider, logger.Component("scheduler"), cfg.CronSpecConfigRefresh)
	if err := refresher.Start(); err != nil {
		mainLogger.Fatalf("FATAL: Could not schedule config refresh: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := httpapi.NewHandler(service, configProvider, board, outcomeRepo, signer, logger.Component("http"))
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, cfg.CORSAllowedOrigins, logger.Component("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if bot != nil {
		go bot.Start()
	}
	go func() {
		mainLogger.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mainLogger.Fatalf("FATAL: HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down application...")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		mainLogger.WithError(err).Error("HTTP server shutdown failed")
	}
	if bot != nil {
		bot.Stop()
	}
	refresher.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
