package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/api"
	"github.com/Vladislav-Onoprienko/shareit/internal/cache"
	"github.com/Vladislav-Onoprienko/shareit/internal/config"
	"github.com/Vladislav-Onoprienko/shareit/internal/database"
	"github.com/Vladislav-Onoprienko/shareit/internal/domain"
	"github.com/Vladislav-Onoprienko/shareit/internal/events"
	"github.com/Vladislav-Onoprienko/shareit/internal/logging"
	"github.com/Vladislav-Onoprienko/shareit/internal/metrics"
	"github.com/Vladislav-Onoprienko/shareit/internal/notify"
	"github.com/Vladislav-Onoprienko/shareit/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	users := database.NewUserStore(db)
	items := database.NewItemStore(db)
	bookings := database.NewBookingStore(db)
	comments := database.NewCommentStore(db)
	requests := database.NewRequestStore(db)

	searchCache := initSearchCache(cfg, redisClient, &logger)
	bus := events.NewEventBus()
	initNotifier(cfg, bus, &logger)

	userService := service.NewUserService(users, &logger)
	itemService := service.NewItemService(items, users, bookings, comments, requests, searchCache, &logger)
	bookingService := service.NewBookingService(bookings, users, items, bus, &logger)
	commentService := service.NewCommentService(comments, bookings, users, items, bus, &logger)
	requestService := service.NewRequestService(requests, users, items, &logger)

	httpServer := api.NewHTTPServer(
		cfg.Server, cfg.RateLimit,
		userService, itemService, bookingService, commentService, requestService,
		&logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, &logger)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpServer.Shutdown(shutdownCtx)
	logger.Info().Msg("server stopped")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "server-main").Logger()

	return cfg, logger, closer, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := cache.NewRedisClient(cfg.Redis)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initSearchCache prefers redis with an in-memory fallback; without redis the
// in-memory cache serves alone.
func initSearchCache(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.SearchCache {
	ttl := time.Duration(cfg.Redis.CacheTTL) * time.Second
	memory := cache.NewMemorySearchCache(ttl)
	if redisClient == nil {
		return memory
	}
	primary := cache.NewRedisSearchCache(redisClient, ttl)
	return cache.NewFailoverSearchCache(redisClient, primary, memory, logger)
}

func initNotifier(cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) {
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == 0 {
		return
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram init failed, continuing without notifications")
		return
	}

	notifier := notify.NewTelegramNotifier(bot, cfg.Telegram.ChatID, logger)
	notifier.SubscribeTo(bus)
	logger.Info().Int64("chat_id", cfg.Telegram.ChatID).Msg("telegram notifications enabled")
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
