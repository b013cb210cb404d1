package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/maktabati-bot/internal/config"
	httpdelivery "github.com/aliskhannn/maktabati-bot/internal/delivery/http"
	"github.com/aliskhannn/maktabati-bot/internal/delivery/telegram"
	"github.com/aliskhannn/maktabati-bot/internal/domain/session"
	"github.com/aliskhannn/maktabati-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/maktabati-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/maktabati-bot/internal/infra/redis"
	"github.com/aliskhannn/maktabati-bot/internal/logger"
	"github.com/aliskhannn/maktabati-bot/internal/repository"
	"github.com/aliskhannn/maktabati-bot/internal/service"
	"github.com/aliskhannn/maktabati-bot/internal/storage"
)

// sessionStore is what every session backend provides.
type sessionStore interface {
	Get(ctx context.Context, chatID int64) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) error
	Delete(ctx context.Context, chatID int64) error
	DeleteIdle(ctx context.Context, before time.Time) ([]int64, error)
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	contentRepo, err := repository.NewContentRepository(cfg.ContentPath)
	if err != nil {
		return err
	}
	stats := contentRepo.Stats()
	lg.Info("catalog loaded",
		zap.String("path", cfg.ContentPath),
		zap.Int("books", stats.Books),
		zap.Int("lessons", stats.Lessons),
	)

	store, closeStore, err := openSessionStore(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeStore()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	contentService := service.NewContentService(contentRepo)
	quizService := service.NewQuizService(contentRepo, storage.NewQuizStorage(), cfg.Quiz.AdvanceDelay, lg)
	sessionService := service.NewSessionService(store, contentService, quizService, lg)

	handler := telegram.NewHandler(bot, lg, sessionService, quizService, contentService)
	quizService.SetNotifier(handler)

	sweeper := storage.NewSweeper(store, cfg.Session.TTL, cfg.Session.SweepSchedule, lg)
	sweeper.OnRemoved = quizService.DiscardAll

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return handler.Run(ctx) })
	g.Go(func() error { return sweeper.Start(ctx) })
	if cfg.HTTP.Addr != "" {
		srv := httpdelivery.NewServer(cfg.HTTP.Addr, store, contentRepo, lg)
		g.Go(func() error { return srv.Run(ctx) })
	}

	err = g.Wait()
	quizService.Stop()
	return err
}

// openSessionStore connects the configured backend. The returned func
// releases its resources.
func openSessionStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (sessionStore, func(), error) {
	switch cfg.Session.Store {
	case config.StorePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, pool, lg); err != nil {
			pool.Close()
			return nil, nil, err
		}
		lg.Info("sessions stored in postgres")
		return pgrepo.NewSessionRepository(pool), pool.Close, nil

	case config.StoreRedis:
		rdb, err := redis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		store := redis.NewSessionStore(rdb, cfg.Redis.KeyPrefix, cfg.Session.TTL)
		lg.Info("sessions stored in redis")
		return store, func() { _ = store.Close() }, nil
	}

	lg.Info("sessions stored in memory")
	return storage.NewSessionStorage(), func() {}, nil
}
