// Command api serves the journal HTTP API.
//
// @title                       Journal API
// @version                     1.0
// @description                 Personal journal service with JWT access tokens and rotating refresh tokens.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/journal-system/internal/api"
	"github.com/99minutos/journal-system/internal/api/handler"
	"github.com/99minutos/journal-system/internal/core/ports"
	"github.com/99minutos/journal-system/internal/core/service"
	"github.com/99minutos/journal-system/internal/infrastructure/db/memory"
	mongodb "github.com/99minutos/journal-system/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/journal-system/internal/infrastructure/db/redis"
	"github.com/99minutos/journal-system/internal/infrastructure/queue"
	"github.com/99minutos/journal-system/internal/pkg/config"
	"github.com/99minutos/journal-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// stores groups the persistence adapters chosen by STORE_BACKEND.
type stores struct {
	users    ports.UserRepository
	journals ports.JournalRepository
	refresh  ports.RefreshTokenRepository
	audits   ports.AuditRepository
	throttle ports.LoginThrottle
	checks   []handler.ReadinessCheck
	close    func(ctx context.Context)
}

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "journal-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open stores")
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Auth.AuditWorkers, service.NewAuditService(st.audits, log), log)
	dispatcher.Start(workerCtx)

	codec := service.NewTokenCodec([]byte(cfg.Auth.JWTSecret), cfg.Auth.AccessTokenTTL)
	refresh := service.NewRefreshTokenStore(st.refresh, cfg.Auth.RefreshTokenTTL, log)

	e := api.NewRouter(api.Dependencies{
		Auth:          service.NewAuthService(st.users, codec, refresh, st.throttle, dispatcher, log),
		Journals:      service.NewJournalService(st.journals, log),
		Tokens:        codec,
		Users:         st.users,
		Checks:        st.checks,
		AuthRateLimit: cfg.Auth.RateLimit,
		Log:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.StoreBackend).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	// Stop accepting audit events only after in-flight requests have finished.
	cancelWorkers()
	dispatcher.Wait()

	st.close(shutdownCtx)
	log.Info().Msg("server stopped")
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.StoreBackend == config.BackendMemory {
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		return &stores{
			users:    memory.NewUserRepository(),
			journals: memory.NewJournalRepository(),
			refresh:  memory.NewRefreshTokenRepository(),
			audits:   memory.NewAuditRepository(),
			throttle: memory.NewLoginThrottle(cfg.Auth.LoginMaxFailures, cfg.Auth.LoginFailureWindow),
			close:    func(context.Context) {},
		}, nil
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, err
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = mongoClient.Disconnect(ctx)
		return nil, err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = mongoClient.Disconnect(ctx)
		return nil, err
	}

	log.Info().Str("database", cfg.Mongo.Database).Str("redis", cfg.Redis.Addr).Msg("stores connected")

	return &stores{
		users:    mongodb.NewUserRepository(db),
		journals: mongodb.NewJournalRepository(db),
		refresh:  mongodb.NewRefreshTokenRepository(db),
		audits:   mongodb.NewAuditRepository(db),
		throttle: redisdb.NewLoginThrottle(rdb, cfg.Auth.LoginMaxFailures, cfg.Auth.LoginFailureWindow),
		checks: []handler.ReadinessCheck{
			{Name: "mongodb", Check: func(ctx context.Context) error { return mongodb.Ping(ctx, db) }},
			{Name: "redis", Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
		close: func(ctx context.Context) {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
			if err := mongoClient.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		},
	}, nil
}
