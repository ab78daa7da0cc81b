// Command server runs the expense HTTP API.
//
//	@title						Expense Service API
//	@version					1.0
//	@description				Users, their expenses and bearer-token authentication.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/expensetracker/expense-service/internal/api"
	"github.com/expensetracker/expense-service/internal/core/ports"
	"github.com/expensetracker/expense-service/internal/core/service"
	"github.com/expensetracker/expense-service/internal/infrastructure/db/mongo"
	"github.com/expensetracker/expense-service/internal/infrastructure/db/redis"
	"github.com/expensetracker/expense-service/internal/infrastructure/db/sqlstore"
	"github.com/expensetracker/expense-service/internal/pkg/config"
	"github.com/expensetracker/expense-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.OptionsFor(cfg.Env, cfg.LogLevel, "expense-service"))

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, dialect, err := sqlstore.Open(ctx, cfg.DB.URI)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlstore.Migrate(ctx, db, dialect); err != nil {
		return err
	}
	log.Info().Str("dialect", string(dialect)).Msg("database ready")

	var (
		revoker ports.TokenRevoker
		rdb     *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		revoker = redis.NewRevoker(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation enabled")
	}

	var (
		audit ports.AuditLog
		mdb   *mongodriver.Database
	)
	if cfg.Mongo.URI != "" {
		var client *mongodriver.Client
		client, mdb, err = mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		repo := mongo.NewAuditRepository(mdb)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit indexes not created")
		}
		audit = repo
		log.Info().Str("database", cfg.Mongo.Database).Msg("audit log enabled")
	}

	store := sqlstore.NewStore(db)
	creds := service.NewCredentials(cfg.JWTSecret, cfg.BcryptCost)

	e := api.NewRouter(api.Dependencies{
		Users:    service.NewUserService(store, creds, audit, log),
		Expenses: service.NewExpenseService(store, audit, log),
		Auth:     service.NewAuthService(store, creds, creds, revoker, cfg.TokenTTL, log),
		DB:       db,
		Mongo:    mdb,
		Redis:    rdb,
		Log:      log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
