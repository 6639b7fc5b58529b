package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/interviewme/backend/internal/api"
	"github.com/interviewme/backend/internal/api/middleware"
	"github.com/interviewme/backend/internal/core/service"
	"github.com/interviewme/backend/internal/infrastructure/config"
	mongostore "github.com/interviewme/backend/internal/infrastructure/db/mongo"
	redisstore "github.com/interviewme/backend/internal/infrastructure/db/redis"
	"github.com/interviewme/backend/internal/infrastructure/http/handlers"
	"github.com/interviewme/backend/internal/infrastructure/queue"
	"github.com/interviewme/backend/internal/infrastructure/stream"
	"github.com/interviewme/backend/pkg/logger"
)

const readHeaderTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func initLogger(cfg *config.Config) zerolog.Logger {
	return logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
		Env:     cfg.Env,
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := initLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	if cfg.Mongo.AutoMigrate {
		if err := mongostore.MigrateUp(cfg.Mongo.URI, cfg.Mongo.Database); err != nil {
			return err
		}
		log.Info().Msg("mongodb migrations up to date")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	// --- Communication provider ---
	streamClient, err := stream.NewClient(stream.Config{
		APIKey:    cfg.Stream.APIKey,
		APISecret: cfg.Stream.APISecret,
		ChatURL:   cfg.Stream.ChatURL,
		VideoURL:  cfg.Stream.VideoURL,
		Timeout:   cfg.Stream.Timeout,
		TokenTTL:  cfg.Stream.TokenTTL,
	})
	if err != nil {
		return err
	}
	gateway := stream.NewGateway(streamClient)

	// --- Services ---
	users := mongostore.NewUserRepository(db)
	sessions := mongostore.NewSessionRepository(db)

	sessionSvc := service.NewSessionService(sessions, gateway, cfg.Stream.Timeout, logger.Component("sessions"))
	querySvc := service.NewSessionQueryService(sessions, users, logger.Component("session_queries"))
	chatSvc := service.NewChatService(gateway, logger.Component("chat"))
	directory := service.NewUserDirectoryService(users, gateway, cfg.Stream.Timeout, logger.Component("user_directory"))
	eventSvc := service.NewIdentityEventService(directory, redisstore.NewDedupChecker(rdb, cfg.Webhook.DedupTTL), logger.Component("identity_events"))

	// Workers outlive the signal context so in-flight webhooks finish while
	// the HTTP server drains.
	dispatcher := queue.NewDispatcher(cfg.Webhook.Workers, eventSvc, logger.Component("dispatcher"))
	dispatcher.Start(context.WithoutCancel(ctx))
	defer dispatcher.Stop()

	// --- HTTP ---
	authCfg, err := middleware.NewAuthConfig(cfg.Auth.Secret, cfg.Auth.PublicKey, cfg.Auth.Issuer)
	if err != nil {
		return err
	}
	verifier, err := middleware.NewWebhookVerifier(cfg.Webhook.SigningSecret, cfg.Webhook.Tolerance)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Config:     cfg,
		Log:        logger.Component("http"),
		Sessions:   sessionSvc,
		Queries:    querySvc,
		Chat:       chatSvc,
		Users:      users,
		Dispatcher: dispatcher,
		Auth:       authCfg,
		Webhooks:   verifier,
		Checkers: []handlers.DependencyChecker{
			mongostore.NewPinger(db),
			redisstore.NewPinger(rdb),
		},
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
