package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/askmatic/askly-server/internal/auth"
	"github.com/askmatic/askly-server/internal/config"
	"github.com/askmatic/askly-server/internal/handler"
	chatHandler "github.com/askmatic/askly-server/internal/handler/chat"
	"github.com/askmatic/askly-server/internal/model/tutor"
	aiservice "github.com/askmatic/askly-server/internal/service/ai"
	authservice "github.com/askmatic/askly-server/internal/service/auth"
	chatservice "github.com/askmatic/askly-server/internal/service/chat"
	"github.com/askmatic/askly-server/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := zerolog.New(os.Stdout).With().
		Str("service", "askly-api").
		Timestamp().
		Logger()

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file, continuing with system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	issuer, err := auth.NewIssuer(cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token issuer")
	}

	store, err := openStore(ctx, cfg.Mongo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	tutors := tutor.NewMemoryStore(tutor.Seed())

	var aiSvc *aiservice.Service
	if cfg.AI.Enabled() {
		aiSvc, err = aiservice.NewService(ctx, cfg.AI, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize AI service")
		}
		log.Info().Str("model", cfg.AI.Model).Msg("AI service initialized")
	} else {
		log.Fatal().Msg("AI credentials missing: set AI_API_KEY and AI_MODEL (or an AK/SK pair)")
	}

	authSvc := authservice.NewService(store.Users(), log)
	chatSvc := chatservice.NewService(aiSvc, tutors, store.Conversations(), log)

	var captioner chatHandler.Captioner = aiSvc

	router, streams := handler.NewRouter(handler.Deps{
		AuthSvc:     authSvc,
		ChatSvc:     chatSvc,
		Captioner:   captioner,
		Issuer:      issuer,
		Interval:    cfg.AI.PaceInterval,
		Environment: cfg.Server.Environment,
		Log:         log,
	})
	defer streams.Shutdown(context.Background())

	startServer(ctx, cfg.Server, router, log)
}

func openStore(ctx context.Context, cfg config.MongoConfig, log zerolog.Logger) (storage.Store, error) {
	if !cfg.Enabled() {
		log.Warn().Msg("MONGO_URI not set, using in-memory store (data is not durable)")
		return storage.NewMemoryStore(), nil
	}

	store, err := storage.NewMongoStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Database).Msg("connected to document store")
	return store, nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, log zerolog.Logger) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", serverCfg.Addr).Msg("Askly backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
