package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "house_price/internal/adapters/http_server"
	"house_price/internal/adapters/observability"
	redisad "house_price/internal/adapters/redis"
	"house_price/internal/app"
	"house_price/internal/domain"
	"house_price/internal/ml"
	"house_price/internal/shared"
	mysqlrepo "house_price/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	observability.Serve(cfg.MetricsAddr)

	// model
	art, err := ml.LoadArtifact(cfg.PipelinePath)
	if errors.Is(err, domain.ErrArtifactNotFound) {
		log.Fatal().Err(err).Str("path", cfg.PipelinePath).Msg("pipeline not found; run the trainer first to create it")
	}
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.PipelinePath).Msg("pipeline load failed")
	}
	log.Info().
		Str("artifact_id", art.ID()).
		Time("created_at", art.Header.CreatedAt).
		Int("train_rows", art.Header.TrainRows).
		Msg("pipeline loaded")

	// optional stores
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		defer rc.Close()
		cache = rc
		log.Info().Msg("prediction cache enabled")
	}

	var repo domain.PredictionRepository
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		defer db.Close()
		repo = mysqlrepo.New(db)
		log.Info().Msg("prediction log enabled")
	}

	svc := app.NewPredictionService(art, cache, repo, cfg.CacheTTL)

	// http
	srv := server.New(server.Options{Timeout: cfg.RequestTimeout, RateLimitRPS: cfg.RateLimitRPS})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{P: svc})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
