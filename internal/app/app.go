package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	libdb "drivemap/libs/db"
	libredis "drivemap/libs/redis"

	"drivemap/internal/config"
	httpserver "drivemap/internal/http"
	"drivemap/internal/http/handlers"
	"drivemap/internal/ingest"
	"drivemap/internal/redisstore"
	"drivemap/internal/repository"
	"drivemap/internal/service"
	"drivemap/internal/ws"
)

const progressTTL = 24 * time.Hour

// App wires drivemap dependencies.
type App struct {
	server   *httpserver.Server
	pipeline *ingest.Pipeline
	db       *sql.DB
	logger   *zap.Logger
}

// New constructs application components.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := libdb.NewPostgresDB(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	repo := repository.NewMeasurementRepository(sqlDB)
	if err := repo.EnsureSchema(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	hub := ws.NewHub(cfg.WriteTimeout(), cfg.Stream.SendBuffer, logger)
	historyService := service.NewHistoryService(repo)

	// redis is optional: without it the status endpoint falls back to the
	// store and the pipeline records no progress
	var progress *redisstore.ProgressStore
	if cfg.Redis.Addr != "" {
		client, err := libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		progress = redisstore.NewProgressStore(client, progressTTL)
	}

	var recorder ingest.ProgressRecorder
	if progress != nil {
		recorder = progress
	}
	pipeline := ingest.NewPipeline(cfg.Source.Path, cfg.Source.BatchSize, cfg.Pace(), repo, hub, recorder, logger)

	wsServer := ws.NewServer(hub, logger)
	routes := httpserver.Routes{
		History: handlers.NewHistoryHandler(historyService, logger),
		Status:  handlers.NewStatusHandler(progress, repo, logger),
		Health:  handlers.NewHealthHandler(),
		Stream:  wsServer.HandleWS,
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:   server,
		pipeline: pipeline,
		db:       sqlDB,
		logger:   logger,
	}, nil
}

// Run starts the ingestion pipeline and serves HTTP until ctx is cancelled.
// An ingestion failure halts the live feed but leaves the query path up:
// everything persisted so far stays served.
func (a *App) Run(ctx context.Context) error {
	go func() {
		if err := a.pipeline.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("ingestion stopped", zap.Error(err))
		}
	}()

	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
