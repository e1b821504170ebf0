// Package server assembles the web process: database pool, Redis client,
// broker publisher, metrics, renderer, handlers and the http.Server that
// serves them.  It owns their lifecycle, including graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/router"
	"github.com/iliyamo/fyyur/internal/view"
)

// Server holds the shared resources of the web process.
type Server struct {
	Config  *config.Config
	Logger  zerolog.Logger
	DB      *sqlx.DB
	Redis   *redis.Client
	Echo    *echo.Echo
	Handler *handler.Handler
	Metrics *middleware.Metrics

	httpServer *http.Server
}

// New opens the database and Redis connections and assembles the server.
// Redis is optional: when it is disabled or unreachable flash messages fall
// back to cookies.
func New(cfg *config.Config, log zerolog.Logger) (*Server, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	rdb := config.NewRedisClient(cfg.Redis)
	if cfg.Redis.Enabled && rdb == nil {
		log.Warn().Str("addr", cfg.Redis.Addr).Msg("redis unreachable, flash messages use cookies")
	}
	s, err := Assemble(cfg, log, db, rdb)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Assemble wires the server around already-open connections.  rdb may be nil.
func Assemble(cfg *config.Config, log zerolog.Logger, db *sqlx.DB, rdb *redis.Client) (*Server, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	var events queue.Publisher = queue.NopPublisher{}
	if cfg.Broker.Enabled {
		events = queue.NewAMQPPublisher(cfg.Broker.URL, cfg.Broker.Queue, log)
	}

	metrics := middleware.NewMetrics()
	h := handler.New(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db),
		flash.New(rdb, cfg.Flash.TTL),
		events,
		metrics,
		log,
	)

	e := echo.New()
	router.Setup(e, h, renderer, metrics, log)

	return &Server{
		Config:  cfg,
		Logger:  log,
		DB:      db,
		Redis:   rdb,
		Echo:    e,
		Handler: h,
		Metrics: metrics,
		httpServer: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      e,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}, nil
}

// Start serves HTTP until Shutdown is called.  A clean shutdown returns nil.
func (s *Server) Start() error {
	s.Logger.Info().
		Str("addr", s.httpServer.Addr).
		Str("env", s.Config.Env).
		Msg("starting server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight requests and
// pending listing events, then closes the connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	s.Handler.Wait()
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.Warn().Err(err).Msg("close redis")
		}
	}
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// Run starts the server and, once ctx is cancelled, shuts it down allowing
// in-flight work up to grace to finish.
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.Logger.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := s.Shutdown(sctx); err != nil {
		return err
	}
	return <-errCh
}
