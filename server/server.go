package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/customeros/ingestgen/api"
	"github.com/customeros/ingestgen/config"
	"github.com/customeros/ingestgen/internal/logger"
	"github.com/customeros/ingestgen/internal/repository"
)

const shutdownTimeout = 15 * time.Second

// Server runs the local ingest sink.
type Server struct {
	log          logger.Logger
	httpServer   *http.Server
	router       *gin.Engine
	repositories *repository.Repositories
	redis        *redis.Client
}

func NewServer(cfg *config.SinkConfig, log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		log:    log,
		router: router,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	if cfg.RedisAddr != "" {
		s.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		s.repositories = repository.InitRedisRepositories(s.redis, cfg.BatchTTL)
		log.Infof("Ingest sink stores batches in redis at %s", cfg.RedisAddr)
	} else {
		s.repositories = repository.InitRepositories()
	}

	api.RegisterRoutes(router, s.repositories, log, cfg.APIKey)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled or the process receives SIGINT/SIGTERM.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			return errors.Wrap(err, "redis is not reachable")
		}
		defer s.redis.Close()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Infof("Ingest sink listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("Shutting down ingest sink...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	s.log.Infof("Ingest sink stopped after %d batches", s.repositories.BatchRepository.Count(context.Background()))
	return err
}
