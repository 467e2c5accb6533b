package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/planify/config"
	"github.com/oksasatya/planify/internal/container"
	"github.com/oksasatya/planify/internal/infrastructure/store"
	"github.com/oksasatya/planify/internal/router"
	"github.com/oksasatya/planify/pkg/helpers"
	"github.com/oksasatya/planify/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	// Redis (optional: session registry and rate limiting)
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer func() { _ = rdb.Close() }()
	} else {
		logger.Warn("REDIS_ADDR empty: sessions cannot be revoked and rate limiting is off")
	}

	// Elasticsearch (optional: project search)
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("failed to init elasticsearch client: %v", err)
	}
	if es != nil {
		esCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := helpers.EnsureProjectsIndex(esCtx, es, cfg.ESProjectsIndex); err != nil {
			logger.WithError(err).Warn("elasticsearch projects index unavailable, search results may be empty")
		}
		cancel()
	}

	// RabbitMQ (optional: task cleanup queue)
	var pub *helpers.RabbitPublisher
	if cfg.RabbitMQURL != "" {
		pub, err = helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQCleanupQueue)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer pub.Close()
	}

	jwtManager := helpers.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL, cfg.AppName)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetStore(st)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)
	container.SetES(es)
	container.SetRabbitPub(pub)

	r := router.NewEngine()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s (store=%s)", cfg.Port, st.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}
