package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/leopar/marketplace/internal/config"
	"github.com/leopar/marketplace/internal/events"
	"github.com/leopar/marketplace/internal/httpserver"
	"github.com/leopar/marketplace/internal/logging"
	"github.com/leopar/marketplace/internal/repo"
	"github.com/leopar/marketplace/internal/search"
	"github.com/leopar/marketplace/internal/service"
	"github.com/leopar/marketplace/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := repo.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer store.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	sessions := session.NewManager(rdb, cfg.SessionTTL)

	producer := events.NewProducer(cfg.KafkaAddress)
	defer producer.Close()

	var es *elasticsearch.Client
	if cfg.ES_URL != "" {
		es, err = search.NewClient(cfg)
		if err != nil {
			logger.Warn("search disabled", "error", err)
			es = nil
		}
	}

	authSvc := &service.AuthService{Repo: store, Sessions: sessions, Producer: producer}
	catalogSvc := &service.CatalogService{Repo: store, Producer: producer, ES: es}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, &httpserver.Deps{
		Auth:    &httpserver.AuthHTTP{Svc: authSvc, Sessions: sessions, SessionTTL: cfg.SessionTTL},
		Admin:   &httpserver.AdminHTTP{Catalog: catalogSvc, Sessions: sessions},
		Catalog: &httpserver.CatalogHTTP{Catalog: catalogSvc, ES: es},
	})

	go func() {
		if err := e.Start(cfg.Address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}
}
