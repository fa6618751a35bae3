package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/smart_shopper/internal/catalog"
	"github.com/Skotchmaster/smart_shopper/internal/config"
	"github.com/Skotchmaster/smart_shopper/internal/db"
	"github.com/Skotchmaster/smart_shopper/internal/es"
	"github.com/Skotchmaster/smart_shopper/internal/geo"
	"github.com/Skotchmaster/smart_shopper/internal/httpserver"
	"github.com/Skotchmaster/smart_shopper/internal/logging"
	loggingmw "github.com/Skotchmaster/smart_shopper/internal/middleware/logging"
	"github.com/Skotchmaster/smart_shopper/internal/mykafka"
	"github.com/Skotchmaster/smart_shopper/internal/repo"
	"github.com/Skotchmaster/smart_shopper/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.RefreshSecret, "REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel, cfg.LogFormat).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("catalog load: %v", err)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	catalogHandler := &httpserver.CatalogHTTP{Catalog: cat, Index: cfg.ESIndex}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			logger.Warn("elasticsearch unavailable, catalog search degrades to in-memory scan", "error", err)
		} else {
			idxCtx, idxCancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := es.IndexCatalog(idxCtx, esClient, cfg.ESIndex, cat); err != nil {
				logger.Warn("catalog indexing failed, search degrades to in-memory scan", "error", err)
			} else {
				catalogHandler.ES = esClient
			}
			idxCancel()
		}
	}

	r := &repo.GormRepo{DB: gdb}
	listSvc := &service.ListService{Repo: r, Producer: producer, Router: geo.NewClient(cfg.OSRMURL)}
	accountSvc := &service.AccountService{
		Repo:          r,
		Producer:      producer,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		ListHandler:    &httpserver.ListHTTP{Svc: listSvc},
		AccountHandler: &httpserver.AccountHTTP{Svc: accountSvc},
		CatalogHandler: catalogHandler,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("stopped")
}
