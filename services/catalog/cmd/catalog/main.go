package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/minhngo/storefront/pkg/db"
	"github.com/minhngo/storefront/pkg/kafka"
	"github.com/minhngo/storefront/pkg/logging"
	loggingmw "github.com/minhngo/storefront/pkg/middleware/logging"
	"github.com/minhngo/storefront/services/catalog/internal/config"
	"github.com/minhngo/storefront/services/catalog/internal/httpserver"
	"github.com/minhngo/storefront/services/catalog/internal/models"
	"github.com/minhngo/storefront/services/catalog/internal/repo"
	"github.com/minhngo/storefront/services/catalog/internal/search"
	"github.com/minhngo/storefront/services/catalog/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New("catalog", cfg.LogLevel)

	ctx := context.Background()
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	producer := kafka.NewProducer(cfg.KafkaBrokers)

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
	}

	svc := &service.CatalogService{
		Repo:     &repo.GormRepo{DB: gdb},
		Producer: producer,
		Indexer:  &search.Indexer{ES: esClient},
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), echomw.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: svc, ES: esClient},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}
	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}
}
