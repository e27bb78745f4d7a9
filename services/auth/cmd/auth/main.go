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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/minhngo/storefront/pkg/hash"
	"github.com/minhngo/storefront/pkg/logging"
	loggingmw "github.com/minhngo/storefront/pkg/middleware/logging"
	"github.com/minhngo/storefront/services/auth/internal/config"
	"github.com/minhngo/storefront/services/auth/internal/httpserver"
	"github.com/minhngo/storefront/services/auth/internal/repo"
	"github.com/minhngo/storefront/services/auth/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New("auth", cfg.LogLevel)

	seedHash, err := hash.HashPassword(cfg.SeedPassword)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	svc := &service.AuthService{
		Repo: repo.NewInMemoryCredentials(repo.Credential{
			Username:     cfg.SeedUsername,
			PasswordHash: seedHash,
			Role:         cfg.SeedRole,
		}),
		JWTSecret: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
		TokenTTL:  cfg.TokenTTL,
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), echomw.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: svc},
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
}
