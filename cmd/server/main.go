package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/roomsense/roomsense-backend/internal/api"
	"github.com/roomsense/roomsense-backend/internal/auth"
	"github.com/roomsense/roomsense-backend/internal/config"
	"github.com/roomsense/roomsense-backend/internal/database"
	"github.com/roomsense/roomsense-backend/internal/service"
	"github.com/roomsense/roomsense-backend/internal/ws"
)

func main() {
	cfg, err := config.Load("config.yml")
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	defer logger.Sync()

	gin.SetMode(gin.ReleaseMode)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.TokenSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	hub := ws.NewHub(logger)
	svc := service.New(db, tokens, hub, logger)
	router := api.NewRouter(svc, db, tokens, hub, logger)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: cors.AllowAll().Handler(router),
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.Fatal("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
