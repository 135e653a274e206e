package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cx-tal-miterani/scenic-airways/internal/app"
	"github.com/cx-tal-miterani/scenic-airways/internal/config"
	"github.com/cx-tal-miterani/scenic-airways/internal/handlers"
	"github.com/cx-tal-miterani/scenic-airways/internal/logger"
	"github.com/cx-tal-miterani/scenic-airways/internal/router"
	"github.com/cx-tal-miterani/scenic-airways/internal/service"
	"github.com/cx-tal-miterani/scenic-airways/internal/websocket"
)

func main() {
	log := logger.Init(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	hub := websocket.NewHub(log)
	go hub.Run()
	defer hub.Stop()

	dashboard := service.NewDashboardService(a.Auth, a.Workflow, hub)
	if session, err := dashboard.Restore(ctx); err != nil {
		log.Warn("Could not restore session", "error", err)
	} else if session.IsAuthenticated {
		log.Info("Restored session", "userId", session.User.ID)
	}

	h := handlers.NewHandler(dashboard)
	r := router.SetupRouter(h, hub.HandleWebSocket)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("API server starting", "port", cfg.Port, "storage", cfg.StorageBackend, "catalog", cfg.CatalogBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server stopped")
}
