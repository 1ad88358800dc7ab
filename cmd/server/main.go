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

	"image-panel/internal/config"
	"image-panel/internal/handler"

	"github.com/joho/godotenv"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container := config.NewContainer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	container.StartSessionSweeper(ctx, sweepInterval)

	// Handlers
	panelHandler := handler.NewPanelHandler(container.PanelService, container.Logger)
	reportHandler := handler.NewReportHandler(container.ReportService, container.PanelService, container.Logger)
	sessionMiddleware := handler.NewSessionMiddleware(container.Logger, container.Config.GetCookieSecure())

	// Router
	router := handler.NewRouter(
		panelHandler,
		reportHandler,
		sessionMiddleware.Middleware,
		container.Config.GetAllowedOrigins(),
	)

	// start server
	server := &http.Server{
		Addr:              ":" + container.Config.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening",
			"address", server.Addr,
			"processor_url", container.Config.GetProcessorURL(),
			"archive", container.ReportArchive != nil,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()
	// Graceful shutdown
	<-ctx.Done()

	container.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	container.Logger.Info("Server exited")
}
