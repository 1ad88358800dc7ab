package config

import (
	"context"
	"time"

	"image-panel/internal/domain"
	"image-panel/internal/infra/supabase"
	"image-panel/internal/repository"
	"image-panel/internal/service"
	"image-panel/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	SupabaseClient    domain.SupabaseClient
	SessionRepository domain.SessionRepository
	ReportArchive     domain.ReportArchive
	PanelService      *service.PanelService
	ReportService     *service.ReportService
}

// NewContainer creates a new dependency injection container from the environment
func NewContainer() *Container {
	config := NewConfig()
	return BuildContainer(config, logger.NewLogger(config.GetLogLevel()))
}

// BuildContainer wires every dependency around the given config and logger
func BuildContainer(config domain.Config, appLogger domain.Logger) *Container {
	// Initialize Supabase client; the report archive is optional
	supabaseClient := supabase.NewSupabaseClient(config, appLogger)
	var archive domain.ReportArchive
	if supabaseClient.Configured() {
		if err := supabaseClient.Initialize(); err != nil {
			appLogger.Warn("Supabase unavailable, reports will not be archived", "error", err)
		} else {
			storage := service.NewStorageService(supabaseClient, config.GetReportBucket())
			reportRepo := repository.NewSupabaseReportRepository(supabaseClient, appLogger)
			archive = service.NewReportArchive(storage, reportRepo, appLogger)
		}
	}

	// Initialize repositories
	sessionRepo := repository.NewMemorySessionRepository(config.GetSessionTTL(), appLogger)

	// Initialize services
	processor := service.NewProcessorClient(
		config.GetProcessorURL(),
		config.GetProcessorTimeout(),
		config.GetProcessorMaxRetries(),
		appLogger,
	)
	panelService := service.NewPanelService(
		processor,
		sessionRepo,
		appLogger,
		config.GetMaxFileSize(),
		config.GetProcessConcurrency(),
	)
	reportService := service.NewReportService(
		sessionRepo,
		service.NewPDFReportBuilder(),
		archive,
		appLogger,
	)

	return &Container{
		Config:            config,
		Logger:            appLogger,
		SupabaseClient:    supabaseClient,
		SessionRepository: sessionRepo,
		ReportArchive:     archive,
		PanelService:      panelService,
		ReportService:     reportService,
	}
}

// StartSessionSweeper evicts idle sessions every interval until ctx is done
func (c *Container) StartSessionSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				c.SessionRepository.Sweep(now)
			}
		}
	}()
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetSupabaseClient returns the Supabase client instance
func (c *Container) GetSupabaseClient() domain.SupabaseClient {
	return c.SupabaseClient
}
