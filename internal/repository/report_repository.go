package repository

import (
	"context"
	"fmt"
	"time"

	"image-panel/internal/domain"
)

const reportsTable = "reports"

// SupabaseReportRepository implements domain.ReportRepository on the reports table
type SupabaseReportRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseReportRepository creates a new Supabase report repository
func NewSupabaseReportRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseReportRepository {
	return &SupabaseReportRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Create inserts one metadata row for an archived report
func (r *SupabaseReportRepository) Create(ctx context.Context, entry *domain.ReportEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	row := reportRow(entry)
	_, _, err := client.From(reportsTable).Insert(row, false, "", "", "").Execute()
	if err != nil {
		r.logger.Error("Failed to insert report in Supabase", err,
			"report_id", entry.ID,
			"session_id", entry.SessionID,
		)
		return fmt.Errorf("failed to create report: %w", err)
	}

	r.logger.Info("Report created", "id", entry.ID, "path", entry.FilePath)
	return nil
}

func reportRow(entry *domain.ReportEntry) map[string]interface{} {
	operations := entry.Operations
	if operations == nil {
		operations = []string{}
	}
	return map[string]interface{}{
		"id":          entry.ID,
		"session_id":  entry.SessionID,
		"file_path":   entry.FilePath,
		"image_count": entry.ImageCount,
		"operations":  operations,
		"created_at":  entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}
