package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"image-panel/internal/domain"
)

// SupabaseReportArchive uploads exported reports and records their metadata
type SupabaseReportArchive struct {
	storage domain.StorageService
	repo    domain.ReportRepository
	logger  domain.Logger
}

// NewReportArchive creates an archive on top of storage and the reports table
func NewReportArchive(storage domain.StorageService, repo domain.ReportRepository, logger domain.Logger) *SupabaseReportArchive {
	return &SupabaseReportArchive{
		storage: storage,
		repo:    repo,
		logger:  logger,
	}
}

// ArchivePath is the object path of a report: <session>/<timestamp>_<filename>
func ArchivePath(sessionID string, report *domain.Report) string {
	return fmt.Sprintf("%s/%s_%s", sessionID, report.CreatedAt.UTC().Format("20060102T150405Z"), report.Filename)
}

// Archive uploads the PDF; a failed metadata insert is logged but the upload stands
func (a *SupabaseReportArchive) Archive(ctx context.Context, sessionID string, report *domain.Report, records []domain.DisplayRecord) (string, error) {
	path := ArchivePath(sessionID, report)

	if err := a.storage.Upload(ctx, path, bytes.NewReader(report.Data), "application/pdf"); err != nil {
		return "", fmt.Errorf("upload report: %w", err)
	}

	entry := &domain.ReportEntry{
		ID:         report.ID,
		SessionID:  sessionID,
		FilePath:   path,
		ImageCount: len(records),
		Operations: distinctOperations(records),
		CreatedAt:  report.CreatedAt,
	}
	if err := a.repo.Create(ctx, entry); err != nil {
		a.logger.Warn("Failed to record report metadata", "path", path, "error", err)
	}

	a.logger.Info("Report archived", "path", path, "images", len(records))
	return path, nil
}

func distinctOperations(records []domain.DisplayRecord) []string {
	seen := make(map[string]struct{}, len(records))
	ops := make([]string, 0, len(records))
	for _, rec := range records {
		op := string(rec.Operation)
		if _, ok := seen[op]; ok {
			continue
		}
		seen[op] = struct{}{}
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}
