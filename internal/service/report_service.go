package service

import (
	"context"

	"image-panel/internal/domain"
	apperrors "image-panel/pkg/errors"
)

// ReportService exports a session's display records as a PDF
type ReportService struct {
	sessions domain.SessionRepository
	builder  domain.ReportBuilder
	archive  domain.ReportArchive
	logger   domain.Logger
}

// NewReportService creates a report service; archive may be nil
func NewReportService(
	sessions domain.SessionRepository,
	builder domain.ReportBuilder,
	archive domain.ReportArchive,
	logger domain.Logger,
) *ReportService {
	return &ReportService{
		sessions: sessions,
		builder:  builder,
		archive:  archive,
		logger:   logger,
	}
}

// ExportReport builds the report from the session's records, keeps it in the
// session for preview and download, and archives a copy when configured
func (s *ReportService) ExportReport(ctx context.Context, sessionID string) (*domain.Report, error) {
	session := s.sessions.Load(sessionID)
	if len(session.Records) == 0 {
		return nil, apperrors.NewValidationError("No processed images to export")
	}

	report, err := s.builder.Build(session.Records)
	if err != nil {
		s.logger.Error("Failed to build report", err, "session_id", sessionID)
		return nil, err
	}

	if s.archive != nil {
		path, err := s.archive.Archive(ctx, sessionID, report, session.Records)
		if err != nil {
			s.logger.Warn("Report archive failed, keeping session copy only",
				"session_id", sessionID,
				"error", err,
			)
		} else {
			report.ArchivePath = path
		}
	}

	session.Report = report
	s.sessions.Save(session)

	s.logger.Info("Report exported",
		"session_id", sessionID,
		"pages", report.Pages,
		"bytes", len(report.Data),
	)
	return report, nil
}

// LatestReport returns the last exported report of the session
func (s *ReportService) LatestReport(sessionID string) (*domain.Report, error) {
	session := s.sessions.Load(sessionID)
	if session.Report == nil {
		return nil, apperrors.NewNotFoundError("No report has been exported yet")
	}
	return session.Report, nil
}
