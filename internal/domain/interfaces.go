package domain

import (
	"context"
	"time"
)

// ImageProcessor sends one image to the processing endpoint
type ImageProcessor interface {
	Process(ctx context.Context, image *EncodedImage, operation Operation) (*ProcessedImage, error)
}

// ReportBuilder folds display records into a PDF report
type ReportBuilder interface {
	Build(records []DisplayRecord) (*Report, error)
}

// ReportArchive keeps a copy of exported reports outside the session
type ReportArchive interface {
	Archive(ctx context.Context, sessionID string, report *Report, records []DisplayRecord) (string, error)
}

// PanelService runs batches and serves their results
type PanelService interface {
	ProcessBatch(ctx context.Context, sessionID string, sources []ImageSource, operation Operation) (*Batch, error)
	Session(sessionID string) *Session
	Records(sessionID string) []DisplayRecord
	Download(sessionID string, index int, format DownloadFormat) (*Download, error)
}

// ReportService exports and serves PDF reports
type ReportService interface {
	ExportReport(ctx context.Context, sessionID string) (*Report, error)
	LatestReport(sessionID string) (*Report, error)
}

// SessionRepository defines the interface for session storage operations
type SessionRepository interface {
	Load(sessionID string) *Session
	Save(session *Session)
	Delete(sessionID string)
	Sweep(now time.Time) int
}

// ReportRepository stores report metadata
type ReportRepository interface {
	Create(ctx context.Context, entry *ReportEntry) error
}

// ReportEntry is the metadata row of an archived report
type ReportEntry struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	FilePath   string    `json:"file_path"`
	ImageCount int       `json:"image_count"`
	Operations []string  `json:"operations"`
	CreatedAt  time.Time `json:"created_at"`
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetProcessorURL() string
	GetProcessorTimeout() time.Duration
	GetProcessorMaxRetries() int
	GetProcessConcurrency() int
	GetMaxFileSize() int64
	GetLogLevel() string
	GetSessionTTL() time.Duration
	GetAllowedOrigins() []string
	GetCookieSecure() bool
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetReportBucket() string
}
