package handler

import (
	"context"
	"io"
	"sync"

	"image-panel/internal/domain"
	apperrors "image-panel/pkg/errors"
)

// MockHandlerLogger is a no-op logger used by handler package tests.
type MockHandlerLogger struct{}

func NewMockHandlerLogger() domain.Logger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{})             {}
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})             {}

// mockPanelService keeps one session per ID and records what it was asked to do
type mockPanelService struct {
	mu        sync.Mutex
	sessions  map[string]*domain.Session
	lastNames []string
	lastOp    domain.Operation
	download  *domain.Download
	err       error
}

func newMockPanelService() *mockPanelService {
	return &mockPanelService{sessions: make(map[string]*domain.Session)}
}

func (m *mockPanelService) ProcessBatch(ctx context.Context, sessionID string, sources []domain.ImageSource, op domain.Operation) (*domain.Batch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	m.lastOp = op
	m.lastNames = nil
	session := &domain.Session{ID: sessionID, Operation: op}
	for i, src := range sources {
		m.lastNames = append(m.lastNames, src.Name())
		rc, err := src.Open()
		if err != nil {
			return nil, err
		}
		data, _ := io.ReadAll(rc)
		rc.Close()

		rec := domain.DisplayRecord{Name: src.Name(), OriginalMime: "image/png", OriginalPayload: string(data), ProcessedPayload: string(data), Operation: op}
		session.Cards = append(session.Cards, domain.ResultCard{Index: i, Name: src.Name(), Title: "Image: " + src.Name(), Record: &rec})
		session.Records = append(session.Records, rec)
	}
	m.sessions[sessionID] = session
	return &domain.Batch{Operation: op, Cards: session.Cards, Records: session.Records, Exportable: len(session.Records) > 0}, nil
}

func (m *mockPanelService) Session(sessionID string) *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		return s
	}
	return &domain.Session{ID: sessionID}
}

func (m *mockPanelService) Records(sessionID string) []domain.DisplayRecord {
	return m.Session(sessionID).Records
}

func (m *mockPanelService) Download(sessionID string, index int, format domain.DownloadFormat) (*domain.Download, error) {
	if m.download == nil {
		return nil, apperrors.NewNotFoundError("Processed image not found")
	}
	return m.download, nil
}

type mockReportService struct {
	report *domain.Report
	err    error
	calls  int
}

func (m *mockReportService) ExportReport(ctx context.Context, sessionID string) (*domain.Report, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockReportService) LatestReport(sessionID string) (*domain.Report, error) {
	if m.report == nil || m.calls == 0 {
		return nil, apperrors.NewNotFoundError("No report has been exported yet")
	}
	return m.report, nil
}
