package handler

import (
	"net/http"

	"image-panel/internal/domain"
	"image-panel/internal/view"
	apperrors "image-panel/pkg/errors"
)

// ReportHandler handles PDF export, preview and download
type ReportHandler struct {
	reportService domain.ReportService
	panelService  domain.PanelService
	logger        domain.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService domain.ReportService, panelService domain.PanelService, logger domain.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		panelService:  panelService,
		logger:        logger,
	}
}

// Export builds the report and sends the browser to the preview
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	if _, err := h.reportService.ExportReport(r.Context(), sessionID); err != nil {
		h.logger.Warn("Report export failed", "session_id", sessionID, "error", err)
		page := view.NewPageData(h.panelService.Session(sessionID), apperrors.UserMessage(err))
		renderPage(w, h.logger, apperrors.GetStatusCode(err), page)
		return
	}

	http.Redirect(w, r, "/#pdfPreview", http.StatusSeeOther)
}

// APIExport builds the report and returns the PDF
func (h *ReportHandler) APIExport(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	report, err := h.reportService.ExportReport(r.Context(), sessionID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if report.ArchivePath != "" {
		w.Header().Set("X-Report-Archive-Path", report.ArchivePath)
	}
	writeFile(w, "application/pdf", "attachment", report.Filename, report.Data)
}

// Preview shows the latest report inline for the panel's iframe
func (h *ReportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	h.serveLatest(w, r, "inline")
}

// Download sends the latest report as processed_images_report.pdf
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	h.serveLatest(w, r, "attachment")
}

func (h *ReportHandler) serveLatest(w http.ResponseWriter, r *http.Request, disposition string) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	report, err := h.reportService.LatestReport(sessionID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeFile(w, "application/pdf", disposition, report.Filename, report.Data)
}
