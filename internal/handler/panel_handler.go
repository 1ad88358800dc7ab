// Package handler provides HTTP handlers for the panel and the JSON API.
package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"image-panel/internal/domain"
	"image-panel/internal/service"
	"image-panel/internal/view"
	apperrors "image-panel/pkg/errors"

	"github.com/gorilla/mux"
)

// maxMemory is the part of a multipart form kept in memory; the rest spills to disk
const maxMemory = 32 << 20

// PanelHandler serves the panel page, batch processing and image downloads
type PanelHandler struct {
	panelService domain.PanelService
	logger       domain.Logger
}

// NewPanelHandler creates a new panel handler
func NewPanelHandler(panelService domain.PanelService, logger domain.Logger) *PanelHandler {
	return &PanelHandler{
		panelService: panelService,
		logger:       logger,
	}
}

// Index renders the panel with the session's current results
func (h *PanelHandler) Index(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}
	renderPage(w, h.logger, http.StatusOK, view.NewPageData(h.panelService.Session(sessionID)))
}

// Process handles the panel form and renders the resulting cards
func (h *PanelHandler) Process(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	_, err := h.processForm(r, sessionID)
	if err != nil {
		session := h.panelService.Session(sessionID)
		renderPage(w, h.logger, apperrors.GetStatusCode(err), view.NewPageData(session, apperrors.UserMessage(err)))
		return
	}

	renderPage(w, h.logger, http.StatusOK, view.NewPageData(h.panelService.Session(sessionID)))
}

// APIProcess is Process for API clients
func (h *PanelHandler) APIProcess(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	batch, err := h.processForm(r, sessionID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

func (h *PanelHandler) processForm(r *http.Request, sessionID string) (*domain.Batch, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.logger.Warn("Failed to parse upload form", "session_id", sessionID, "error", err)
		return nil, apperrors.NewValidationError("Invalid upload form")
	}

	var sources []domain.ImageSource
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["files"] {
			sources = append(sources, service.NewUploadSource(header))
		}
	}
	if len(sources) == 0 {
		return nil, apperrors.NewValidationError(service.MsgNoImages)
	}

	operation, err := service.ParseOperation(r.FormValue("operation"))
	if err != nil {
		return nil, err
	}

	return h.panelService.ProcessBatch(r.Context(), sessionID, sources, operation)
}

// Operations lists the operation catalog
func (h *PanelHandler) Operations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Operations())
}

// Records returns the session's display records
func (h *PanelHandler) Records(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	records := h.panelService.Records(sessionID)
	// Ensure JSON is [] not null when there are no records.
	if records == nil {
		records = make([]domain.DisplayRecord, 0)
	}
	writeJSON(w, http.StatusOK, records)
}

// Download sends one processed image as PNG or JPG
func (h *PanelHandler) Download(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Processed image not found")
		return
	}

	dl, err := h.panelService.Download(sessionID, index, domain.DownloadFormat(vars["format"]))
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeFile(w, dl.ContentType, "attachment", dl.Filename, dl.Data)
}

func renderPage(w http.ResponseWriter, logger domain.Logger, statusCode int, data view.PageData) {
	var buf bytes.Buffer
	if err := view.Render(&buf, data); err != nil {
		logger.Error("Failed to render panel", err)
		writeError(w, http.StatusInternalServerError, "Failed to render panel")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
}

func writeFile(w http.ResponseWriter, contentType, disposition, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
