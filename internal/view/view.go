// Package view renders the panel page from session state.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"image-panel/internal/domain"
	"image-panel/internal/service"
)

//go:embed templates/panel.html
var templateFS embed.FS

var panelTemplate = template.Must(template.ParseFS(templateFS, "templates/panel.html"))

// PageData is everything the panel page shows
type PageData struct {
	Operations []domain.OperationInfo
	Selected   domain.Operation
	Cards      []domain.ResultCard
	Report     *domain.Report
	Notices    []string
}

type cardView struct {
	Title        string
	Error        string
	Operation    domain.Operation
	OriginalSrc  template.URL
	ProcessedSrc template.URL
	DownloadPNG  string
	DownloadJPG  string
}

type pageView struct {
	Operations []domain.OperationInfo
	Selected   domain.Operation
	Cards      []cardView
	Exportable bool
	Report     *domain.Report
	Notices    []string
}

// NewPageData builds the page for a session
func NewPageData(session *domain.Session, notices ...string) PageData {
	data := PageData{
		Operations: domain.Operations(),
		Selected:   domain.OperationGrayscale,
		Notices:    notices,
	}
	if session == nil {
		return data
	}
	if session.Operation != "" {
		data.Selected = session.Operation
	}
	data.Cards = session.Cards
	data.Report = session.Report
	return data
}

// Render writes the panel page
func Render(w io.Writer, data PageData) error {
	return panelTemplate.Execute(w, project(data))
}

func project(data PageData) pageView {
	page := pageView{
		Operations: data.Operations,
		Selected:   data.Selected,
		Cards:      make([]cardView, 0, len(data.Cards)),
		Report:     data.Report,
		Notices:    data.Notices,
	}

	for _, card := range data.Cards {
		cv := cardView{Title: card.Title, Error: card.Error}
		if card.Succeeded() {
			rec := card.Record
			page.Exportable = true
			cv.Operation = rec.Operation
			// payloads are base64 produced server side, so the URLs are safe to embed
			cv.OriginalSrc = template.URL(service.DataURL(rec.OriginalMime, rec.OriginalPayload))
			cv.ProcessedSrc = template.URL(service.DataURL(service.ProcessedMime(), rec.ProcessedPayload))
			cv.DownloadPNG = fmt.Sprintf("/records/%d/download/%s", card.Index, domain.DownloadPNG)
			cv.DownloadJPG = fmt.Sprintf("/records/%d/download/%s", card.Index, domain.DownloadJPG)
		}
		page.Cards = append(page.Cards, cv)
	}
	return page
}
