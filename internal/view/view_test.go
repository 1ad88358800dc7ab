package view

import (
	"bytes"
	"strings"
	"testing"

	"image-panel/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, data PageData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, data))
	return buf.String()
}

func TestRender_EmptyPanel(t *testing.T) {
	html := render(t, NewPageData(nil))

	assert.Contains(t, html, `name="files"`)
	assert.Contains(t, html, `<option value="grayscale" selected>Grayscale</option>`)
	assert.Contains(t, html, `<option value="hue">Hue Shift</option>`)
	assert.Contains(t, html, `class="empty-state"`)
	assert.NotContains(t, html, "exportPdfBtn")
	assert.NotContains(t, html, "pdfFrame")
}

func TestRender_Cards(t *testing.T) {
	session := &domain.Session{
		Operation: domain.OperationBlur,
		Cards: []domain.ResultCard{
			{
				Index: 0,
				Title: "Image 1: a.jpg",
				Record: &domain.DisplayRecord{
					Name:             "a.jpg",
					OriginalMime:     "image/jpeg",
					OriginalPayload:  "T1JJRw==",
					ProcessedPayload: "UFJPQw==",
					Operation:        domain.OperationBlur,
				},
			},
			{Index: 1, Title: "Image 2: <b>.png", Error: "Error reading original image", ReadFailed: true},
		},
	}

	html := render(t, NewPageData(session))

	assert.Contains(t, html, `<option value="blur" selected>`)
	assert.Contains(t, html, `<h3>Image 1: a.jpg</h3>`)
	assert.Contains(t, html, `src="data:image/jpeg;base64,T1JJRw=="`)
	assert.Contains(t, html, `src="data:image/png;base64,UFJPQw=="`)
	assert.Contains(t, html, "Processed (blur)")
	assert.Contains(t, html, `href="/records/0/download/png"`)
	assert.Contains(t, html, `href="/records/0/download/jpg"`)
	assert.NotContains(t, html, "/records/1/download")

	assert.Contains(t, html, "Image 2: &lt;b&gt;.png")
	assert.Contains(t, html, "Error reading original image")
	assert.Contains(t, html, "exportPdfBtn")
	assert.NotContains(t, html, "pdfFrame")
}

func TestRender_OnlyFailuresHidesExport(t *testing.T) {
	session := &domain.Session{
		Cards: []domain.ResultCard{{Title: "Image 1: a.png", Error: "Error: Failed to process image"}},
	}

	html := render(t, NewPageData(session))

	assert.NotContains(t, html, "exportPdfBtn")
}

func TestRender_ReportAndNotices(t *testing.T) {
	session := &domain.Session{
		Cards: []domain.ResultCard{{
			Title:  "Image 1: a.png",
			Record: &domain.DisplayRecord{Name: "a.png", Operation: domain.OperationFlip},
		}},
		Report: &domain.Report{ID: "r-42"},
	}

	html := render(t, NewPageData(session, "Please select at least one image!"))

	assert.Contains(t, html, `<p class="notice">Please select at least one image!</p>`)
	assert.Contains(t, html, `src="/report/preview?v=r-42"`)
	assert.Contains(t, html, "Download PDF")
	assert.True(t, strings.Index(html, "notice") < strings.Index(html, "processForm"))
}
