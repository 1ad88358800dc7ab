package service

import (
	"bytes"
	"fmt"
	"time"

	"image-panel/internal/domain"
	apperrors "image-panel/pkg/errors"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// Page layout in millimetres on A4 portrait
const (
	reportFontSize   = 16
	nameX, nameY     = 10.0, 10.0
	labelY           = 15.0
	originalX        = 10.0
	processedX       = 105.0
	imageY           = 20.0
	imageW, imageH   = 85.0, 120.0
	reportTitle      = "Processed Images Report"
	reportCreatorTag = "image-panel"
)

// PDFReportBuilder implements domain.ReportBuilder with fpdf
type PDFReportBuilder struct {
	now func() time.Time
}

// NewPDFReportBuilder creates a report builder
func NewPDFReportBuilder() *PDFReportBuilder {
	return &PDFReportBuilder{now: time.Now}
}

// Build writes one page per record: name, labels, original on the left and
// processed on the right
func (b *PDFReportBuilder) Build(records []domain.DisplayRecord) (*domain.Report, error) {
	if len(records) == 0 {
		return nil, apperrors.NewValidationError("No processed images to export")
	}

	createdAt := b.now()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(reportTitle, true)
	pdf.SetCreator(reportCreatorTag, true)
	pdf.SetCreationDate(createdAt)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", reportFontSize)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, rec := range records {
		pdf.AddPage()
		pdf.Text(nameX, nameY, tr("Image: "+rec.Name))
		pdf.Text(originalX, labelY, "Original Image")
		pdf.Text(processedX, labelY, tr(fmt.Sprintf("Processed Image (%s)", rec.Operation)))

		if err := placeImage(pdf, fmt.Sprintf("original-%d", i), rec.OriginalPayload, originalX); err != nil {
			return nil, apperrors.NewProcessingError("Failed to add original image to report", err).WithDetails(rec.Name)
		}
		if err := placeImage(pdf, fmt.Sprintf("processed-%d", i), rec.ProcessedPayload, processedX); err != nil {
			return nil, apperrors.NewProcessingError("Failed to add processed image to report", err).WithDetails(rec.Name)
		}
	}

	pages := pdf.PageNo()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.NewInternalError("Failed to write report", err)
	}

	return &domain.Report{
		ID:        uuid.NewString(),
		Filename:  domain.ReportFilename,
		Data:      buf.Bytes(),
		Pages:     pages,
		CreatedAt: createdAt,
	}, nil
}

func placeImage(pdf *fpdf.Fpdf, name, payload string, x float64) error {
	raw, err := DecodePayload(payload)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	data, kind, err := NormalizeForPDF(raw)
	if err != nil {
		return err
	}

	opts := fpdf.ImageOptions{ImageType: kind}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if pdf.Err() {
		return pdf.Error()
	}
	pdf.ImageOptions(name, x, imageY, imageW, imageH, false, opts, 0, "")
	if pdf.Err() {
		return pdf.Error()
	}
	return nil
}
