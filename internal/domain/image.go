package domain

import (
	"io"
	"time"
)

// Operation names a transformation performed by the processing endpoint
type Operation string

const (
	OperationGrayscale Operation = "grayscale"
	OperationBlur      Operation = "blur"
	OperationEdge      Operation = "edge"
	OperationThreshold Operation = "threshold"
	OperationResize    Operation = "resize"
	OperationRotate    Operation = "rotate"
	OperationFlip      Operation = "flip"
	OperationLighten   Operation = "lighten"
	OperationDarken    Operation = "darken"
	OperationHue       Operation = "hue"
)

// OperationInfo describes one entry of the operation select
type OperationInfo struct {
	Name  Operation `json:"name"`
	Label string    `json:"label"`
}

var operationCatalog = []OperationInfo{
	{Name: OperationGrayscale, Label: "Grayscale"},
	{Name: OperationBlur, Label: "Gaussian Blur"},
	{Name: OperationEdge, Label: "Edge Detection"},
	{Name: OperationThreshold, Label: "Threshold"},
	{Name: OperationResize, Label: "Resize (200x200)"},
	{Name: OperationRotate, Label: "Rotate 45°"},
	{Name: OperationFlip, Label: "Flip Horizontal"},
	{Name: OperationLighten, Label: "Lighten"},
	{Name: OperationDarken, Label: "Darken"},
	{Name: OperationHue, Label: "Hue Shift"},
}

// Operations returns the operation catalog in display order
func Operations() []OperationInfo {
	out := make([]OperationInfo, len(operationCatalog))
	copy(out, operationCatalog)
	return out
}

// Valid reports whether the operation is part of the catalog
func (o Operation) Valid() bool {
	for _, info := range operationCatalog {
		if info.Name == o {
			return true
		}
	}
	return false
}

// ImageSource is a file selected by the user
type ImageSource interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// EncodedImage is a source read into memory together with its base64 payload
type EncodedImage struct {
	Name     string
	Data     []byte
	MimeType string
	Payload  string
}

// ProcessedImage is the decoded response of the processing endpoint
type ProcessedImage struct {
	OriginalPayload  string `json:"original_image"`
	ProcessedPayload string `json:"processed_image"`
}

// DisplayRecord pairs a file's original and processed payloads with the operation used.
// Records live only as long as the UI session that produced them.
type DisplayRecord struct {
	Name             string    `json:"name"`
	OriginalMime     string    `json:"original_mime"`
	OriginalPayload  string    `json:"original_payload"`
	ProcessedPayload string    `json:"processed_payload"`
	Operation        Operation `json:"operation"`
}

// ResultCard is what the panel shows for one selected file
type ResultCard struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Title string `json:"title"`

	// Error is set when reading or processing failed
	Error string `json:"error,omitempty"`
	// ReadFailed marks cards whose source could not be read at all
	ReadFailed bool `json:"read_failed,omitempty"`

	Record *DisplayRecord `json:"record,omitempty"`
}

// Succeeded reports whether the card holds a processed pair
func (c ResultCard) Succeeded() bool {
	return c.Record != nil && c.Error == ""
}

// Batch is the outcome of one Process action
type Batch struct {
	Operation  Operation       `json:"operation"`
	Cards      []ResultCard    `json:"cards"`
	Records    []DisplayRecord `json:"records"`
	Exportable bool            `json:"exportable"`
}

// DownloadFormat is the format of a processed image download
type DownloadFormat string

const (
	DownloadPNG DownloadFormat = "png"
	DownloadJPG DownloadFormat = "jpg"
)

// Download is a file ready to be sent to the browser
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportFilename is the name of the exported PDF
const ReportFilename = "processed_images_report.pdf"

// Report is an exported PDF report
type Report struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Data        []byte    `json:"-"`
	Pages       int       `json:"pages"`
	CreatedAt   time.Time `json:"created_at"`
	ArchivePath string    `json:"archive_path,omitempty"`
}

// Session is the per-browser panel state
type Session struct {
	ID        string
	Operation Operation
	Cards     []ResultCard
	Records   []DisplayRecord
	Report    *Report
	UpdatedAt time.Time
}

// Clone returns a copy that shares no slices with s
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Cards = append([]ResultCard(nil), s.Cards...)
	cp.Records = append([]DisplayRecord(nil), s.Records...)
	if s.Report != nil {
		r := *s.Report
		cp.Report = &r
	}
	return &cp
}
