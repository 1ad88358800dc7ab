package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"image-panel/internal/domain"
	"image-panel/internal/httputil"
	apperrors "image-panel/pkg/errors"
)

// maxResponseSize bounds the JSON body read from the processing endpoint
const maxResponseSize = 256 << 20

// ProcessorClient talks to the remote image-processing endpoint
type ProcessorClient struct {
	endpoint   string
	httpClient *http.Client
	maxRetries int
	logger     domain.Logger
}

// NewProcessorClient creates a client for the endpoint URL
func NewProcessorClient(endpoint string, timeout time.Duration, maxRetries int, logger domain.Logger) *ProcessorClient {
	return &ProcessorClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		logger:     logger,
	}
}

type processResponse struct {
	OriginalImage  string `json:"original_image"`
	ProcessedImage string `json:"processed_image"`
	Error          string `json:"error"`
	Detail         any    `json:"detail"`
}

// Process posts one image with the requested operation and returns both payloads
func (c *ProcessorClient) Process(ctx context.Context, image *domain.EncodedImage, operation domain.Operation) (*domain.ProcessedImage, error) {
	body, contentType, err := buildProcessForm(image, operation)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to build upload form", err)
	}

	newRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, newRequest, c.maxRetries)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperrors.NewNetworkError("Processing cancelled", err)
		}
		c.logger.Error("Processing endpoint unreachable", err, "endpoint", c.endpoint, "file", image.Name)
		return nil, apperrors.NewNetworkError("Failed to reach processing endpoint", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, apperrors.NewNetworkError("Failed to read processing response", err)
	}

	var decoded processResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		appErr := apperrors.NewProcessingError("Failed to process image", fmt.Errorf("processing endpoint returned %d", resp.StatusCode))
		if detail := decoded.message(); decodeErr == nil && detail != "" {
			appErr = appErr.WithDetails(detail)
		}
		c.logger.Warn("Processing endpoint rejected image",
			"status", resp.StatusCode,
			"file", image.Name,
			"operation", string(operation),
		)
		return nil, appErr
	}

	if decodeErr != nil {
		return nil, apperrors.NewProcessingError("Invalid response from processing endpoint", decodeErr)
	}
	if decoded.ProcessedImage == "" {
		return nil, apperrors.NewProcessingError("Processing endpoint returned no image", nil)
	}

	return &domain.ProcessedImage{
		OriginalPayload:  decoded.OriginalImage,
		ProcessedPayload: decoded.ProcessedImage,
	}, nil
}

// message picks the error text of a failed response; FastAPI validation
// failures use "detail" instead of "error"
func (r processResponse) message() string {
	if r.Error != "" {
		return r.Error
	}
	switch d := r.Detail.(type) {
	case string:
		return d
	case nil:
		return ""
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildProcessForm encodes the two form fields the endpoint expects: file and operation
func buildProcessForm(image *domain.EncodedImage, operation domain.Operation) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(image.Name)))
	contentType := image.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("operation", string(operation)); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
