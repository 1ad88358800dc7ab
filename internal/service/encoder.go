package service

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"image-panel/internal/domain"
)

// LoadImage reads a selected file and encodes it as a base64 payload.
// maxSize <= 0 disables the size check.
func LoadImage(src domain.ImageSource, maxSize int64) (*domain.EncodedImage, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src.Name(), err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if maxSize > 0 {
		r = io.LimitReader(rc, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Name(), err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, fmt.Errorf("read %s: %w", src.Name(), domain.ErrFileTooLarge)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("read %s: %w", src.Name(), domain.ErrEmptyFile)
	}

	return &domain.EncodedImage{
		Name:     src.Name(),
		Data:     data,
		MimeType: http.DetectContentType(data),
		Payload:  EncodePayload(data),
	}, nil
}

// EncodePayload is the standard base64 encoding used for every payload
func EncodePayload(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodePayload reverses EncodePayload
func DecodePayload(payload string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(payload)
}

// DataURL embeds a payload for an <img> tag
func DataURL(mimeType, payload string) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + payload
}

// ProcessedFilename names a processed download: processed_<stem>.<ext>
func ProcessedFilename(name string, ext string) string {
	stem := strings.TrimSuffix(name, path.Ext(name))
	return "processed_" + stem + "." + ext
}

// SanitizeFilename strips any path components from a user supplied name
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	clean := strings.TrimSpace(path.Base(name))
	if clean == "" || clean == "." || clean == "/" || clean == string(filepath.Separator) {
		return "image"
	}
	return clean
}
