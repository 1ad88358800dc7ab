package service

import (
	"encoding/base64"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"image-panel/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadImage_EncodesPayload(t *testing.T) {
	data := testPNG(t, 2, 2, color.White)

	img, err := LoadImage(&memorySource{name: "cat.png", data: data}, 0)
	require.NoError(t, err)

	assert.Equal(t, "cat.png", img.Name)
	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(data), img.Payload)
	assert.Equal(t, data, img.Data)
}

func TestLoadImage_Errors(t *testing.T) {
	_, err := LoadImage(&memorySource{name: "broken.png", err: errors.New("permission denied")}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.png")

	_, err = LoadImage(&memorySource{name: "empty.png"}, 0)
	assert.ErrorIs(t, err, domain.ErrEmptyFile)

	_, err = LoadImage(&memorySource{name: "big.png", data: make([]byte, 11)}, 10)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	_, err = LoadImage(&memorySource{name: "fits.png", data: make([]byte, 10)}, 10)
	assert.NoError(t, err)
}

func TestDataURL(t *testing.T) {
	assert.Equal(t, "data:image/jpeg;base64,QUJD", DataURL("image/jpeg", "QUJD"))
	assert.Equal(t, "data:image/png;base64,QUJD", DataURL("", "QUJD"))
}

func TestProcessedFilename(t *testing.T) {
	assert.Equal(t, "processed_photo.png", ProcessedFilename("photo.jpeg", "png"))
	assert.Equal(t, "processed_archive.tar.jpg", ProcessedFilename("archive.tar.gz", "jpg"))
	assert.Equal(t, "processed_noext.png", ProcessedFilename("noext", "png"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "evil.png", SanitizeFilename("../../etc/evil.png"))
	assert.Equal(t, "win.png", SanitizeFilename(`C:\Users\me\win.png`))
	assert.Equal(t, "image", SanitizeFilename("  "))
	assert.Equal(t, "image", SanitizeFilename("/"))
}

func TestFileSource(t *testing.T) {
	p := filepath.Join(t.TempDir(), "disk.png")
	require.NoError(t, os.WriteFile(p, testPNG(t, 1, 1, color.Black), 0o600))

	img, err := LoadImage(NewFileSource(p), 0)
	require.NoError(t, err)
	assert.Equal(t, "disk.png", img.Name)
	assert.Equal(t, "image/png", img.MimeType)
}
