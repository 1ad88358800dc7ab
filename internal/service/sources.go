package service

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"image-panel/internal/domain"
)

type uploadSource struct {
	header *multipart.FileHeader
}

// NewUploadSource wraps a file posted from the panel form
func NewUploadSource(header *multipart.FileHeader) domain.ImageSource {
	return &uploadSource{header: header}
}

func (s *uploadSource) Name() string {
	return SanitizeFilename(s.header.Filename)
}

func (s *uploadSource) Open() (io.ReadCloser, error) {
	return s.header.Open()
}

type fileSource struct {
	path string
}

// NewFileSource wraps a file on disk, used by the batch command
func NewFileSource(path string) domain.ImageSource {
	return &fileSource{path: path}
}

func (s *fileSource) Name() string {
	return filepath.Base(s.path)
}

func (s *fileSource) Open() (io.ReadCloser, error) {
	return os.Open(s.path)
}
