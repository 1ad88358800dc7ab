package domain

import (
	"context"
	"io"
)

// StorageService uploads objects to the report bucket
type StorageService interface {
	Upload(ctx context.Context, path string, file io.Reader, contentType string) error
}
