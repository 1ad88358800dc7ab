package service

import (
	"context"
	"fmt"
	"io"

	"image-panel/internal/domain"

	storage_go "github.com/supabase-community/storage-go"
)

// objectUploader is the slice of the Supabase storage client used here
type objectUploader interface {
	UploadFile(bucketId string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
}

// SupabaseStorage implements domain.StorageService on a Supabase bucket
type SupabaseStorage struct {
	bucket   string
	uploader func() (objectUploader, error)
}

// NewStorageService uploads into bucket through the shared Supabase client
func NewStorageService(client domain.SupabaseClient, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		bucket: bucket,
		uploader: func() (objectUploader, error) {
			if !client.Enabled() || client.DB() == nil || client.DB().Storage == nil {
				return nil, domain.ErrArchiveDisabled
			}
			return client.DB().Storage, nil
		},
	}
}

// Upload stores file at path inside the bucket, overwriting an existing object
func (s *SupabaseStorage) Upload(ctx context.Context, path string, file io.Reader, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	uploader, err := s.uploader()
	if err != nil {
		return err
	}

	upsert := true
	if _, err := uploader.UploadFile(s.bucket, path, file, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}); err != nil {
		return fmt.Errorf("storage upload failed: %w", err)
	}
	return nil
}
