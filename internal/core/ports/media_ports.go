package ports

import (
	"context"
	"io"

	"github.com/vidhub/api/internal/core/domain"
)

// FileUpload is one incoming multipart file, decoupled from net/http.
type FileUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// MediaStore is the external asset host. Upload returns the stored
// asset's public URL and its delete key.
type MediaStore interface {
	Upload(ctx context.Context, folder string, upload FileUpload) (*domain.Asset, error)
	Delete(ctx context.Context, key string) error
}
