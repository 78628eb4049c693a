package http

import (
	"mime"
	"net/http"

	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

const (
	// In-memory thresholds for multipart parsing; larger files spill to
	// temp files handled by net/http.
	maxImageMemory = 10 << 20 // 10 MiB
	maxVideoMemory = 32 << 20 // 32 MiB
)

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// formFile wraps one multipart file as a FileUpload. The file handle is
// closed when the request body is, so the upload must be consumed within
// the request lifetime.
func formFile(r *http.Request, field string) (*ports.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, domain.ErrInvalidRequest
	}
	return &ports.FileUpload{
		Reader:      file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, nil
}
