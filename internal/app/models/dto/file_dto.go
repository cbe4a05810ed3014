package dto

import (
	"time"

	"github.com/placenet/placement-backend/internal/app/models"
)

// FileResponse represents a stored artifact reference returned to the caller
type FileResponse struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"fileName"`
	FileURL   string    `json:"fileUrl"`
	FileSize  int64     `json:"fileSize"`
	MimeType  string    `json:"mimeType"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromFile converts a models.File into a FileResponse
func FromFile(f *models.File) FileResponse {
	return FileResponse{
		ID:        f.ID,
		FileName:  f.FileName,
		FileURL:   f.FileURL,
		FileSize:  f.FileSize,
		MimeType:  f.MimeType,
		Kind:      string(f.Kind),
		CreatedAt: f.CreatedAt,
	}
}
