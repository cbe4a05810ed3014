package models

import "time"

// FileKind represents what an uploaded artifact is used for
type FileKind string

const (
	FileKindProfilePhoto FileKind = "PROFILE_PHOTO"
	FileKindOfferLetter  FileKind = "OFFER_LETTER"
	FileKindResume       FileKind = "RESUME"
)

// File represents a stored artifact in the system. The owning record
// (user profile or application) holds the file ID as an opaque reference;
// the reference and the row must be created and removed together.
type File struct {
	ID         int64     `json:"id" db:"id"`
	FileName   string    `json:"fileName" db:"file_name"`
	FileURL    string    `json:"fileUrl" db:"file_url"`
	FileSize   int64     `json:"fileSize" db:"file_size"`
	MimeType   string    `json:"mimeType" db:"mime_type"`
	Kind       FileKind  `json:"kind" db:"kind"`
	UploadedBy int64     `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
