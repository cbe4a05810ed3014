package filestorage

import "mime/multipart"

// FileStorage defines the interface for artifact storage operations.
// Implementations return an accessible path/URL which callers persist as
// an opaque reference.
type FileStorage interface {
	// SaveFile saves a file and returns the accessible path where it was stored
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage. Deleting a missing file is a
	// successful no-op so callers can safely retry.
	DeleteFile(filePath string) error
}
