package filestorage

import (
	"mime/multipart"
)

// FileStorage keeps uploaded CVs and logos
type FileStorage interface {
	// Store saves the upload in the policy's directory and returns its public URL
	Store(fileHeader *multipart.FileHeader, policy UploadPolicy) (string, error)

	// Delete removes a stored file by URL. Missing files are not an error.
	Delete(fileURL string) error

	// Resolve maps a stored file's URL back to its path on disk
	Resolve(fileURL string) (string, error)
}
