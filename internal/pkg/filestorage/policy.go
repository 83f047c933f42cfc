package filestorage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/futureintern/platform/internal/pkg/apperrors"
)

// UploadPolicy restricts which files an upload endpoint accepts
type UploadPolicy struct {
	Dir        string
	Extensions []string
	MaxBytes   int64
}

var (
	// CVPolicy accepts resumes
	CVPolicy = UploadPolicy{Dir: "cvs", Extensions: []string{".pdf", ".doc", ".docx"}, MaxBytes: 5 << 20}

	// LogoPolicy accepts company logos
	LogoPolicy = UploadPolicy{Dir: "logos", Extensions: []string{".png", ".jpg", ".jpeg", ".svg", ".webp"}, MaxBytes: 2 << 20}
)

// Validate checks the header against the policy
func (p UploadPolicy) Validate(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil || fileHeader.Filename == "" {
		return apperrors.ErrNoFile
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := false
	for _, e := range p.Extensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperrors.NewCustomError(apperrors.ErrInvalidFileType,
			fmt.Sprintf("file type not allowed, accepted: %s", strings.Join(p.Extensions, ", ")))
	}

	if fileHeader.Size > p.MaxBytes {
		return apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the %dMB limit", p.MaxBytes>>20))
	}
	return nil
}
