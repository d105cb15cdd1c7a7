package utils

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxUploadSize caps profile picture uploads at 5MB.
const MaxUploadSize = 5 * 1024 * 1024

var (
	ErrFileTooLarge     = errors.New("file size too large, maximum size is 5MB")
	ErrInvalidImageType = errors.New("only image files (jpeg, jpg, png, gif, webp) are allowed")
)

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateImageUpload checks size, extension and declared content type of a
// multipart profile picture.
func ValidateImageUpload(h *multipart.FileHeader) error {
	if h.Size > MaxUploadSize {
		return ErrFileTooLarge
	}
	if !allowedImageExts[strings.ToLower(filepath.Ext(h.Filename))] {
		return ErrInvalidImageType
	}
	if ct := h.Header.Get("Content-Type"); ct != "" && !allowedImageMimes[ct] {
		return ErrInvalidImageType
	}
	return nil
}
