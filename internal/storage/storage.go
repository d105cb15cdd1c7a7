package storage

import (
	"bytes"
	"context"
	"image"

	"github.com/disintegration/imaging"
)

// PictureStore persists profile pictures. Save returns the reference stored
// on the user document (a /uploads path for the local backend, a public URL
// for S3); Delete removes a previously saved picture and its thumbnail.
type PictureStore interface {
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}

// generateThumbnail produces a 256px-wide JPEG; failures are tolerated by
// callers since the thumbnail is a convenience, not part of the contract.
func generateThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, 256, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func thumbName(filename string) string {
	return filename + "_thumb.jpg"
}
