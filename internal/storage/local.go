package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

const localURLPrefix = "/uploads/profile-pictures/"

// LocalStore keeps pictures on disk under dir, served as static files from
// /uploads/profile-pictures.
type LocalStore struct {
	dir    string
	logger *zap.SugaredLogger
}

func NewLocalStore(dir string, logger *zap.SugaredLogger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, logger: logger}, nil
}

func (s *LocalStore) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write picture: %w", err)
	}

	if thumb, err := generateThumbnail(data); err == nil {
		if werr := os.WriteFile(filepath.Join(s.dir, thumbName(filename)), thumb, 0o644); werr != nil {
			s.logger.Warnf("failed to write thumbnail for %s: %v", filename, werr)
		}
	}

	return localURLPrefix + filename, nil
}

// Delete removes the picture and its thumbnail. A ref that no longer maps
// to a file is not an error.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	base := path.Base(ref)
	if base == "." || base == "/" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, base)); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, thumbName(base))); err != nil && !os.IsNotExist(err) {
		s.logger.Warnf("failed to remove thumbnail for %s: %v", base, err)
	}
	return nil
}
