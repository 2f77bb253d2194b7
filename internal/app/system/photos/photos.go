// internal/app/system/photos/photos.go
package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
)

// maxPhotoBytes caps a single profile photo upload.
const maxPhotoBytes = 5 << 20 // 5 MiB

var ErrTooLarge = errors.New("photo exceeds maximum size")
var ErrBadContentType = errors.New("photo content type not allowed")

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadInfo describes a stored profile photo.
type UploadInfo struct {
	Path        string
	Size        int64
	ContentType string
}

/*
Service stores employee profile photos. Keys are minted per upload
(photos/YYYY/MM/uuid.ext), so re-uploading never clobbers a photo that
a stale employee document may still reference; orphans are cleaned up
by Delete when the caller knows the old path.
*/
type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Upload validates and stores one photo, returning its storage path.
func (s *Service) Upload(ctx context.Context, reader io.Reader, size int64, contentType string) (UploadInfo, error) {
	if size > maxPhotoBytes {
		return UploadInfo{}, ErrTooLarge
	}
	ext, ok := allowedTypes[strings.ToLower(contentType)]
	if !ok {
		return UploadInfo{}, ErrBadContentType
	}

	now := time.Now().UTC()
	path := fmt.Sprintf("photos/%04d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), ext)
	path = filepath.ToSlash(path)

	opts := &storage.PutOptions{
		ContentType: contentType,
	}
	if err := s.store.Put(ctx, path, io.LimitReader(reader, maxPhotoBytes), opts); err != nil {
		return UploadInfo{}, fmt.Errorf("failed to store photo: %w", err)
	}

	return UploadInfo{
		Path:        path,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// URL resolves a storage path into something a client can fetch.
// Local storage serves files directly; other backends get a signed URL.
func (s *Service) URL(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if _, ok := s.store.(*storage.Local); ok {
		return s.store.URL(path), nil
	}
	return s.store.PresignedURL(ctx, path, &storage.PresignOptions{
		Expires: time.Hour,
	})
}

// Delete removes a stored photo. Missing objects are not an error.
func (s *Service) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	return s.store.Delete(ctx, path)
}
