package services

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/webfolio/apiserver/internal/storage"
)

// MediaService stores uploaded avatar images in object storage and
// records the resulting URL on the about-me row.
type MediaService struct {
	storage   *storage.Storage
	aboutRepo AboutRepository
}

func NewMediaService(store *storage.Storage, aboutRepo AboutRepository) *MediaService {
	return &MediaService{storage: store, aboutRepo: aboutRepo}
}

// UploadAvatar stores the image under a fresh object key and points the
// about-me row's profile_pic_url at it. Returns the public URL.
func (s *MediaService) UploadAvatar(ctx context.Context, aboutID int, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("avatars/%s%s", uuid.NewString(), path.Ext(filename))

	if err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", err
	}

	url := s.storage.PublicURL(key)
	if err := s.aboutRepo.SetProfilePicURL(ctx, aboutID, url); err != nil {
		// Roll the orphaned object back so the bucket does not accumulate
		// unreferenced uploads.
		_ = s.storage.Delete(ctx, key)
		return "", err
	}
	return url, nil
}
