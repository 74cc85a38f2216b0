package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/lumenframe/albums/internal/filter"
	"github.com/lumenframe/albums/internal/repository"
	"github.com/lumenframe/albums/internal/storage"
)

var (
	ErrStorageDisabled = errors.New("image storage not configured")
)

type ImageService struct {
	repo    repository.ImageRepository
	storage storage.Storage
	prefix  string
	expiry  time.Duration
}

// NewImageService returns a service that signs image URLs. A nil store
// disables the service; every lookup then fails with ErrStorageDisabled.
func NewImageService(repo repository.ImageRepository, store storage.Storage, prefix string, expiry time.Duration) *ImageService {
	return &ImageService{
		repo:    repo,
		storage: store,
		prefix:  prefix,
		expiry:  expiry,
	}
}

// URL returns a short-lived URL for the bytes of imageKey.
//
// Authenticated callers may fetch any existing image. Anonymous callers need
// a share token for an album that contains the image. Both refusals look the
// same as a missing image.
func (s *ImageService) URL(ctx context.Context, caller filter.Caller, imageKey, shareToken string) (string, error) {
	if s.storage == nil {
		return "", ErrStorageDisabled
	}

	if caller.IsAnonymous() {
		if shareToken == "" {
			return "", repository.ErrImageNotFound
		}
		ok, err := s.repo.InSharedAlbum(ctx, imageKey, shareToken)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", repository.ErrImageNotFound
		}
	} else {
		_, err := s.repo.ByKey(ctx, imageKey)
		if err != nil {
			return "", err
		}
	}

	url, err := s.storage.PresignedURL(ctx, s.objectPath(imageKey), s.expiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign image url: %w", err)
	}
	return url, nil
}

func (s *ImageService) objectPath(imageKey string) string {
	return path.Join(s.prefix, imageKey)
}
