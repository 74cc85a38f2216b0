package service

import (
	"context"
	"fmt"

	"github.com/lumenframe/albums/internal/filter"
	"github.com/lumenframe/albums/internal/readmodel"
	"github.com/lumenframe/albums/internal/repository"
)

type AlbumService struct {
	repo repository.AlbumRepository
}

func NewAlbumService(repo repository.AlbumRepository) *AlbumService {
	return &AlbumService{repo: repo}
}

// Albums lists the albums caller may see under req.
func (s *AlbumService) Albums(ctx context.Context, caller filter.Caller, req filter.Request) ([]readmodel.Summary, error) {
	albums, err := s.repo.Albums(ctx, filter.Compile(req, caller))
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}

	return readmodel.NewSummaries(albums), nil
}

// ByShareToken returns the full album a share token grants access to.
// Draft and owner checks do not apply: holding the token is enough.
func (s *AlbumService) ByShareToken(ctx context.Context, token string) (*readmodel.Detail, error) {
	shared, err := s.repo.ByShareToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load shared album: %w", err)
	}

	detail := readmodel.NewDetail(shared)
	return &detail, nil
}
