package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lumenframe/albums/internal/model"
)

var (
	ErrImageNotFound = errors.New("image not found")
)

type ImageRepository interface {
	ByKey(ctx context.Context, key string) (*model.Image, error)
	InSharedAlbum(ctx context.Context, imageKey, shareToken string) (bool, error)
}

type imageRepository struct {
	db             *sqlx.DB
	acquireTimeout time.Duration
}

func NewImageRepository(db *sqlx.DB, acquireTimeout time.Duration) ImageRepository {
	return &imageRepository{db: db, acquireTimeout: acquireTimeout}
}

func (r *imageRepository) ByKey(ctx context.Context, key string) (*model.Image, error) {
	conn, err := acquire(ctx, r.db, r.acquireTimeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	image := &model.Image{}
	query := `
		SELECT key, uploader, uploaded_at, file_name, size_bytes, taken_at,
		       location_latitude, location_longitude, camera_brand, camera_model,
		       exposure_time, f_number, focal_length
		FROM images
		WHERE key = ?
	`

	err = conn.GetContext(ctx, image, conn.Rebind(query), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query image: %w", err)
	}

	return image, nil
}

// InSharedAlbum reports whether imageKey belongs to the album shareToken
// grants access to.
func (r *imageRepository) InSharedAlbum(ctx context.Context, imageKey, shareToken string) (bool, error) {
	conn, err := acquire(ctx, r.db, r.acquireTimeout)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	var count int
	query := `
		SELECT COUNT(*)
		FROM album_share_tokens t
		JOIN album_image_associations aia ON aia.album_key = t.album_key
		WHERE t.share_token = ? AND aia.image_key = ?
	`
	err = conn.GetContext(ctx, &count, conn.Rebind(query), shareToken, imageKey)
	if err != nil {
		return false, fmt.Errorf("failed to check shared image: %w", err)
	}

	return count > 0, nil
}
