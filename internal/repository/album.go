package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lumenframe/albums/internal/filter"
	"github.com/lumenframe/albums/internal/model"
)

var (
	ErrAlbumNotFound = errors.New("album not found")
)

type AlbumRepository interface {
	Albums(ctx context.Context, p filter.Predicate) ([]*model.Album, error)
	ByShareToken(ctx context.Context, token string) (*model.SharedAlbum, error)
}

type albumRepository struct {
	db             *sqlx.DB
	acquireTimeout time.Duration
}

func NewAlbumRepository(db *sqlx.DB, acquireTimeout time.Duration) AlbumRepository {
	return &albumRepository{db: db, acquireTimeout: acquireTimeout}
}

const albumColumns = `key, title, description, cover_key, locations, uploader_key, draft, timeframe_from, timeframe_to, created_at`

// Most recent or ongoing timeframes first. Unbounded ends sort last on every
// driver; key breaks remaining ties.
const albumOrder = `ORDER BY timeframe_from DESC NULLS LAST, timeframe_to DESC NULLS LAST, key ASC`

// Albums runs the compiled predicate against the albums table.
func (r *albumRepository) Albums(ctx context.Context, p filter.Predicate) ([]*model.Album, error) {
	conn, err := acquire(ctx, r.db, r.acquireTimeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	query := `SELECT ` + albumColumns + ` FROM albums`
	if p.Where != "" {
		query += ` WHERE ` + p.Render(sqlx.BindType(r.db.DriverName()))
	}
	query += ` ` + albumOrder

	albums := []*model.Album{}
	err = conn.SelectContext(ctx, &albums, query, p.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}

	return albums, nil
}

// ByShareToken resolves token to its album and loads the album, its images and
// its tagged users in one transaction on one connection.
func (r *albumRepository) ByShareToken(ctx context.Context, token string) (*model.SharedAlbum, error) {
	conn, err := acquire(ctx, r.db, r.acquireTimeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	tx, err := conn.BeginTxx(ctx, snapshotOptions(r.db.DriverName()))
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Read-only: nothing to commit.
	defer func() { _ = tx.Rollback() }()

	shared := &model.SharedAlbum{}

	query := `
		SELECT a.key, a.title, a.description, a.cover_key, a.uploader_key AS author,
		       a.draft, a.timeframe_from, a.timeframe_to, a.created_at
		FROM albums a
		JOIN album_share_tokens t ON t.album_key = a.key
		WHERE t.share_token = ?
	`
	err = tx.GetContext(ctx, &shared.Album, tx.Rebind(query), token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAlbumNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shared album: %w", err)
	}

	query = `
		SELECT i.key, i.uploader, i.uploaded_at, i.file_name, i.size_bytes, i.taken_at,
		       i.location_latitude, i.location_longitude, i.camera_brand, i.camera_model,
		       i.exposure_time, i.f_number, i.focal_length
		FROM images i
		INNER JOIN album_image_associations aia ON aia.image_key = i.key
		WHERE aia.album_key = ?
		ORDER BY i.key
	`
	shared.Images = []*model.Image{}
	err = tx.SelectContext(ctx, &shared.Images, tx.Rebind(query), shared.Album.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to query album images: %w", err)
	}

	query = `SELECT username FROM user_album_associations WHERE album_key = ? ORDER BY username`
	shared.TaggedUsers = []string{}
	err = tx.SelectContext(ctx, &shared.TaggedUsers, tx.Rebind(query), shared.Album.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to query tagged users: %w", err)
	}

	return shared, nil
}
