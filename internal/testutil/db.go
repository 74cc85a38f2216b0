// Package testutil provides an in-memory database and row fixtures for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lumenframe/albums/internal/db"
	"github.com/lumenframe/albums/internal/model"
)

// TestPool uses a single connection so that pool exhaustion is easy to
// provoke and the shared in-memory database is never torn down.
var TestPool = db.PoolConfig{
	MaxOpenConns:    1,
	MaxIdleConns:    1,
	ConnMaxLifetime: time.Hour,
}

// NewDB opens a fresh, migrated in-memory SQLite database that is closed when
// the test ends.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	database, err := db.Init("sqlite", dsn, TestPool)
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(database) })

	if err := db.RunMigrations(context.Background(), database.DB, "sqlite"); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	return database
}

// InsertUser creates a user whose key is also used as its username.
func InsertUser(t *testing.T, d *sqlx.DB, key string) model.User {
	t.Helper()

	u := model.User{Key: key, Username: key, CreatedAt: time.Now().Unix()}
	_, err := d.NamedExec(`INSERT INTO users (key, username, created_at) VALUES (:key, :username, :created_at)`, u)
	if err != nil {
		t.Fatalf("insert user %q: %v", key, err)
	}
	return u
}

// InsertAlbum inserts a. Empty Key and zero CreatedAt are filled in.
func InsertAlbum(t *testing.T, d *sqlx.DB, a model.Album) model.Album {
	t.Helper()

	if a.Key == "" {
		a.Key = uuid.NewString()
	}
	if a.Title == "" {
		a.Title = "Test Title"
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().Unix()
	}

	_, err := d.NamedExec(`
		INSERT INTO albums (key, title, description, cover_key, locations, uploader_key, draft, timeframe_from, timeframe_to, created_at)
		VALUES (:key, :title, :description, :cover_key, :locations, :uploader_key, :draft, :timeframe_from, :timeframe_to, :created_at)
	`, a)
	if err != nil {
		t.Fatalf("insert album: %v", err)
	}
	return a
}

// InsertImage inserts img. Empty Key, FileName and zero timestamps are filled in.
func InsertImage(t *testing.T, d *sqlx.DB, img model.Image) model.Image {
	t.Helper()

	if img.Key == "" {
		img.Key = uuid.NewString()
	}
	if img.FileName == "" {
		img.FileName = img.Key + ".jpg"
	}
	if img.UploadedAt == 0 {
		img.UploadedAt = time.Now().Unix()
	}

	_, err := d.NamedExec(`
		INSERT INTO images (key, uploader, uploaded_at, file_name, size_bytes, taken_at, location_latitude, location_longitude,
		                    camera_brand, camera_model, exposure_time, f_number, focal_length)
		VALUES (:key, :uploader, :uploaded_at, :file_name, :size_bytes, :taken_at, :location_latitude, :location_longitude,
		        :camera_brand, :camera_model, :exposure_time, :f_number, :focal_length)
	`, img)
	if err != nil {
		t.Fatalf("insert image: %v", err)
	}
	return img
}

func AttachImage(t *testing.T, d *sqlx.DB, albumKey, imageKey string) {
	t.Helper()

	_, err := d.Exec(`INSERT INTO album_image_associations (album_key, image_key) VALUES (?, ?)`, albumKey, imageKey)
	if err != nil {
		t.Fatalf("attach image: %v", err)
	}
}

func TagUser(t *testing.T, d *sqlx.DB, albumKey, username string) {
	t.Helper()

	_, err := d.Exec(`INSERT INTO user_album_associations (username, album_key) VALUES (?, ?)`, username, albumKey)
	if err != nil {
		t.Fatalf("tag user: %v", err)
	}
}

// InsertShareToken creates a random token for albumKey and returns it.
func InsertShareToken(t *testing.T, d *sqlx.DB, albumKey, createdBy string) string {
	t.Helper()

	tok := model.ShareToken{
		ShareToken: uuid.NewString(),
		AlbumKey:   albumKey,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now().Unix(),
	}
	_, err := d.NamedExec(`
		INSERT INTO album_share_tokens (share_token, album_key, created_by, created_at)
		VALUES (:share_token, :album_key, :created_by, :created_at)
	`, tok)
	if err != nil {
		t.Fatalf("insert share token: %v", err)
	}
	return tok.ShareToken
}

func Ptr[T any](v T) *T { return &v }
