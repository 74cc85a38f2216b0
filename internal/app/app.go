package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lumenframe/albums/internal/config"
	"github.com/lumenframe/albums/internal/db"
	"github.com/lumenframe/albums/internal/repository"
	"github.com/lumenframe/albums/internal/service"
	"github.com/lumenframe/albums/internal/storage"
)

type App struct {
	Cfg          *config.Config
	DB           *sqlx.DB
	AuthService  *service.AuthService
	AlbumService *service.AlbumService
	ImageService *service.ImageService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	if cfg.MigrateOnStart {
		err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Storage (optional)
	var imageStore storage.Storage
	if cfg.StorageEnabled() {
		s3Storage, err := storage.New(ctx, cfg)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		imageStore = s3Storage
	} else {
		slog.Warn("S3_BUCKET not set, image data route disabled")
	}

	return Wire(cfg, database, imageStore), nil
}

// Wire builds repositories and services on an open database. A nil store
// disables image URLs.
func Wire(cfg *config.Config, database *sqlx.DB, imageStore storage.Storage) *App {
	// Repositories
	albumRepository := repository.NewAlbumRepository(database, cfg.DBAcquireTimeout)
	imageRepository := repository.NewImageRepository(database, cfg.DBAcquireTimeout)

	// Services
	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry)
	albumService := service.NewAlbumService(albumRepository)
	imageService := service.NewImageService(imageRepository, imageStore, cfg.ImagePrefix, cfg.S3PresignExpiry)

	return &App{
		Cfg:          cfg,
		DB:           database,
		AuthService:  authService,
		AlbumService: albumService,
		ImageService: imageService,
	}
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
