package routes

import (
	"context"
	"net/http"

	"github.com/lumenframe/albums/internal/app"
	"github.com/lumenframe/albums/internal/handler"
	"github.com/lumenframe/albums/internal/middleware"
)

// SetupRoutes builds the HTTP handler. Background work started here, such as
// rate limiter cleanup, stops when ctx is done.
func SetupRoutes(ctx context.Context, app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	albums := handler.NewAlbumHandler(app.AlbumService)
	images := handler.NewImageHandler(app.ImageService)

	mux := http.NewServeMux()

	// Probes
	mux.HandleFunc("GET /health", health.Health)

	// Albums
	mux.HandleFunc("GET /api/albums", albums.List)
	mux.HandleFunc("GET /api/albums/{$}", albums.List)

	// Share links (rate limited per client IP)
	shareLimiter := middleware.RateLimit(ctx, app.Cfg.ShareRateLimit, app.Cfg.ShareRateWindow, app.Cfg.TrustedProxies)
	mux.HandleFunc("GET /api/albums/shared/{shareToken}", shareLimiter(albums.Shared))

	// Image bytes
	mux.HandleFunc("GET /data/image/{imageKey}", images.Data)

	// 404 (GET only, so other methods on known paths still get 405)
	mux.HandleFunc("GET /{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestLogging, // Assigns the request id used by every later log line
		middleware.Recovery,
		middleware.SecurityHeaders,
		middleware.AuthMiddleware(app.AuthService),
	)

	return handler
}
