package handler

import (
	"context"
	"net/http"

	"github.com/lumenframe/albums/internal/ctxkeys"
	"github.com/lumenframe/albums/internal/service"
	"github.com/lumenframe/albums/internal/validation"
)

type AlbumHandler struct {
	albumService *service.AlbumService
}

func NewAlbumHandler(albumService *service.AlbumService) *AlbumHandler {
	return &AlbumHandler{
		albumService: albumService,
	}
}

// List serves GET /api/albums. Query: user (comma-separated), from, to,
// draft. Drafts are only ever shown to their uploader.
func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := validation.ParseAlbumQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Storage work completes even if the client disconnects mid-query.
	ctx := context.WithoutCancel(r.Context())
	albums, err := h.albumService.Albums(ctx, ctxkeys.Caller(r.Context()), req)
	if aborted(r) {
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, albums)
}

// Shared serves GET /api/albums/shared/{shareToken}.
func (h *AlbumHandler) Shared(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("shareToken")

	ctx := context.WithoutCancel(r.Context())
	detail, err := h.albumService.ByShareToken(ctx, token)
	if aborted(r) {
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}
