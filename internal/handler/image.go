package handler

import (
	"context"
	"net/http"

	"github.com/lumenframe/albums/internal/ctxkeys"
	"github.com/lumenframe/albums/internal/service"
)

type ImageHandler struct {
	imageService *service.ImageService
}

func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

// Data redirects to a short-lived storage URL for the image bytes.
func (h *ImageHandler) Data(w http.ResponseWriter, r *http.Request) {
	imageKey := r.PathValue("imageKey")
	shareToken := r.URL.Query().Get("shareToken")

	ctx := context.WithoutCancel(r.Context())
	url, err := h.imageService.URL(ctx, ctxkeys.Caller(r.Context()), imageKey, shareToken)
	if aborted(r) {
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}
