package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lumenframe/albums/internal/ctxkeys"
	"github.com/lumenframe/albums/internal/filter"
	"github.com/lumenframe/albums/internal/model"
	"github.com/lumenframe/albums/internal/repository"
	"github.com/lumenframe/albums/internal/service"
	"github.com/lumenframe/albums/internal/storage"
	"github.com/lumenframe/albums/internal/testutil"
)

type stubStorage struct{}

func (stubStorage) PresignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://bucket.example/" + path + "?X-Amz-Signature=abc", nil
}

func serveImage(t *testing.T, d *sqlx.DB, store storage.Storage, target string, caller filter.Caller) *httptest.ResponseRecorder {
	t.Helper()

	h := NewImageHandler(service.NewImageService(repository.NewImageRepository(d, time.Second), store, "images", time.Hour))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /data/image/{imageKey}", h.Data)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(ctxkeys.WithCaller(req.Context(), caller))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestImageHandler_Data(t *testing.T) {
	d := testutil.NewDB(t)
	testutil.InsertUser(t, d, "alice")
	inside := testutil.InsertImage(t, d, model.Image{Key: "inside", Uploader: "alice"})
	testutil.InsertImage(t, d, model.Image{Key: "outside", Uploader: "alice"})
	album := testutil.InsertAlbum(t, d, model.Album{UploaderKey: "alice", CoverKey: testutil.Ptr(inside.Key)})
	testutil.AttachImage(t, d, album.Key, inside.Key)
	token := testutil.InsertShareToken(t, d, album.Key, "alice")

	tests := []struct {
		name       string
		target     string
		caller     filter.Caller
		wantStatus int
	}{
		{"share token holder", "/data/image/inside?shareToken=" + token, filter.Caller{}, http.StatusFound},
		{"share token for another album", "/data/image/outside?shareToken=" + token, filter.Caller{}, http.StatusNotFound},
		{"anonymous without token", "/data/image/inside", filter.Caller{}, http.StatusNotFound},
		{"authenticated", "/data/image/outside", filter.Caller{Key: "alice"}, http.StatusFound},
		{"authenticated unknown image", "/data/image/missing", filter.Caller{Key: "alice"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveImage(t, d, stubStorage{}, tt.target, tt.caller)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			if tt.wantStatus == http.StatusFound && rec.Header().Get("Location") == "" {
				t.Error("redirect without Location")
			}
		})
	}
}

func TestImageHandler_StorageDisabled(t *testing.T) {
	d := testutil.NewDB(t)
	testutil.InsertUser(t, d, "alice")
	testutil.InsertImage(t, d, model.Image{Key: "img", Uploader: "alice"})

	rec := serveImage(t, d, nil, "/data/image/img", filter.Caller{Key: "alice"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
