package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lumenframe/albums/internal/app"
	"github.com/lumenframe/albums/internal/config"
	"github.com/lumenframe/albums/internal/model"
	"github.com/lumenframe/albums/internal/readmodel"
	"github.com/lumenframe/albums/internal/testutil"
)

func newServer(t *testing.T) (*httptest.Server, *app.App, string) {
	t.Helper()

	d := testutil.NewDB(t)
	testutil.InsertUser(t, d, "alice")
	testutil.InsertUser(t, d, "bob")
	cover := testutil.InsertImage(t, d, model.Image{Uploader: "alice"})
	shared := testutil.InsertAlbum(t, d, model.Album{Key: "pub", UploaderKey: "alice", CoverKey: testutil.Ptr(cover.Key)})
	testutil.InsertAlbum(t, d, model.Album{Key: "draft", UploaderKey: "alice", Draft: true})
	testutil.AttachImage(t, d, shared.Key, cover.Key)
	token := testutil.InsertShareToken(t, d, shared.Key, "alice")

	cfg := &config.Config{
		AppEnv:           "development",
		DBDriver:         "sqlite",
		DBAcquireTimeout: time.Second,
		JWTSecret:        "test-secret",
		JWTExpiry:        time.Hour,
		ShareRateLimit:   3,
		ShareRateWindow:  time.Minute,
		ImagePrefix:      "images",
	}
	a := app.Wire(cfg, d, nil)

	srv := httptest.NewServer(SetupRoutes(t.Context(), a))
	t.Cleanup(srv.Close)
	return srv, a, token
}

func do(t *testing.T, srv *httptest.Server, path, bearer string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func listKeys(t *testing.T, resp *http.Response) []string {
	t.Helper()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var albums []readmodel.Summary
	if err := json.NewDecoder(resp.Body).Decode(&albums); err != nil {
		t.Fatalf("decode: %v", err)
	}
	out := make([]string, 0, len(albums))
	for _, a := range albums {
		out = append(out, a.Key)
	}
	return out
}

func TestRoutes_ListAlbums(t *testing.T) {
	srv, a, _ := newServer(t)

	alice, err := a.AuthService.GenerateJWT("alice")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	bob, err := a.AuthService.GenerateJWT("bob")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	tests := []struct {
		name   string
		path   string
		bearer string
		want   int
	}{
		{"anonymous", "/api/albums?draft=true", "", 1},
		{"trailing slash", "/api/albums/?draft=true", "", 1},
		{"owner sees draft", "/api/albums?draft=true", alice, 2},
		{"other user does not", "/api/albums?draft=true", bob, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listKeys(t, do(t, srv, tt.path, tt.bearer)); len(got) != tt.want {
				t.Errorf("got %v, want %d albums", got, tt.want)
			}
		})
	}
}

func TestRoutes_InvalidTokenIsRejected(t *testing.T) {
	srv, _, _ := newServer(t)

	resp := do(t, srv, "/api/albums", "forged")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "invalid token" {
		t.Errorf("body = %v", body)
	}
}

func TestRoutes_SharedAlbumIsRateLimited(t *testing.T) {
	srv, _, token := newServer(t)

	for i := range 3 {
		resp := do(t, srv, "/api/albums/shared/"+token, "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, resp.StatusCode)
		}
	}
	if resp := do(t, srv, "/api/albums/shared/"+token, ""); resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", resp.StatusCode)
	}
}

func TestRoutes_Ambient(t *testing.T) {
	srv, _, _ := newServer(t)

	resp := do(t, srv, "/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}

	resp = do(t, srv, "/api/albums", "")
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
	if resp.Header.Get("Referrer-Policy") != "no-referrer" {
		t.Errorf("Referrer-Policy = %q", resp.Header.Get("Referrer-Policy"))
	}

	if resp := do(t, srv, "/nope", ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", resp.StatusCode)
	}

	// No bucket configured.
	if resp := do(t, srv, "/data/image/anything", ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("image status = %d, want 404", resp.StatusCode)
	}
}

func TestRoutes_UnsupportedMethodIs405(t *testing.T) {
	srv, _, _ := newServer(t)

	resp, err := http.Post(srv.URL+"/api/albums", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
	if allow := resp.Header.Get("Allow"); !strings.Contains(allow, "GET") {
		t.Errorf("Allow = %q, want GET listed", allow)
	}
}

func TestRoutes_SharedRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	srv, _, token := newServer(t)

	var last int
	for i := range 4 {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/albums/shared/"+token, nil)
		if err != nil {
			t.Fatalf("NewRequest: %v", err)
		}
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("1.2.3.%d", i))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		_ = resp.Body.Close()
		last = resp.StatusCode
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("fourth request status = %d, want 429", last)
	}
}
