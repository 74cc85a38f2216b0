package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumenframe/albums/internal/model"
	"github.com/lumenframe/albums/internal/testutil"
)

func TestImageRepository_ByKey(t *testing.T) {
	d := testutil.NewDB(t)
	repo := NewImageRepository(d, time.Second)
	testutil.InsertUser(t, d, "alice")

	want := testutil.InsertImage(t, d, model.Image{
		Key:               "img-1",
		Uploader:          "alice",
		SizeBytes:         2048,
		TakenAt:           testutil.Ptr[int64](1700000000),
		LocationLatitude:  testutil.Ptr(52.52),
		LocationLongitude: testutil.Ptr(13.405),
		CameraBrand:       testutil.Ptr("FUJIFILM"),
		ExposureTime:      testutil.Ptr("1/250"),
		FNumber:           testutil.Ptr(2.8),
	})

	got, err := repo.ByKey(context.Background(), "img-1")
	if err != nil {
		t.Fatalf("ByKey: %v", err)
	}
	if got.Key != want.Key || got.SizeBytes != 2048 || *got.TakenAt != 1700000000 ||
		*got.LocationLatitude != 52.52 || *got.CameraBrand != "FUJIFILM" || got.CameraModel != nil ||
		*got.ExposureTime != "1/250" || *got.FNumber != 2.8 || got.FocalLength != nil {
		t.Errorf("got %+v", got)
	}

	_, err = repo.ByKey(context.Background(), "missing")
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("err = %v, want ErrImageNotFound", err)
	}
}

func TestImageRepository_InSharedAlbum(t *testing.T) {
	d := testutil.NewDB(t)
	repo := NewImageRepository(d, time.Second)
	testutil.InsertUser(t, d, "alice")

	inside := testutil.InsertImage(t, d, model.Image{Uploader: "alice"})
	outside := testutil.InsertImage(t, d, model.Image{Uploader: "alice"})

	shared := testutil.InsertAlbum(t, d, model.Album{UploaderKey: "alice", CoverKey: testutil.Ptr(inside.Key)})
	private := testutil.InsertAlbum(t, d, model.Album{UploaderKey: "alice"})
	testutil.AttachImage(t, d, shared.Key, inside.Key)
	testutil.AttachImage(t, d, private.Key, outside.Key)
	token := testutil.InsertShareToken(t, d, shared.Key, "alice")

	tests := []struct {
		name     string
		imageKey string
		token    string
		want     bool
	}{
		{"image in shared album", inside.Key, token, true},
		{"image in another album", outside.Key, token, false},
		{"unknown token", inside.Key, "nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.InSharedAlbum(context.Background(), tt.imageKey, tt.token)
			if err != nil {
				t.Fatalf("InSharedAlbum: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
