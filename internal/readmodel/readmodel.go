// Package readmodel shapes database rows into the JSON documents served by
// the album API. Field names are camelCase; optional columns stay optional
// and serialize as null.
package readmodel

import "github.com/lumenframe/albums/internal/model"

type Timeframe struct {
	From *int64 `json:"from"`
	To   *int64 `json:"to"`
}

// Summary is one entry of an album list.
type Summary struct {
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CoverKey    *string   `json:"coverKey"`
	Locations   *string   `json:"locations"`
	UploaderKey string    `json:"uploaderKey"`
	Draft       bool      `json:"draft"`
	Timeframe   Timeframe `json:"timeframe"`
	CreatedAt   int64     `json:"createdAt"`
}

// Detail is a shared album with its images and tagged users.
type Detail struct {
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CoverKey    string    `json:"coverKey"`
	Author      string    `json:"author"`
	Draft       bool      `json:"draft"`
	Timeframe   Timeframe `json:"timeframe"`
	CreatedAt   int64     `json:"createdAt"`
	Images      []Image   `json:"images"`
	TaggedUsers []string  `json:"taggedUsers"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Camera struct {
	Brand *string `json:"brand"`
	Model *string `json:"model"`
}

type Image struct {
	Key          string    `json:"key"`
	Uploader     string    `json:"uploader"`
	UploadedAt   int64     `json:"uploadedAt"`
	FileName     string    `json:"fileName"`
	SizeBytes    int64     `json:"sizeBytes"`
	TakenAt      *int64    `json:"takenAt"`
	Location     *Location `json:"location"`
	Camera       *Camera   `json:"camera"`
	ExposureTime *string   `json:"exposureTime"`
	FNumber      *float64  `json:"fNumber"`
	FocalLength  *float64  `json:"focalLength"`
}

func NewSummary(a *model.Album) Summary {
	return Summary{
		Key:         a.Key,
		Title:       a.Title,
		Description: a.Description,
		CoverKey:    a.CoverKey,
		Locations:   a.Locations,
		UploaderKey: a.UploaderKey,
		Draft:       a.Draft,
		Timeframe:   Timeframe{From: a.TimeframeFrom, To: a.TimeframeTo},
		CreatedAt:   a.CreatedAt,
	}
}

// NewSummaries keeps the input order. The result is never nil.
func NewSummaries(albums []*model.Album) []Summary {
	out := make([]Summary, 0, len(albums))
	for _, a := range albums {
		out = append(out, NewSummary(a))
	}
	return out
}

func NewImage(i *model.Image) Image {
	img := Image{
		Key:          i.Key,
		Uploader:     i.Uploader,
		UploadedAt:   i.UploadedAt,
		FileName:     i.FileName,
		SizeBytes:    i.SizeBytes,
		TakenAt:      i.TakenAt,
		ExposureTime: i.ExposureTime,
		FNumber:      i.FNumber,
		FocalLength:  i.FocalLength,
	}
	if i.HasLocation() {
		img.Location = &Location{Latitude: *i.LocationLatitude, Longitude: *i.LocationLongitude}
	}
	if i.HasCamera() {
		img.Camera = &Camera{Brand: i.CameraBrand, Model: i.CameraModel}
	}
	return img
}

func NewDetail(s *model.SharedAlbum) Detail {
	images := make([]Image, 0, len(s.Images))
	for _, i := range s.Images {
		images = append(images, NewImage(i))
	}

	tagged := s.TaggedUsers
	if tagged == nil {
		tagged = []string{}
	}

	a := s.Album
	return Detail{
		Key:         a.Key,
		Title:       a.Title,
		Description: a.Description,
		CoverKey:    a.CoverKey,
		Author:      a.Author,
		Draft:       a.Draft,
		Timeframe:   Timeframe{From: a.TimeframeFrom, To: a.TimeframeTo},
		CreatedAt:   a.CreatedAt,
		Images:      images,
		TaggedUsers: tagged,
	}
}
