package model

type Image struct {
	Key               string   `db:"key"`
	Uploader          string   `db:"uploader"`
	UploadedAt        int64    `db:"uploaded_at"`
	FileName          string   `db:"file_name"`
	SizeBytes         int64    `db:"size_bytes"`
	TakenAt           *int64   `db:"taken_at"`
	LocationLatitude  *float64 `db:"location_latitude"`
	LocationLongitude *float64 `db:"location_longitude"`
	CameraBrand       *string  `db:"camera_brand"`
	CameraModel       *string  `db:"camera_model"`
	ExposureTime      *string  `db:"exposure_time"` // As reported by EXIF, e.g. "1/250"
	FNumber           *float64 `db:"f_number"`
	FocalLength       *float64 `db:"focal_length"`
}

func (i *Image) HasLocation() bool {
	return i.LocationLatitude != nil && i.LocationLongitude != nil
}

func (i *Image) HasCamera() bool {
	return i.CameraBrand != nil || i.CameraModel != nil
}
