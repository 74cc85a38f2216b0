package model

type ShareToken struct {
	ShareToken string `db:"share_token"`
	AlbumKey   string `db:"album_key"`
	CreatedBy  string `db:"created_by"`
	CreatedAt  int64  `db:"created_at"`
}
