package model

// User is an uploader account. Albums and images reference it by Key.
type User struct {
	Key       string `db:"key"`
	Username  string `db:"username"`
	CreatedAt int64  `db:"created_at"`
}
