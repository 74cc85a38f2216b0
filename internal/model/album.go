package model

// Album is a row of the albums table as returned by list queries.
type Album struct {
	Key           string  `db:"key"`
	Title         string  `db:"title"`
	Description   *string `db:"description"`
	CoverKey      *string `db:"cover_key"`
	Locations     *string `db:"locations"` // Free text, e.g. "home,outside"
	UploaderKey   string  `db:"uploader_key"`
	Draft         bool    `db:"draft"`
	TimeframeFrom *int64  `db:"timeframe_from"` // nil = unbounded
	TimeframeTo   *int64  `db:"timeframe_to"`   // nil = unbounded
	CreatedAt     int64   `db:"created_at"`
}

// SharedAlbumRow is the album row reached through a share token.
// CoverKey is not nullable here: a shared album must have a cover.
type SharedAlbumRow struct {
	Key           string  `db:"key"`
	Title         string  `db:"title"`
	Description   *string `db:"description"`
	CoverKey      string  `db:"cover_key"`
	Author        string  `db:"author"`
	Draft         bool    `db:"draft"`
	TimeframeFrom *int64  `db:"timeframe_from"`
	TimeframeTo   *int64  `db:"timeframe_to"`
	CreatedAt     int64   `db:"created_at"`
}

// SharedAlbum groups the three reads of a share-token lookup.
// All fields come from the same transaction.
type SharedAlbum struct {
	Album       SharedAlbumRow
	Images      []*Image
	TaggedUsers []string
}
