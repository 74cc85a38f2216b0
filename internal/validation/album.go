package validation

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/lumenframe/albums/internal/filter"
)

var (
	ErrInvalidFilter = errors.New("invalid filter")
)

// ParseAlbumQuery decodes the query string of an album list request.
//
//	user   comma-separated uploader keys; absent means any uploader
//	from   unsigned timestamp, lower bound of the timeframe window
//	to     unsigned timestamp, upper bound of the timeframe window
//	draft  include the caller's own drafts (default false)
func ParseAlbumQuery(q url.Values) (filter.Request, error) {
	var req filter.Request

	if q.Has("user") {
		users, err := parseUsers(q.Get("user"))
		if err != nil {
			return filter.Request{}, err
		}
		req.Users = users
	}

	from, err := parseBound(q, "from")
	if err != nil {
		return filter.Request{}, err
	}
	req.From = from

	to, err := parseBound(q, "to")
	if err != nil {
		return filter.Request{}, err
	}
	req.To = to

	if v := q.Get("draft"); v != "" {
		draft, err := strconv.ParseBool(v)
		if err != nil {
			return filter.Request{}, fmt.Errorf("%w: draft must be true or false", ErrInvalidFilter)
		}
		req.IncludeDrafts = draft
	}

	return req, nil
}

// parseUsers splits raw on commas. Entries are uploader keys matched exactly,
// so surrounding whitespace is kept.
func parseUsers(raw string) ([]string, error) {
	users := strings.Split(raw, ",")
	for _, u := range users {
		if u == "" {
			return nil, fmt.Errorf("%w: user list contains an empty entry", ErrInvalidFilter)
		}
	}
	return users, nil
}

// parseBound accepts unsigned integers that fit the BIGINT columns.
func parseBound(q url.Values, key string) (*int64, error) {
	if !q.Has(key) {
		return nil, nil
	}

	n, err := strconv.ParseUint(q.Get(key), 10, 64)
	if err != nil || n > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %s must be an unsigned integer", ErrInvalidFilter, key)
	}
	v := int64(n)
	return &v, nil
}
