package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrBusy is returned when no pooled connection became free in time.
// Callers may retry.
var ErrBusy = errors.New("database busy")

// acquire takes one connection out of the pool, waiting at most timeout.
// A zero timeout waits until ctx is done. The caller must Close the conn.
func acquire(ctx context.Context, db *sqlx.DB, timeout time.Duration) (*sqlx.Conn, error) {
	acquireCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := db.Connx(acquireCtx)
	if err != nil {
		// Only our own deadline means "busy"; a cancelled caller is not.
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, ErrBusy
		}
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return conn, nil
}

// snapshotOptions returns transaction options that give a consistent view
// across several reads. SQLite transactions are already serializable and
// modernc rejects non-default isolation levels.
func snapshotOptions(driver string) *sql.TxOptions {
	if sqlx.BindType(driver) == sqlx.DOLLAR {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return nil
}
