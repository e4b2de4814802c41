// Package storage is a small sqlite-backed cache for fetched data: the
// resolved component list and harvested GitHub issue stats. Entries carry a
// TTL so repeated report runs inside an operational window skip the
// expensive resolution and harvesting steps.
package storage

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS fetch_cache (
  key        TEXT PRIMARY KEY,
  data       BLOB NOT NULL,
  expires_at INTEGER NOT NULL
);
	`); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Get returns the cached data for key, or (nil, false) on a miss. Expired
// entries are misses and are removed as they are encountered.
func (d *DB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var expiresAt int64
	err := d.sql.QueryRowContext(ctx,
		"SELECT data, expires_at FROM fetch_cache WHERE key = ?", key).
		Scan(&data, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if expiresAt > 0 && time.Now().Unix() > expiresAt {
		_, _ = d.sql.ExecContext(ctx, "DELETE FROM fetch_cache WHERE key = ?", key)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores data for key. A ttl of 0 never expires.
func (d *DB) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).Unix()
	}
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO fetch_cache(key, data, expires_at) VALUES(?,?,?) ON CONFLICT(key) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at",
		key, data, expiresAt)
	return err
}

// Delete removes a single cache entry.
func (d *DB) Delete(ctx context.Context, key string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM fetch_cache WHERE key = ?", key)
	return err
}

// Purge drops every cache entry and returns how many were removed.
func (d *DB) Purge(ctx context.Context) (int64, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM fetch_cache")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
