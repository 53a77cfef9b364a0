// Package cache keeps the last successfully fetched listings in a local
// SQLite db so `items list --cached` works without a network round trip.
//
// The cache is a transient copy, never the source of truth: every online
// fetch fully replaces it.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"dormshare-cli/internal/model"

	_ "modernc.org/sqlite"
)

const dbFileName = "listings.sqlite"

type Store struct {
	Dir string
}

func (s Store) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(s.Dir, dbFileName))
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS listings (
  id TEXT PRIMARY KEY,
  json TEXT NOT NULL,
  position INTEGER NOT NULL,
  fetched_at_unixms INTEGER NOT NULL
)`)
	return err
}

// SaveListing replaces the cached listing with the given sequence,
// preserving its order. Replace-all keeps the cache trivially consistent
// with the "full replacement" fetch semantics.
func (s Store) SaveListing(ctx context.Context, items []model.Item) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
		return err
	}

	nowMs := time.Now().UTC().UnixMilli()
	for i, it := range items {
		raw, err := json.Marshal(it)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO listings(id, json, position, fetched_at_unixms) VALUES(?, ?, ?, ?)`,
			it.ID, string(raw), i, nowMs,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadListing returns the cached sequence in its original order, along with
// when it was fetched. An empty cache yields an empty slice and a zero time.
func (s Store) LoadListing(ctx context.Context) ([]model.Item, time.Time, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT json, fetched_at_unixms FROM listings ORDER BY position ASC`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	var items []model.Item
	var fetchedMs int64
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw, &fetchedMs); err != nil {
			return nil, time.Time{}, err
		}
		var it model.Item
		if err := json.Unmarshal([]byte(raw), &it); err != nil {
			return nil, time.Time{}, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}

	var fetchedAt time.Time
	if fetchedMs > 0 {
		fetchedAt = time.UnixMilli(fetchedMs).UTC()
	}
	return items, fetchedAt, nil
}
