// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assetcache provides a cache-first asset fetching layer so the
// app shell keeps working offline.
//
// Assets are stored in a versioned SQLite database. Bumping Version
// starts a fresh database; Activate deletes the stale ones.
package assetcache

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Version names the current cache generation. Bump it to invalidate
// everything cached by earlier builds.
const Version = "arcana-cache-v2"

// maxAssetSize bounds a single cached response body.
const maxAssetSize = 16 * 1024 * 1024 // 16MB

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	url          TEXT PRIMARY KEY,
	content_type TEXT NOT NULL,
	body         BLOB NOT NULL,
	fetched_at   INTEGER NOT NULL
);`

// Asset is one cached response.
type Asset struct {
	URL         string
	ContentType string
	Body        []byte
	FetchedAt   time.Time
}

// Cache is a cache-first asset store backed by a versioned SQLite file.
type Cache struct {
	db          *sql.DB
	dir         string
	allowOrigin string
	client      *http.Client
}

// Open opens (or creates) the cache database for the current Version
// under dir. allowOrigin restricts which responses may be stored: only
// 200 responses whose final URL has this origin are cached, everything
// else is passed through uncached.
func Open(dir, allowOrigin string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, Version+".db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure cache database: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{
		db:          db,
		dir:         dir,
		allowOrigin: strings.TrimSuffix(allowOrigin, "/"),
		client:      &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Close releases the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Prefetch fetches and stores the given URLs. Individual failures are
// logged and skipped; a partial prefetch is still a working cache.
func (c *Cache) Prefetch(ctx context.Context, urls []string) {
	for _, u := range urls {
		if _, err := c.Fetch(ctx, u); err != nil {
			log.Printf("prefetch %s: %v", u, err)
		}
	}
}

// Activate deletes cache databases left behind by other versions.
func (c *Cache) Activate() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".db") {
			continue
		}
		if strings.TrimSuffix(name, ".db") == Version {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, name)); err != nil {
			log.Printf("failed to delete stale cache %s: %v", name, err)
			continue
		}
		log.Printf("deleted stale cache: %s", name)
	}
	return nil
}

// Fetch returns the asset for url, cache first. On a miss it goes to the
// network and opportunistically stores cacheable 200 responses. Network
// failures on a miss are returned to the caller; storage failures never
// are — a cache that cannot write still serves.
func (c *Cache) Fetch(ctx context.Context, rawURL string) (*Asset, error) {
	if asset, ok := c.lookup(rawURL); ok {
		return asset, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	asset := &Asset{
		URL:         rawURL,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		FetchedAt:   time.Now(),
	}

	if c.cacheable(resp) {
		c.store(asset)
	}
	return asset, nil
}

// Cached reports whether url is present in the cache.
func (c *Cache) Cached(rawURL string) bool {
	_, ok := c.lookup(rawURL)
	return ok
}

// lookup reads an asset from the database.
func (c *Cache) lookup(rawURL string) (*Asset, bool) {
	var asset Asset
	var fetched int64
	err := c.db.QueryRow(
		"SELECT url, content_type, body, fetched_at FROM assets WHERE url = ?", rawURL,
	).Scan(&asset.URL, &asset.ContentType, &asset.Body, &fetched)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("cache lookup %s: %v", rawURL, err)
		}
		return nil, false
	}
	asset.FetchedAt = time.Unix(fetched, 0)
	return &asset, true
}

// store writes an asset to the database. Failures are logged, not returned.
func (c *Cache) store(asset *Asset) {
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO assets (url, content_type, body, fetched_at) VALUES (?, ?, ?, ?)",
		asset.URL, asset.ContentType, asset.Body, asset.FetchedAt.Unix(),
	)
	if err != nil {
		log.Printf("cache store %s: %v", asset.URL, err)
	}
}

// cacheable reports whether a response may be stored: status 200 and a
// final URL on the allowed origin. Responses from other origins are the
// equivalent of opaque cross-origin responses and are never cached.
func (c *Cache) cacheable(resp *http.Response) bool {
	if resp.StatusCode != http.StatusOK {
		return false
	}
	if c.allowOrigin == "" {
		return false
	}
	final := resp.Request.URL
	return sameOrigin(final, c.allowOrigin)
}

// sameOrigin reports whether u shares scheme and host with origin.
func sameOrigin(u *url.URL, origin string) bool {
	o, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Scheme == o.Scheme && u.Host == o.Host
}
