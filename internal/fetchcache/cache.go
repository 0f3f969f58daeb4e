package fetchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"authorlink/internal/logging"
)

const (
	indexFileName = "index.json"
	bodySuffix    = ".xml"
	httpAccept    = "text/xml"
)

// entry records when a URL was last fetched. The body lives in a
// sibling file named by the URL digest.
type entry struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	FetchedAt time.Time `json:"fetched_at"`
	Size      int64     `json:"size"`
}

// Stats summarizes the cache contents for display.
type Stats struct {
	Entries   int
	TotalSize int64
	Oldest    time.Time
	Newest    time.Time
}

// Cache fetches URLs through a local document store.
type Cache struct {
	dir    string
	maxAge time.Duration
	client *http.Client
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]entry // keyed by URL
	loaded  bool
}

// Option customizes cache construction.
type Option func(*Cache)

// WithHTTPClient replaces the HTTP client used for fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Cache) {
		if client != nil {
			c.client = client
		}
	}
}

// New creates a cache rooted at dir. Entries older than maxAge are
// treated as absent. An empty dir disables caching entirely; a nil
// logger is replaced with a no-op logger.
func New(dir string, maxAge time.Duration, logger *slog.Logger, opts ...Option) *Cache {
	c := &Cache{
		dir:     dir,
		maxAge:  maxAge,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logging.NewComponentLogger(logger, "fetchcache"),
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the body for url, from the cache when a fresh entry
// exists, otherwise from the network. The second return value reports
// whether the body came from the cache.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, false, errors.New("url cannot be empty")
	}
	if c.dir == "" {
		body, err := c.fetch(ctx, url)
		return body, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded()

	if ent, ok := c.entries[url]; ok {
		if c.maxAge <= 0 || time.Since(ent.FetchedAt) <= c.maxAge {
			body, err := os.ReadFile(c.bodyPath(ent.Key))
			if err == nil {
				return body, true, nil
			}
			// Index entry with no body file, fall through to refetch.
			c.logger.Warn("cached body missing",
				logging.String("url", url),
				logging.Error(err))
		}
		delete(c.entries, url)
	}

	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, false, err
	}
	if err := c.store(url, body); err != nil {
		// A broken cache should not break resolution.
		c.logger.Warn("failed to cache fetched document",
			logging.String("url", url),
			logging.Error(err))
	}
	return body, false, nil
}

// Evict removes the entry for url, if any. Used when a cached search
// page turns out to be stale.
func (c *Cache) Evict(url string) error {
	url = strings.TrimSpace(url)
	if url == "" || c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded()

	ent, ok := c.entries[url]
	if !ok {
		return nil
	}
	delete(c.entries, url)
	if err := os.Remove(c.bodyPath(ent.Key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cached body: %w", err)
	}
	if err := c.saveIndex(); err != nil {
		return fmt.Errorf("persist cache index: %w", err)
	}
	c.logger.Debug("evicted cached document", logging.String("url", url))
	return nil
}

// Clear removes every cached document.
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded()

	for _, ent := range c.entries {
		if err := os.Remove(c.bodyPath(ent.Key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove cached body: %w", err)
		}
	}
	c.entries = make(map[string]entry)
	if err := c.saveIndex(); err != nil {
		return fmt.Errorf("persist cache index: %w", err)
	}
	c.logger.Debug("cleared fetch cache")
	return nil
}

// Stats reports how many documents are cached and how old they are.
func (c *Cache) Stats() Stats {
	if c.dir == "" {
		return Stats{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded()

	var stats Stats
	for _, ent := range c.entries {
		stats.Entries++
		stats.TotalSize += ent.Size
		if stats.Oldest.IsZero() || ent.FetchedAt.Before(stats.Oldest) {
			stats.Oldest = ent.FetchedAt
		}
		if ent.FetchedAt.After(stats.Newest) {
			stats.Newest = ent.FetchedAt
		}
	}
	return stats
}

func (c *Cache) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", httpAccept)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("fetched document",
		logging.String("url", url),
		logging.Int("bytes", len(body)))

	return body, nil
}

// store must be called with the lock held.
func (c *Cache) store(url string, body []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	key := urlKey(url)
	bodyPath := c.bodyPath(key)
	tmpPath := bodyPath + ".tmp"
	if err := os.WriteFile(tmpPath, body, 0o644); err != nil {
		return fmt.Errorf("write temp body: %w", err)
	}
	if err := os.Rename(tmpPath, bodyPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp body: %w", err)
	}

	c.entries[url] = entry{
		URL:       url,
		Key:       key,
		FetchedAt: time.Now(),
		Size:      int64(len(body)),
	}
	if err := c.saveIndex(); err != nil {
		return fmt.Errorf("persist cache index: %w", err)
	}
	return nil
}

// ensureLoaded reads the index once, lazily. Must be called with the
// lock held.
func (c *Cache) ensureLoaded() {
	if c.loaded {
		return
	}
	c.loaded = true

	data, err := os.ReadFile(filepath.Join(c.dir, indexFileName))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("failed to load cache index",
				logging.Error(err),
				logging.String("path", filepath.Join(c.dir, indexFileName)))
		}
		return
	}
	if len(data) == 0 {
		return
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("cache index unreadable, starting empty", logging.Error(err))
		return
	}
	for _, ent := range entries {
		if strings.TrimSpace(ent.URL) != "" && ent.Key != "" {
			c.entries[ent.URL] = ent
		}
	}
	c.logger.Debug("loaded cache index", logging.Int("entry_count", len(c.entries)))
}

// saveIndex writes the index atomically. Must be called with the lock
// held.
func (c *Cache) saveIndex() error {
	entries := make([]entry, 0, len(c.entries))
	for _, ent := range c.entries {
		entries = append(entries, ent)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].URL < entries[j].URL
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache index: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	indexPath := filepath.Join(c.dir, indexFileName)
	tmpPath := indexPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := os.Rename(tmpPath, indexPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp index: %w", err)
	}
	return nil
}

func (c *Cache) bodyPath(key string) string {
	return filepath.Join(c.dir, key+bodySuffix)
}

func urlKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
