package fetchcache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func newCountingServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		w.Write([]byte("<doc>" + strconv.FormatInt(n, 10) + "</doc>"))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestGetCachesSecondRead(t *testing.T) {
	server, hits := newCountingServer(t)
	cache := New(t.TempDir(), time.Hour, nil)

	body, wasCached, err := cache.Get(context.Background(), server.URL+"/a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if wasCached {
		t.Fatal("first read reported as cached")
	}
	if string(body) != "<doc>1</doc>" {
		t.Fatalf("body = %q", body)
	}

	body, wasCached, err = cache.Get(context.Background(), server.URL+"/a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !wasCached {
		t.Fatal("second read not served from cache")
	}
	if string(body) != "<doc>1</doc>" {
		t.Fatalf("cached body = %q", body)
	}
	if hits.Load() != 1 {
		t.Fatalf("server hits = %d, want 1", hits.Load())
	}
}

func TestGetRefetchesExpiredEntry(t *testing.T) {
	server, hits := newCountingServer(t)
	dir := t.TempDir()

	cache := New(dir, time.Hour, nil)
	if _, _, err := cache.Get(context.Background(), server.URL); err != nil {
		t.Fatalf("Get: %v", err)
	}

	// A fresh cache over the same directory with a negative-age window
	// sees every persisted entry as expired.
	stale := New(dir, time.Nanosecond, nil)
	time.Sleep(2 * time.Nanosecond)
	body, wasCached, err := stale.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if wasCached {
		t.Fatal("expired entry served from cache")
	}
	if string(body) != "<doc>2</doc>" {
		t.Fatalf("body = %q", body)
	}
	if hits.Load() != 2 {
		t.Fatalf("server hits = %d, want 2", hits.Load())
	}
}

func TestEvictForcesRefetch(t *testing.T) {
	server, hits := newCountingServer(t)
	cache := New(t.TempDir(), time.Hour, nil)

	url := server.URL + "/page"
	if _, _, err := cache.Get(context.Background(), url); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := cache.Evict(url); err != nil {
		t.Fatalf("Evict: %v", err)
	}

	_, wasCached, err := cache.Get(context.Background(), url)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if wasCached {
		t.Fatal("evicted entry served from cache")
	}
	if hits.Load() != 2 {
		t.Fatalf("server hits = %d, want 2", hits.Load())
	}
}

func TestEvictUnknownURLIsNoop(t *testing.T) {
	cache := New(t.TempDir(), time.Hour, nil)
	if err := cache.Evict("http://example.invalid/never-fetched"); err != nil {
		t.Fatalf("Evict: %v", err)
	}
}

func TestDisabledCachePassesThrough(t *testing.T) {
	server, hits := newCountingServer(t)
	cache := New("", time.Hour, nil)

	for i := 0; i < 2; i++ {
		_, wasCached, err := cache.Get(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if wasCached {
			t.Fatal("disabled cache claimed a hit")
		}
	}
	if hits.Load() != 2 {
		t.Fatalf("server hits = %d, want 2", hits.Load())
	}
}

func TestIndexSurvivesRestart(t *testing.T) {
	server, hits := newCountingServer(t)
	dir := t.TempDir()

	first := New(dir, time.Hour, nil)
	if _, _, err := first.Get(context.Background(), server.URL); err != nil {
		t.Fatalf("Get: %v", err)
	}

	second := New(dir, time.Hour, nil)
	_, wasCached, err := second.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !wasCached {
		t.Fatal("persisted entry not found after restart")
	}
	if hits.Load() != 1 {
		t.Fatalf("server hits = %d, want 1", hits.Load())
	}
}

func TestGetErrorOnServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	cache := New(t.TempDir(), time.Hour, nil)
	if _, _, err := cache.Get(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 500 response")
	}
	if stats := cache.Stats(); stats.Entries != 0 {
		t.Fatalf("failed fetch was cached: %+v", stats)
	}
}

func TestClearAndStats(t *testing.T) {
	server, _ := newCountingServer(t)
	cache := New(t.TempDir(), time.Hour, nil)

	for _, path := range []string{"/a", "/b"} {
		if _, _, err := cache.Get(context.Background(), server.URL+path); err != nil {
			t.Fatalf("Get: %v", err)
		}
	}
	stats := cache.Stats()
	if stats.Entries != 2 || stats.TotalSize == 0 {
		t.Fatalf("stats = %+v", stats)
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if stats := cache.Stats(); stats.Entries != 0 {
		t.Fatalf("stats after clear = %+v", stats)
	}
}

func TestGetRejectsEmptyURL(t *testing.T) {
	cache := New(t.TempDir(), time.Hour, nil)
	if _, _, err := cache.Get(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty url")
	}
}
