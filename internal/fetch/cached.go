package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched page is reused.
const DefaultCacheTTL = 15 * time.Minute

// CachedFetcher wraps URL fetching with an in-memory cache of successful responses.
// It is safe for concurrent use.
type CachedFetcher struct {
	options *Options
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	result  *Result
	fetched time.Time
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool // Whether this result came from cache
}

// NewCachedFetcher creates a new cached fetcher. A zero ttl uses DefaultCacheTTL.
func NewCachedFetcher(opts *Options, ttl time.Duration) *CachedFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{
		options: opts,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Fetch retrieves a URL, reusing a cached response younger than the TTL.
// Failed fetches are not cached.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	f.mu.Lock()
	entry, ok := f.entries[urlStr]
	if ok && f.now().Sub(entry.fetched) < f.ttl {
		f.mu.Unlock()
		return &CachedResult{Result: entry.result, FromCache: true}, nil
	}
	f.mu.Unlock()

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.entries[urlStr] = cacheEntry{result: result, fetched: f.now()}
	f.evictExpiredLocked()
	f.mu.Unlock()

	return &CachedResult{Result: result}, nil
}

// Len returns the number of cached pages.
func (f *CachedFetcher) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func (f *CachedFetcher) evictExpiredLocked() {
	now := f.now()
	for key, e := range f.entries {
		if now.Sub(e.fetched) >= f.ttl {
			delete(f.entries, key)
		}
	}
}
