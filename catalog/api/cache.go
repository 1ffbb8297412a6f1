package api

import (
	"context"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/cespare/xxhash/v2"
)

// listCache keeps rendered collection responses around so the public site
// does not hit sqlite on every page load. Entries are dropped eagerly on
// any mutation of the same kind; the bigcache eviction window is only a
// backstop.
type listCache struct {
	cache *bigcache.BigCache
}

func newListCache(ctx context.Context) (*listCache, error) {
	cache, err := bigcache.New(ctx, bigcache.DefaultConfig(10*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("unable to create list cache, cause %w", err)
	}
	return &listCache{cache: cache}, nil
}

func (l *listCache) get(kind string) ([]byte, bool) {
	buf, err := l.cache.Get(kind)
	if err != nil {
		return nil, false
	}
	return buf, true
}

func (l *listCache) put(kind string, body []byte) {
	l.cache.Set(kind, body)
}

func (l *listCache) drop(kind string) {
	l.cache.Delete(kind)
}

// etagFor derives a weak validator from the response bytes. xxhash is not
// cryptographic, which is fine here: the ETag only needs to change when
// the content does.
func etagFor(body []byte) string {
	return fmt.Sprintf(`"%x"`, xxhash.Sum64(body))
}
