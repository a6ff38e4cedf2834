package explorer

import (
	"bytes"
	"sync"

	"github.com/urban-transit-lab/transit-explorer/metrics"
)

// ResponseCache memoizes serialized view responses for one data version.
// A newer version from the refresh coordinator drops everything: realtime
// overlays may have changed under any key.
type ResponseCache struct {
	mu      sync.Mutex
	version uint64
	entries map[string][]byte
	col     *metrics.Collector
}

func NewResponseCache(col *metrics.Collector) *ResponseCache {
	return &ResponseCache{entries: map[string][]byte{}, col: col}
}

// memoKey joins the view name and its parameters into a cache key.
func memoKey(args ...string) string {
	var b bytes.Buffer
	for i, a := range args {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(a)
	}
	return b.String()
}

// Get returns the cached payload for key at the given data version.
func (rc *ResponseCache) Get(key string, version uint64) ([]byte, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.version != version {
		if rc.col != nil {
			rc.col.CacheMisses.Inc()
		}
		return nil, false
	}
	buf, ok := rc.entries[key]
	if rc.col != nil {
		if ok {
			rc.col.CacheHits.Inc()
		} else {
			rc.col.CacheMisses.Inc()
		}
	}
	return buf, ok
}

// Put stores a payload built against the given data version. Stale puts are
// dropped.
func (rc *ResponseCache) Put(key string, version uint64, buf []byte) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.version != version {
		return
	}
	rc.entries[key] = buf
}

// InvalidateIfNewer clears the cache when version moved past the cached one.
func (rc *ResponseCache) InvalidateIfNewer(version uint64) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if version > rc.version {
		rc.version = version
		rc.entries = map[string][]byte{}
	}
}
