package progress

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/abhisek/careerpath/internal/roadmap"
)

// DefaultCacheSize is the number of completion sets memoized by NewCache(0).
const DefaultCacheSize = 64

// Cache memoizes ComputeStatuses per exact completed-id set. Entries belong to
// one catalog fingerprint; a call with a different catalog purges them all.
type Cache struct {
	mu          sync.Mutex
	lru         *lru.Cache
	fingerprint uint64
	hits        int
	misses      int
}

// NewCache creates a status cache holding at most size completion sets.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{lru: lru.New(size)}
}

// Statuses returns the memoized status map for (c, completed), computing it on
// a miss. The returned map is a private copy.
func (ca *Cache) Statuses(c *roadmap.Catalog, completed map[string]bool) (map[string]Status, error) {
	if c == nil {
		return nil, ErrNoCatalog
	}

	ca.mu.Lock()
	defer ca.mu.Unlock()

	if ca.fingerprint != c.Fingerprint() {
		ca.lru.Clear()
		ca.fingerprint = c.Fingerprint()
	}

	key := cacheKey(c.Fingerprint(), completed)
	if v, ok := ca.lru.Get(key); ok {
		ca.hits++
		return copyStatuses(v.(map[string]Status)), nil
	}

	ca.misses++
	statuses, err := ComputeStatuses(c, completed)
	if err != nil {
		return nil, err
	}
	ca.lru.Add(key, statuses)
	return copyStatuses(statuses), nil
}

// Stats returns cache hit and miss counts.
func (ca *Cache) Stats() (hits, misses int) {
	ca.mu.Lock()
	defer ca.mu.Unlock()
	return ca.hits, ca.misses
}

// Len returns the number of memoized completion sets.
func (ca *Cache) Len() int {
	ca.mu.Lock()
	defer ca.mu.Unlock()
	return ca.lru.Len()
}

// Purge drops every entry.
func (ca *Cache) Purge() {
	ca.mu.Lock()
	defer ca.mu.Unlock()
	ca.lru.Clear()
}

// cacheKey serializes the fingerprint and the sorted completed ids.
func cacheKey(fingerprint uint64, completed map[string]bool) string {
	ids := make([]string, 0, len(completed))
	for id, done := range completed {
		if done {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString(strconv.FormatUint(fingerprint, 16))
	for _, id := range ids {
		b.WriteByte(0)
		b.WriteString(id)
	}
	return b.String()
}

func copyStatuses(in map[string]Status) map[string]Status {
	out := make(map[string]Status, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
