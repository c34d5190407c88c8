package classifier

import (
	"hash/fnv"
	"math"
	"sync"

	rasterstyle "github.com/flywave/go-rasterstyle"
)

// DefaultCacheCapacity is the number of ramp classifiers kept by Build.
const DefaultCacheCapacity = 100

type stop struct {
	value   float64
	color   string
	opacity float64
}

type cached struct {
	stops      []stop
	classifier *Classifier
}

func stopsOf(entries []rasterstyle.Entry) []stop {
	stops := make([]stop, len(entries))
	for i, e := range entries {
		stops[i] = stop{value: e.Value, color: e.Color, opacity: e.Opacity}
	}
	return stops
}

// stopsHash hashes sorted stops. Labels do not affect classification and
// are left out.
func stopsHash(stops []stop) uint64 {
	f := fnv.New64a()
	var buf [8]byte
	putFloat := func(v float64) {
		bits := math.Float64bits(v)
		for i := range buf {
			buf[i] = byte(bits >> (8 * i))
		}
		f.Write(buf[:])
	}
	for _, s := range stops {
		putFloat(s.value)
		f.Write([]byte(s.color))
		f.Write([]byte{0})
		putFloat(s.opacity)
	}
	return f.Sum64()
}

func sameStops(a, b []stop) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float64bits(a[i].value) != math.Float64bits(b[i].value) ||
			a[i].color != b[i].color ||
			math.Float64bits(a[i].opacity) != math.Float64bits(b[i].opacity) {
			return false
		}
	}
	return true
}

// CacheStats counts cache activity since creation or the last Purge.
type CacheStats struct {
	Hits      int
	Misses    int
	Evictions int
}

// Cache keeps a bounded number of classifiers keyed by their sorted stops.
// Once full, the entry inserted first is evicted.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[uint64]*cached
	order    []uint64
	stats    CacheStats
	hash     func([]stop) uint64
}

func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[uint64]*cached, capacity),
		hash:     stopsHash,
	}
}

// Get returns the classifier for sorted entries, calling build on a miss.
// build runs without holding the lock, so concurrent misses for the same
// stops may build twice; the first inserted classifier is kept.
func (c *Cache) Get(entries []rasterstyle.Entry, build func([]rasterstyle.Entry) *Classifier) *Classifier {
	stops := stopsOf(entries)
	hash := c.hash(stops)

	c.mu.Lock()
	if e, ok := c.entries[hash]; ok && sameStops(e.stops, stops) {
		c.stats.Hits++
		c.mu.Unlock()
		return e.classifier
	}
	c.stats.Misses++
	c.mu.Unlock()

	cl := build(entries)

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[hash]; ok {
		if sameStops(e.stops, stops) {
			return e.classifier
		}
		// hash collision, replace in place
		e.stops, e.classifier = stops, cl
		return cl
	}
	if len(c.entries) >= c.capacity {
		c.evict()
	}
	c.entries[hash] = &cached{stops: stops, classifier: cl}
	c.order = append(c.order, hash)
	return cl
}

func (c *Cache) evict() {
	oldest := c.order[0]
	copy(c.order, c.order[1:])
	c.order = c.order[:len(c.order)-1]
	delete(c.entries, oldest)
	c.stats.Evictions++
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Purge drops all entries and resets the statistics.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for hash := range c.entries {
		delete(c.entries, hash)
	}
	c.order = c.order[:0]
	c.stats = CacheStats{}
}
