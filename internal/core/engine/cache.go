package engine

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"

	"github.com/overlook-conference/schedcore/internal/core/constraints"
	"github.com/overlook-conference/schedcore/internal/core/models"
)

// DefaultCacheSize is the fingerprint cache's default capacity (§4.3).
const DefaultCacheSize = 10000

// Cache is a bounded fingerprint -> EvaluationResult map with approximate
// LRU replacement: recency via insertion order, per §4.3, not full
// access-order LRU.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    []string
	entries  map[string]EvaluationResult

	hits   *atomic.Int64
	misses *atomic.Int64

	hitCounter  prometheus.Counter
	missCounter prometheus.Counter
}

// NewCache builds a cache of the given capacity. If registry is non-nil,
// hit/miss counters are registered into it (§"Metrics" of the ambient
// stack); registry may be nil for callers that only want CacheStats().
func NewCache(capacity int, registry *prometheus.Registry) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	c := &Cache{
		capacity: capacity,
		entries:  make(map[string]EvaluationResult, capacity),
		hits:     atomic.NewInt64(0),
		misses:   atomic.NewInt64(0),
		hitCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedcore_constraint_cache_hits_total",
			Help: "Constraint evaluation cache hits.",
		}),
		missCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedcore_constraint_cache_misses_total",
			Help: "Constraint evaluation cache misses.",
		}),
	}
	if registry != nil {
		registry.MustRegister(c.hitCounter, c.missCounter)
	}
	return c
}

// Fingerprint computes the §4.3 content hash: constraint kind+weight+
// parameters (stable-sorted by id), joined with the schedule's canonical
// game tuples.
func Fingerprint(cs []constraints.Constraint, schedule *models.Schedule) string {
	sorted := append([]constraints.Constraint(nil), cs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID() < sorted[j].ID() })

	var b strings.Builder
	for _, c := range sorted {
		param := ""
		if pk, ok := c.(constraints.ParameterKeyer); ok {
			param = pk.ParameterKey()
		}
		fmt.Fprintf(&b, "%s:%s:%.6f:%s;", c.ID(), c.Kind(), c.Weight(), param)
	}
	b.WriteString("||")
	for _, tuple := range schedule.Fingerprint() {
		b.WriteString(tuple)
		b.WriteByte(';')
	}

	h := fnv.New128a()
	_, _ = h.Write([]byte(b.String()))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get returns the cached result for fp, incrementing hit or miss counters.
func (c *Cache) Get(fp string) (EvaluationResult, bool) {
	c.mu.Lock()
	result, ok := c.entries[fp]
	c.mu.Unlock()

	if ok {
		c.hits.Inc()
		c.hitCounter.Inc()
	} else {
		c.misses.Inc()
		c.missCounter.Inc()
	}
	return result, ok
}

// Put inserts result under fp, evicting the oldest entry by insertion
// order if the cache is at capacity.
func (c *Cache) Put(fp string, result EvaluationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[fp]; exists {
		c.entries[fp] = result
		return
	}
	if len(c.entries) >= c.capacity && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[fp] = result
	c.order = append(c.order, fp)
}

// Stats returns the hit/miss counts and hit rate accumulated so far.
func (c *Cache) Stats() (hits, misses int64, hitRate float64) {
	hits = c.hits.Load()
	misses = c.misses.Load()
	total := hits + misses
	if total == 0 {
		return hits, misses, 0
	}
	return hits, misses, float64(hits) / float64(total)
}

// Size returns the current number of entries held.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// EvaluateCached evaluates schedule against effective, consulting cache
// first and populating it on miss (P10).
func EvaluateCached(cache *Cache, effective []constraints.Constraint, schedule *models.Schedule) (EvaluationResult, error) {
	if cache == nil {
		return Evaluate(effective, schedule)
	}
	fp := Fingerprint(effective, schedule)
	if result, ok := cache.Get(fp); ok {
		return result, nil
	}
	result, err := Evaluate(effective, schedule)
	if err != nil {
		return EvaluationResult{}, err
	}
	cache.Put(fp, result)
	return result, nil
}
