// Package dp implements the Quality DP Engine (spec.md §4.2): a memoised
// top-down search over packed qualstate.State keys that chooses, at every
// state, the best of the catalogued quality/buff/repair actions.
package dp

import "sync"

// numTimeShards is the number of shards the cache is split into when the
// engine checks time (spec.md §3: "optionally partitioned by time into ~120
// sub-tables"); one per time value 0..qualstate.MaxTime (89), although
// shardFor selects a shard by index modulus rather than by the time field.
const numTimeShards = 90

// Cache is a mapping from packed state index to packed result. It is safe
// for concurrent use: spec.md §5 permits an optional worklist-parallel
// warm-up, and correctness there only requires that concurrent computations
// of the same key converge to the same value and that inserts be idempotent
// -- true here since the DP is a pure function of the state index.
type Cache struct {
	checkTime bool
	mu        []sync.RWMutex
	shards    []map[uint64]uint64
}

// NewCache builds an empty cache. When checkTime is false a single shard is
// used; when true the cache is split into numTimeShards shards (see
// shardFor).
func NewCache(checkTime bool) *Cache {
	n := 1
	if checkTime {
		n = numTimeShards
	}
	c := &Cache{
		checkTime: checkTime,
		mu:        make([]sync.RWMutex, n),
		shards:    make([]map[uint64]uint64, n),
	}
	for i := range c.shards {
		c.shards[i] = make(map[uint64]uint64)
	}
	return c
}

func (c *Cache) shardFor(index uint64) int {
	if !c.checkTime {
		return 0
	}
	// The shard is selected by a simple modulus of the whole index rather
	// than by the time field -- locality is a performance concern, not a correctness
	// one, and collisions across shards are impossible since each index
	// lives in exactly one shard by construction.
	return int(index % uint64(len(c.shards)))
}

// Get returns the cached result for index, if present.
func (c *Cache) Get(index uint64) (uint64, bool) {
	s := c.shardFor(index)
	c.mu[s].RLock()
	defer c.mu[s].RUnlock()
	v, ok := c.shards[s][index]
	return v, ok
}

// Put inserts (or idempotently overwrites with the same value) the result
// for index.
func (c *Cache) Put(index, result uint64) {
	s := c.shardFor(index)
	c.mu[s].Lock()
	defer c.mu[s].Unlock()
	c.shards[s][index] = result
}

// Len reports the total number of cached entries across all shards, used by
// internal/watch to report DP cache fill progress.
func (c *Cache) Len() int {
	n := 0
	for i := range c.shards {
		c.mu[i].RLock()
		n += len(c.shards[i])
		c.mu[i].RUnlock()
	}
	return n
}

// CheckTime reports whether this cache was built in time-checked mode.
func (c *Cache) CheckTime() bool { return c.checkTime }
