package cache

import (
	"math"
	"sync"
)

// Memory budget sizing constants. The tier is sized to the larger of a
// fixed floor and a fraction of total system RAM.
const (
	DefaultRAMFraction = 0.85
	MinRAMFraction     = 0.05
	MaxRAMFraction     = 0.95

	DefaultFloorMB = 512
	MinFloorMB     = 64
)

// MemoryBudget derives the memory tier budget in bytes from total system
// RAM. The fraction is clamped to [MinRAMFraction, MaxRAMFraction] and the
// floor raised to at least MinFloorMB; the result is the larger of the
// floor and the RAM share.
func MemoryBudget(totalRAM uint64, fraction float64, floorMB int) int64 {
	if math.IsNaN(fraction) || fraction < MinRAMFraction {
		fraction = MinRAMFraction
	} else if fraction > MaxRAMFraction {
		fraction = MaxRAMFraction
	}
	if floorMB < MinFloorMB {
		floorMB = MinFloorMB
	}

	floor := int64(floorMB) << 20
	share := float64(totalRAM) * fraction
	if share >= math.MaxInt64 {
		return math.MaxInt64
	}
	if b := int64(share); b > floor {
		return b
	}
	return floor
}

// MemoryStats is a point-in-time snapshot of the memory tier.
type MemoryStats struct {
	Entries   int
	Bytes     int64
	MaxBytes  int64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type memEntry[V any] struct {
	value V
	size  int64
	node  *lruNode
}

// Memory is a byte-budgeted LRU cache. Entry sizes are supplied by the
// caller at Put time; when the running total exceeds the budget the least
// recently used entries are evicted until it fits.
//
// A single mutex guards the map and the recency list. All operations are
// O(1) and safe for concurrent use.
type Memory[V any] struct {
	mu        sync.Mutex
	max       int64
	total     int64
	entries   map[Key]*memEntry[V]
	lru       lruList
	hits      uint64
	misses    uint64
	evictions uint64
}

// NewMemory creates a memory tier bounded by maxBytes. Budgets below one
// byte are raised to one.
func NewMemory[V any](maxBytes int64) *Memory[V] {
	if maxBytes < 1 {
		maxBytes = 1
	}
	return &Memory[V]{
		max:     maxBytes,
		entries: make(map[Key]*memEntry[V]),
	}
}

// Get returns the value cached under k and marks it most recently used.
func (m *Memory[V]) Get(k Key) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[k]
	if !ok {
		m.misses++
		var zero V
		return zero, false
	}
	m.lru.MoveToFront(e.node)
	m.hits++
	return e.value, true
}

// Put inserts or replaces the value under k, marks it most recently used
// and evicts least recently used entries while the total exceeds the
// budget. An entry larger than the whole budget is evicted immediately.
// Sizes below one byte count as one.
func (m *Memory[V]) Put(k Key, v V, approxBytes int64) {
	if approxBytes < 1 {
		approxBytes = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[k]; ok {
		m.total += approxBytes - e.size
		e.value = v
		e.size = approxBytes
		m.lru.MoveToFront(e.node)
	} else {
		node := m.lru.PushFront(k)
		m.entries[k] = &memEntry[V]{value: v, size: approxBytes, node: node}
		m.total += approxBytes
	}

	for m.total > m.max {
		old, ok := m.lru.RemoveOldest()
		if !ok {
			break
		}
		if e, ok := m.entries[old]; ok {
			m.total -= e.size
			delete(m.entries, old)
			m.evictions++
		}
	}
	if m.total < 0 {
		m.total = 0
	}
}

// Stats returns a snapshot of the tier's occupancy and traffic counters.
func (m *Memory[V]) Stats() MemoryStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MemoryStats{
		Entries:   len(m.entries),
		Bytes:     m.total,
		MaxBytes:  m.max,
		Hits:      m.hits,
		Misses:    m.misses,
		Evictions: m.evictions,
	}
}
