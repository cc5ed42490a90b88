package tablebase

import (
	"sync"

	"github.com/merakichess/meraki/internal/board"
)

// CachedProber wraps another prober with a bounded in-memory cache keyed by
// position hash, so repeated probes of the same endgame do not hit the
// network.
type CachedProber struct {
	inner   Prober
	mu      sync.Mutex
	cache   map[uint64]ProbeResult
	maxSize int
	hits    uint64
	misses  uint64
}

// NewCachedProber creates a cached prober wrapping inner.
func NewCachedProber(inner Prober, cacheSize int) *CachedProber {
	return &CachedProber{
		inner:   inner,
		cache:   make(map[uint64]ProbeResult, cacheSize),
		maxSize: cacheSize,
	}
}

// NewCachedLichessProber creates a cached Lichess prober with a default
// cache size.
func NewCachedLichessProber() *CachedProber {
	return NewCachedProber(NewLichessProber(), 100000)
}

func (cp *CachedProber) Probe(pos *board.Position) ProbeResult {
	key := pos.Hash()

	cp.mu.Lock()
	if result, ok := cp.cache[key]; ok {
		cp.hits++
		cp.mu.Unlock()
		return result
	}
	cp.misses++
	cp.mu.Unlock()

	result := cp.inner.Probe(pos)

	cp.mu.Lock()
	if len(cp.cache) >= cp.maxSize {
		// Crude eviction: drop half the cache.
		n := 0
		for k := range cp.cache {
			if n >= cp.maxSize/2 {
				break
			}
			delete(cp.cache, k)
			n++
		}
	}
	cp.cache[key] = result
	cp.mu.Unlock()

	return result
}

func (cp *CachedProber) MaxPieces() int {
	return cp.inner.MaxPieces()
}

func (cp *CachedProber) Available() bool {
	return cp.inner.Available()
}

// Stats returns cache hit and miss counts.
func (cp *CachedProber) Stats() (hits, misses uint64) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.hits, cp.misses
}
