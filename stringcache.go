package jiter

// StringCache is a reference implementation of the "string cache" external
// collaborator from spec.md §5: an abstract resolver mapping (bytes,
// ascii-only) to a host-string handle, meant for a language-runtime binding
// that wants to intern small, frequently repeated JSON strings (object keys
// above all) instead of allocating a fresh string per occurrence. The core
// parser never requires one; Jiter only consults it when a caller wires one
// in via WithStringCache.
//
// It is fully-associative up to cacheCapacity slots, indexed by hash modulo
// capacity with linear probing up to cacheProbeLimit slots, and evicts by
// least-recently-used among the probed slots on a miss with no free slot.
// Strings shorter than cacheMinLen or at least cacheMaxLen bypass the cache
// entirely — too short to be worth interning, too long to bound memory use.
type StringCache struct {
	slots []cacheSlot
	clock uint64
}

const (
	cacheCapacity   = 16384
	cacheProbeLimit = 5
	cacheMinLen     = 2
	cacheMaxLen     = 64
)

type cacheSlot struct {
	occupied bool
	hash     uint64
	key      string
	lastUsed uint64
}

// NewStringCache builds an empty cache at the reference capacity.
func NewStringCache() *StringCache {
	return &StringCache{slots: make([]cacheSlot, cacheCapacity)}
}

func fnv1a(b []byte) uint64 {
	const offset = 14695981039346656037
	const prime = 1099511628211
	h := uint64(offset)
	for _, c := range b {
		h ^= uint64(c)
		h *= prime
	}
	return h
}

// bypasses reports whether b is outside the cacheable length window.
func (c *StringCache) bypasses(b []byte) bool {
	return len(b) < cacheMinLen || len(b) >= cacheMaxLen
}

// Intern returns a single canonical string for b, allocating at most once
// per distinct string value ever seen (subject to eviction). ascii is
// unused by this reference implementation beyond being part of the
// interface spec.md describes; it is accepted so a caller's decoded
// StringOutput.Ascii flag can be passed straight through.
func (c *StringCache) Intern(b []byte, ascii bool) string {
	if c.bypasses(b) {
		return string(b)
	}
	h := fnv1a(b)
	start := int(h % uint64(len(c.slots)))

	c.clock++
	lruIdx, lruTime := -1, ^uint64(0)
	for i := 0; i < cacheProbeLimit; i++ {
		idx := (start + i) % len(c.slots)
		s := &c.slots[idx]
		if !s.occupied {
			s.occupied = true
			s.hash = h
			s.key = string(b)
			s.lastUsed = c.clock
			return s.key
		}
		if s.hash == h && s.key == string(b) {
			s.lastUsed = c.clock
			return s.key
		}
		if s.lastUsed < lruTime {
			lruTime = s.lastUsed
			lruIdx = idx
		}
	}
	// All cacheProbeLimit slots occupied by other keys: evict the least
	// recently used of them.
	s := &c.slots[lruIdx]
	s.hash = h
	s.key = string(b)
	s.lastUsed = c.clock
	return s.key
}
