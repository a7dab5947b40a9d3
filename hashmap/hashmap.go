// Package hashmap implements a generic associative container using open
// hashing with separate chaining and automatic capacity growth.
//
// The map is laid out as a slice of bucket slots, each holding the head of a
// chain of entries that hashed to that slot. Entries themselves live in one
// flat arena slice and chains are singly-linked lists of entry indices, so a
// chain can never link to an entry the arena does not own. Lookup and insert
// are expected O(1); when the load factor (entries per bucket slot) exceeds
// 0.4 after an insert, the map grows and rehashes every entry.
//
// The map offers no delete operation, no ordering guarantees across keys and
// no internal locking. Callers that share a map across goroutines must
// serialize access externally.
package hashmap

import (
	"fmt"
)

// DefaultCapacity - Number of bucket slots allocated by New when the caller
// has no better estimate of the expected number of keys.
const DefaultCapacity int = 23

// capacityThreshold - The ratio of entries to bucket slots at which to grow
// the bucket slice. It is kept low since the map is tuned for lookup speed
// rather than memory footprint.
const capacityThreshold float64 = 0.4

// resizeMultiple - The multiple of the current entry count to which to set
// the new bucket slot count when growing.
const resizeMultiple int = 3

// additionalIncrement - An extra slot increment applied when growing, which
// helps small maps where growing by the multiple alone would not be enough.
const additionalIncrement int = 5

// noEntry - Sentinel entry index meaning "no entry here", used both for empty
// bucket slots and for the last link in a chain.
const noEntry int = -1

// StatsRecorder - Receives tuning events from a Map. Implementations can use
// it to surface collision and growth behavior to a metrics backend. All
// callbacks happen synchronously on the caller's goroutine.
type StatsRecorder interface {
	// RecordCollision - Called when an insert lands in an already occupied bucket slot.
	RecordCollision()
	// RecordResize - Called when the map grows its bucket slice and rehashes.
	RecordResize()
}

// noopStats - Default StatsRecorder that does nothing.
type noopStats struct{}

func (noopStats) RecordCollision() {}
func (noopStats) RecordResize()    {}

// entry - One key-value pair in the arena together with the index of the
// next entry in its chain, or noEntry if it is the last one.
type entry[K any, V any] struct {
	key   K
	value V
	next  int
}

// Map - A hash map from K to V using separate chaining.
//
// The zero value is not usable; create instances with New, NewWithCapacity
// or NewStringMap.
type Map[K any, V any] struct {
	hash    func(K) uint64
	equal   func(K, K) bool
	buckets []int
	entries []entry[K, V]
	stats   StatsRecorder
}

// New - Returns a new Map with DefaultCapacity bucket slots.
//   - hash must be deterministic: equal keys must produce equal hash values
//   - equal reports whether two keys are the same key
//
// It returns:
//   - m is a pointer to the new Map
//   - err is a standard error if hash or equal is nil
func New[K any, V any](hash func(K) uint64, equal func(K, K) bool) (m *Map[K, V], err error) {
	return NewWithCapacity[K, V](DefaultCapacity, hash, equal)
}

// NewWithCapacity - Returns a new Map with initialCapacity bucket slots.
// The capacity is only a starting point, the map grows on its own as entries
// are added.
//   - initialCapacity is the initial number of bucket slots, it must be at least 1
//   - hash must be deterministic: equal keys must produce equal hash values
//   - equal reports whether two keys are the same key
//
// It returns:
//   - m is a pointer to the new Map
//   - err is a standard error if initialCapacity is below 1 or a function is nil
func NewWithCapacity[K any, V any](initialCapacity int, hash func(K) uint64, equal func(K, K) bool) (m *Map[K, V], err error) {
	if initialCapacity < 1 {
		err = fmt.Errorf("initialCapacity must be a positive value higher than 0 (zero)")
		return
	}
	if hash == nil {
		err = fmt.Errorf("hash function can not be nil")
		return
	}
	if equal == nil {
		err = fmt.Errorf("equal function can not be nil")
		return
	}

	m = &Map[K, V]{
		hash:    hash,
		equal:   equal,
		buckets: emptyBuckets(initialCapacity),
		stats:   noopStats{},
	}

	return
}

// NewStringMap - Returns a new Map keyed by string using the internal
// StringHash algorithm and plain string equality.
func NewStringMap[V any]() *Map[string, V] {
	m, _ := NewStringMapWithCapacity[V](DefaultCapacity)
	return m
}

// NewStringMapWithCapacity - Returns a new string keyed Map with
// initialCapacity bucket slots.
//
// It returns:
//   - m is a pointer to the new Map
//   - err is a standard error if initialCapacity is below 1
func NewStringMapWithCapacity[V any](initialCapacity int) (m *Map[string, V], err error) {
	return NewWithCapacity[string, V](initialCapacity, StringHash, func(a, b string) bool { return a == b })
}

// SetStatsRecorder - Attaches a StatsRecorder to the map. A nil recorder
// restores the default no-op recorder.
func (M *Map[K, V]) SetStatsRecorder(stats StatsRecorder) {
	if stats == nil {
		M.stats = noopStats{}
		return
	}
	M.stats = stats
}

// Size - Returns the number of entries in the map.
func (M *Map[K, V]) Size() int {
	return len(M.entries)
}

// Empty - Returns whether the map holds no entries.
func (M *Map[K, V]) Empty() bool {
	return len(M.entries) == 0
}

// Capacity - Returns the current number of bucket slots. The map chooses
// this value itself after construction, so it is informational only.
func (M *Map[K, V]) Capacity() int {
	return len(M.buckets)
}

// Insert - Adds a key-value pair to the map or, if the key is already
// present, overwrites its value in place. Key presence is decided by the
// equal function, never by hash value, so colliding distinct keys are safe.
//
// After a successful add (not an overwrite) the load factor is checked and
// the map may grow and rehash, which invalidates the bucket position of any
// previously obtained iterator. The returned iterator is valid even then.
//
// It returns:
//   - it is an Iterator positioned at the inserted or updated entry
//   - wasUpdate is true if an existing entry was overwritten
func (M *Map[K, V]) Insert(key K, value V) (it Iterator[K, V], wasUpdate bool) {
	spot := M.bucketFor(key, len(M.buckets))

	// Walk the chain looking for an existing entry with the same key,
	// tracking the previous entry so a new one can be linked at the tail.
	prev := noEntry
	steps := 0
	for curr := M.buckets[spot]; curr != noEntry; curr = M.entries[curr].next {
		if M.equal(M.entries[curr].key, key) {
			M.entries[curr].value = value
			it = Iterator[K, V]{m: M, entry: curr, bucket: spot}
			wasUpdate = true
			return
		}
		prev = curr

		if steps++; steps > len(M.entries) {
			panic("hashmap: chain failed to terminate within entry count")
		}
	}

	idx := len(M.entries)
	M.entries = append(M.entries, entry[K, V]{key: key, value: value, next: noEntry})

	if prev == noEntry {
		M.buckets[spot] = idx
	} else {
		M.entries[prev].next = idx
		M.stats.RecordCollision()
	}

	// The growth check runs after the insert, so the map can exceed the
	// threshold by exactly one entry before growing.
	if float64(len(M.entries))/float64(len(M.buckets)) > capacityThreshold {
		M.resize(len(M.entries)*resizeMultiple + additionalIncrement)
		spot = M.bucketFor(key, len(M.buckets))
	}

	it = Iterator[K, V]{m: M, entry: idx, bucket: spot}
	return
}

// Find - Returns an Iterator positioned at the entry with the given key, or
// the end iterator if the key is not present. Absence is a normal outcome,
// not an error. The lookup has no side effects.
func (M *Map[K, V]) Find(key K) Iterator[K, V] {
	spot := M.bucketFor(key, len(M.buckets))

	steps := 0
	for curr := M.buckets[spot]; curr != noEntry; curr = M.entries[curr].next {
		if M.equal(M.entries[curr].key, key) {
			return Iterator[K, V]{m: M, entry: curr, bucket: spot}
		}

		if steps++; steps > len(M.entries) {
			panic("hashmap: chain failed to terminate within entry count")
		}
	}

	return M.End()
}

// FindConst - Returns a read-only ConstIterator positioned at the entry with
// the given key, or the end iterator if the key is not present.
func (M *Map[K, V]) FindConst(key K) ConstIterator[K, V] {
	return M.Find(key).Const()
}

// resize - Replaces the bucket slice with newSize fresh slots and rehashes
// every entry into it. A request for the current size is a no-op.
//
// Entries are first collected into a holding list in ascending bucket order,
// chain order within each bucket. They are then relinked one by one at the
// tail of their new chain with the old next link cleared first, which
// preserves relative order within each new bucket. Entry indices are stable
// across the operation; only bucket positions change.
func (M *Map[K, V]) resize(newSize int) {
	if newSize == len(M.buckets) {
		return
	}

	holding := make([]int, 0, len(M.entries))
	for _, head := range M.buckets {
		steps := 0
		for curr := head; curr != noEntry; curr = M.entries[curr].next {
			holding = append(holding, curr)

			if steps++; steps > len(M.entries) {
				panic("hashmap: chain failed to terminate within entry count")
			}
		}
	}
	if len(holding) != len(M.entries) {
		panic("hashmap: entry count mismatch while collecting entries for rehash")
	}

	M.buckets = emptyBuckets(newSize)

	for _, idx := range holding {
		M.entries[idx].next = noEntry
		spot := M.bucketFor(M.entries[idx].key, newSize)

		if M.buckets[spot] == noEntry {
			M.buckets[spot] = idx
			continue
		}

		// Walk to the end of the new chain and link the entry there.
		curr := M.buckets[spot]
		for M.entries[curr].next != noEntry {
			curr = M.entries[curr].next
		}
		M.entries[curr].next = idx
	}

	M.stats.RecordResize()
}

// bucketFor - Returns the bucket slot for key in a table of nBuckets slots.
func (M *Map[K, V]) bucketFor(key K, nBuckets int) int {
	return int(M.hash(key) % uint64(nBuckets))
}

// emptyBuckets - Returns a bucket slice of n slots, all empty.
func emptyBuckets(n int) []int {
	buckets := make([]int, n)
	for i := range buckets {
		buckets[i] = noEntry
	}
	return buckets
}
