package hashmap

// Iterator - A forward-only cursor over a Map that can both read and write
// the value at its position.
//
// An iterator's position is the pair (entry, bucket). Two iterators from the
// same map compare equal with == exactly when their positions are equal;
// comparing iterators from different maps is not defined. The end iterator
// carries no map reference, so end iterators always compare equal.
//
// A resize invalidates the bucket position embedded in an iterator, so
// iterators must not be kept across inserts that may grow the map.
type Iterator[K any, V any] struct {
	m      *Map[K, V]
	entry  int
	bucket int
}

// ConstIterator - A forward-only read-only cursor over a Map. It is created
// from the map's read-only accessors or by converting an Iterator with
// Const. There is no conversion in the other direction.
type ConstIterator[K any, V any] struct {
	it Iterator[K, V]
}

// Begin - Returns an Iterator at the first entry in the map, scanning bucket
// slots from index 0 upward. On an empty map it equals End.
func (M *Map[K, V]) Begin() Iterator[K, V] {
	if M.Empty() {
		return M.End()
	}

	for i, head := range M.buckets {
		if head != noEntry {
			return Iterator[K, V]{m: M, entry: head, bucket: i}
		}
	}

	// Unreachable: a non-empty map has at least one occupied bucket slot.
	panic("hashmap: no occupied bucket slot in non-empty map")
}

// End - Returns the end Iterator, the position one past the last entry.
func (M *Map[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{m: nil, entry: noEntry, bucket: 0}
}

// ConstBegin - Returns a ConstIterator at the first entry in the map.
func (M *Map[K, V]) ConstBegin() ConstIterator[K, V] {
	return M.Begin().Const()
}

// ConstEnd - Returns the read-only end iterator.
func (M *Map[K, V]) ConstEnd() ConstIterator[K, V] {
	return M.End().Const()
}

// Next - Returns the iterator advanced by one position. If the current entry
// has a successor in its chain the position moves there, otherwise the scan
// continues at the next occupied bucket slot. Past the last entry the result
// is the end iterator. Advancing the end iterator panics.
func (I Iterator[K, V]) Next() Iterator[K, V] {
	if I.m == nil || I.entry == noEntry {
		panic("hashmap: advance of end iterator")
	}

	if next := I.m.entries[I.entry].next; next != noEntry {
		return Iterator[K, V]{m: I.m, entry: next, bucket: I.bucket}
	}

	for i := I.bucket + 1; i < len(I.m.buckets); i++ {
		if head := I.m.buckets[i]; head != noEntry {
			return Iterator[K, V]{m: I.m, entry: head, bucket: i}
		}
	}

	return I.m.End()
}

// Key - Returns the key at the iterator's position. Dereferencing the end
// iterator panics.
func (I Iterator[K, V]) Key() K {
	I.mustDeref()
	return I.m.entries[I.entry].key
}

// Value - Returns the value at the iterator's position. Dereferencing the
// end iterator panics.
func (I Iterator[K, V]) Value() V {
	I.mustDeref()
	return I.m.entries[I.entry].value
}

// SetValue - Overwrites the value at the iterator's position. Writing
// through the end iterator panics.
func (I Iterator[K, V]) SetValue(value V) {
	I.mustDeref()
	I.m.entries[I.entry].value = value
}

// Const - Returns the read-only view of the iterator. The conversion is one
// way only.
func (I Iterator[K, V]) Const() ConstIterator[K, V] {
	return ConstIterator[K, V]{it: I}
}

// mustDeref - Panics if the iterator is not positioned at an entry.
func (I Iterator[K, V]) mustDeref() {
	if I.m == nil || I.entry == noEntry {
		panic("hashmap: dereference of end iterator")
	}
}

// Next - Returns the read-only iterator advanced by one position. Advancing
// the end iterator panics.
func (C ConstIterator[K, V]) Next() ConstIterator[K, V] {
	return ConstIterator[K, V]{it: C.it.Next()}
}

// Key - Returns the key at the iterator's position. Dereferencing the end
// iterator panics.
func (C ConstIterator[K, V]) Key() K {
	return C.it.Key()
}

// Value - Returns the value at the iterator's position. Dereferencing the
// end iterator panics.
func (C ConstIterator[K, V]) Value() V {
	return C.it.Value()
}
