package hashmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIteration(t *testing.T) {
	t.Run("visits every entry exactly once", func(t *testing.T) {
		// Prepare
		m := NewStringMap[int]()
		want := map[string]int{}
		for i := 0; i < 100; i++ {
			key := fmt.Sprintf("key-%03d", i)
			want[key] = i
			m.Insert(key, i)
		}

		// Execute
		seen := map[string]int{}
		for it := m.Begin(); it != m.End(); it = it.Next() {
			_, dup := seen[it.Key()]
			assert.False(t, dup, "no entry visited twice")
			seen[it.Key()] = it.Value()
		}

		// Check
		assert.Equal(t, m.Size(), len(seen), "visit count equals size")
		assert.Equal(t, want, seen, "every inserted pair visited")
	})

	t.Run("follows chain order within a bucket", func(t *testing.T) {
		// Prepare
		// One bucket slot, constant hash and a large enough capacity that no
		// growth redistributes the chain.
		m, err := NewWithCapacity[int, string](100, func(int) uint64 { return 7 }, intEqual)
		assert.NoError(t, err, "creates map")
		m.Insert(3, "three")
		m.Insert(1, "one")
		m.Insert(2, "two")

		// Execute
		var keys []int
		for it := m.Begin(); it != m.End(); it = it.Next() {
			keys = append(keys, it.Key())
		}

		// Check
		assert.Equal(t, []int{3, 1, 2}, keys, "chain preserves insertion order")
	})

	t.Run("mutating through an iterator is visible", func(t *testing.T) {
		// Prepare
		m := NewStringMap[int]()
		m.Insert("a", 1)
		m.Insert("b", 2)

		// Execute
		for it := m.Begin(); it != m.End(); it = it.Next() {
			it.SetValue(it.Value() * 10)
		}

		// Check
		assert.Equal(t, 10, m.Find("a").Value(), "a scaled")
		assert.Equal(t, 20, m.Find("b").Value(), "b scaled")
	})
}

func TestIteratorEquality(t *testing.T) {
	t.Run("iterators at the same position compare equal", func(t *testing.T) {
		// Prepare
		m := NewStringMap[int]()
		m.Insert("a", 1)

		// Check
		assert.Equal(t, m.Begin(), m.Begin(), "begin equals begin")
		assert.Equal(t, m.Begin(), m.Find("a"), "find of sole entry equals begin")
		assert.NotEqual(t, m.Begin(), m.End(), "begin differs from end on non-empty map")
	})

	t.Run("end iterators from different maps compare equal", func(t *testing.T) {
		// Prepare
		// The end position carries no owning map reference.
		a := NewStringMap[int]()
		b := NewStringMap[int]()

		// Check
		assert.Equal(t, a.End(), b.End(), "end is a shared sentinel")
	})
}

func TestConstIterator(t *testing.T) {
	t.Run("converts one way from mutable iterator", func(t *testing.T) {
		// Prepare
		m := NewStringMap[int]()
		m.Insert("a", 1)
		m.Insert("b", 2)

		// Execute
		count := 0
		for it := m.ConstBegin(); it != m.ConstEnd(); it = it.Next() {
			count++
		}

		// Check
		assert.Equal(t, 2, count, "const iteration covers all entries")
		assert.Equal(t, m.FindConst("a"), m.Find("a").Const(), "conversion keeps the position")
	})
}

func TestIteratorPreconditions(t *testing.T) {
	t.Run("dereferencing end panics", func(t *testing.T) {
		// Prepare
		m := NewStringMap[int]()

		// Check
		assert.Panics(t, func() { m.End().Key() }, "key of end panics")
		assert.Panics(t, func() { m.End().Value() }, "value of end panics")
		assert.Panics(t, func() { m.End().SetValue(1) }, "write through end panics")
		assert.Panics(t, func() { m.ConstEnd().Value() }, "value of const end panics")
	})

	t.Run("advancing end panics", func(t *testing.T) {
		// Prepare
		m := NewStringMap[int]()

		// Check
		assert.Panics(t, func() { m.End().Next() }, "next of end panics")
		assert.Panics(t, func() { m.ConstEnd().Next() }, "next of const end panics")
	})
}
