package memds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTypedList[T any](t *testing.T, values ...T) (*TypedList[T], *CountingAllocator) {
	allocator := NewCountingAllocator(nil)
	list, err := NewTypedListWithConfig[T](LinkedListConfig{Allocator: allocator})
	require.NoError(t, err)

	for _, v := range values {
		require.NoError(t, list.PushTail(v))
	}
	return list, allocator
}

func typedValues[T any](t *testing.T, list *TypedList[T]) []T {
	values, err := list.Values()
	require.NoError(t, err)
	return values
}

func assertTypedReleased[T any](t *testing.T, list *TypedList[T], allocator *CountingAllocator) {
	t.Helper()
	assertReleased(t, list.Bytes(), allocator)
}

func TestNewTypedList(t *testing.T) {
	t.Run("sized types", func(t *testing.T) {
		i8, err := NewTypedList[int8]()
		require.NoError(t, err)
		assert.Equal(t, 1, i8.Bytes().ElementSize())

		u32, err := NewTypedList[uint32]()
		require.NoError(t, err)
		assert.Equal(t, 4, u32.Bytes().ElementSize())

		type point struct {
			X, Y int16
		}
		points, err := NewTypedList[point]()
		require.NoError(t, err)
		assert.Equal(t, 4, points.Bytes().ElementSize())

		arrays, err := NewTypedList[[3]float64]()
		require.NoError(t, err)
		assert.Equal(t, 24, arrays.Bytes().ElementSize())
	})

	t.Run("unsupported types", func(t *testing.T) {
		_, err := NewTypedList[int]()
		assert.ErrorIs(t, err, ErrUnsupportedElementType)

		_, err = NewTypedList[string]()
		assert.ErrorIs(t, err, ErrUnsupportedElementType)

		_, err = NewTypedList[map[int8]int8]()
		assert.ErrorIs(t, err, ErrUnsupportedElementType)
	})

	t.Run("little endian encoding", func(t *testing.T) {
		list, allocator := newTestTypedList[uint16](t, 0x0102)

		raw, ok := list.Bytes().Head()
		require.True(t, ok)
		assert.Equal(t, []byte{0x02, 0x01}, raw)
		list.Bytes().FreeElement(raw)

		assertTypedReleased(t, list, allocator)
	})
}

func TestTypedListPositional(t *testing.T) {
	list, allocator := newTestTypedList[int32](t)

	require.NoError(t, list.Insert(1, 0))
	require.NoError(t, list.Insert(3, 1))
	require.NoError(t, list.Insert(2, 1))
	require.NoError(t, list.Insert(4, 0))
	assert.ErrorIs(t, list.Insert(5, 10), ErrInvalidIndex)
	assert.Equal(t, []int32{4, 1, 2, 3}, typedValues(t, list))

	v, ok := list.Fetch(2)
	assert.True(t, ok)
	assert.EqualValues(t, 2, v)

	_, ok = list.Fetch(4)
	assert.False(t, ok)

	v, ok = list.Remove(1)
	assert.True(t, ok)
	assert.EqualValues(t, 1, v)

	assert.True(t, list.Delete(0))
	assert.False(t, list.Delete(2))

	require.NoError(t, list.PushHead(-7))

	v, ok = list.PopTail()
	assert.True(t, ok)
	assert.EqualValues(t, 3, v)

	v, ok = list.PopHead()
	assert.True(t, ok)
	assert.EqualValues(t, -7, v)

	assert.Equal(t, []int32{2}, typedValues(t, list))
	assert.Equal(t, 1, list.Len())
	assert.False(t, list.IsEmpty())

	//popped, fetched and removed buffers are given back to the allocator.
	assert.Equal(t, 1, allocator.Outstanding())
	assertTypedReleased(t, list, allocator)
	assert.True(t, list.IsEmpty())
}

func TestTypedListQueries(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		list, _ := newTestTypedList[int8](t)
		positive := func(v int8) bool { return v > 0 }

		assert.False(t, list.Contains(0))
		assert.False(t, list.Any(positive))
		assert.False(t, list.All(positive))
	})

	t.Run("multiple", func(t *testing.T) {
		list, allocator := newTestTypedList[int16](t, -300, 0, 300)

		assert.True(t, list.Contains(-300))
		assert.False(t, list.Contains(44))
		assert.True(t, list.Any(func(v int16) bool { return v > 299 }))
		assert.False(t, list.All(func(v int16) bool { return v >= 0 }))
		assert.True(t, list.All(func(v int16) bool { return v%100 == 0 }))

		assertTypedReleased(t, list, allocator)
	})
}

func TestTypedListStructuralCombinators(t *testing.T) {
	lte1 := func(v uint8) bool { return v <= 1 }
	gt1 := func(v uint8) bool { return v > 1 }

	t.Run("Filter", func(t *testing.T) {
		list, allocator := newTestTypedList[uint8](t, 0, 2, 0, 2)

		assert.True(t, list.Filter(lte1))
		assert.Equal(t, []uint8{0, 0}, typedValues(t, list))
		assert.False(t, list.Filter(lte1))

		assertTypedReleased(t, list, allocator)
	})

	t.Run("DropWhile", func(t *testing.T) {
		list, allocator := newTestTypedList[uint8](t, 0, 0, 2, 2, 0, 0)

		assert.True(t, list.DropWhile(lte1))
		assert.Equal(t, []uint8{2, 2, 0, 0}, typedValues(t, list))
		assert.True(t, list.DropWhile(gt1))
		assert.Equal(t, []uint8{0, 0}, typedValues(t, list))

		assertTypedReleased(t, list, allocator)
	})

	t.Run("TakeWhile", func(t *testing.T) {
		list, allocator := newTestTypedList[uint8](t, 1, 0, 2)

		assert.True(t, list.TakeWhile(lte1))
		assert.Equal(t, []uint8{1, 0}, typedValues(t, list))
		assert.False(t, list.TakeWhile(lte1))

		assertTypedReleased(t, list, allocator)
	})
}

func TestTypedListMap(t *testing.T) {
	type point struct {
		X, Y int32
	}

	list, allocator := newTestTypedList(t, point{1, 2}, point{-3, 4})

	require.NoError(t, list.Map(func(p point) point {
		return point{X: p.Y, Y: p.X * 10}
	}))

	assert.Equal(t, []point{{2, 10}, {4, -30}}, typedValues(t, list))
	assert.Equal(t, 2, allocator.Allocations())

	assertTypedReleased(t, list, allocator)
}

func TestTypedListFold(t *testing.T) {
	sub := func(a, b int8) int8 { return a - b }

	t.Run("empty", func(t *testing.T) {
		list, allocator := newTestTypedList[int8](t)

		result, err := list.Foldl(sub, 5)
		require.NoError(t, err)
		assert.EqualValues(t, 5, result)

		result, err = list.Foldr(sub, 5)
		require.NoError(t, err)
		assert.EqualValues(t, 5, result)

		assertTypedReleased(t, list, allocator)
	})

	t.Run("multiple", func(t *testing.T) {
		list, allocator := newTestTypedList[int8](t, 1, 2, 3)

		//(((0 - 1) - 2) - 3)
		result, err := list.Foldl(sub, 0)
		require.NoError(t, err)
		assert.EqualValues(t, -6, result)

		//1 - (2 - (3 - 0))
		result, err = list.Foldr(sub, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 2, result)

		assert.Equal(t, []int8{1, 2, 3}, typedValues(t, list))
		assertTypedReleased(t, list, allocator)
	})

	t.Run("accumulator of the same type", func(t *testing.T) {
		list, allocator := newTestTypedList[uint64](t, 1<<40, 3, 5)

		maximum, err := list.Foldl(func(acc, v uint64) uint64 { return max(acc, v) }, 0)
		require.NoError(t, err)
		assert.EqualValues(t, uint64(1<<40), maximum)

		assertTypedReleased(t, list, allocator)
	})
}

func TestTypedListZeroSizeElements(t *testing.T) {
	list, allocator := newTestTypedList(t, struct{}{}, struct{}{})

	assert.Equal(t, 0, list.Bytes().ElementSize())
	assert.Equal(t, 2, list.Len())
	assert.True(t, list.Contains(struct{}{}))

	_, ok := list.PopHead()
	assert.True(t, ok)

	assertTypedReleased(t, list, allocator)
}
