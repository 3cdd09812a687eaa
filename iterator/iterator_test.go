package iterator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sliceIter[T any] struct {
	vals   []T
	closed int
}

func (it *sliceIter[T]) Next() (v T, ok bool) {
	if it.closed > 0 || len(it.vals) == 0 {
		return
	}
	v, it.vals = it.vals[0], it.vals[1:]
	return v, true
}

func (it *sliceIter[T]) Close() { it.closed++ }

func over[T any](vals ...T) *sliceIter[T] {
	return &sliceIter[T]{vals: vals}
}

func TestSeqClosesOnBreak(t *testing.T) {
	it := over(1, 2, 3, 4)

	var got []int
	for v := range Seq[int](it) {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	require.Equal(t, []int{1, 2}, got)
	require.Equal(t, 1, it.closed)

	_, ok := it.Next()
	require.False(t, ok, "closed iterator stays exhausted")
}

func TestCollectCount(t *testing.T) {
	it := over("a", "b", "c")
	require.Equal(t, []string{"a", "b", "c"}, Collect[string](it))
	require.Equal(t, 1, it.closed)

	require.Equal(t, 3, Count[int](over(7, 8, 9)))
	require.Zero(t, Count[int](over[int]()))
	require.Nil(t, Collect[int](over[int]()))
}

func TestFilter(t *testing.T) {
	var filter Filter[int]
	filter.Load(over(1, 2, 3, 4, 5, 6), func(v int) bool { return v%2 == 0 })
	require.Equal(t, []int{2, 4, 6}, Collect[int](&filter))

	var zero Filter[int]
	_, ok := zero.Next()
	require.False(t, ok)
	zero.Close()
}
