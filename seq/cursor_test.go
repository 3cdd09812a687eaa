package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openCursor[T any](t *testing.T, s *Seq[T]) *Cursor[T] {
	t.Helper()
	cur, err := s.Cursor()
	require.NoError(t, err, "Cursor")
	return cur
}

// From BeforeStart, Len calls to Advance visit each element once in order and
// end in AfterEnd.
func TestCursorRoundTrip(t *testing.T) {
	s := From(10, 20, 30, 40)
	cur := openCursor(t, s)
	defer cur.Close()

	require.Equal(t, BeforeStart, cur.State())
	_, err := cur.Current()
	require.ErrorIs(t, err, ErrInvalidCursor)

	var visited []int
	for range s.Len() {
		require.True(t, cur.Advance())
		p, err := cur.Current()
		require.NoError(t, err)
		visited = append(visited, *p)
	}
	require.Equal(t, []int{10, 20, 30, 40}, visited)
	require.Equal(t, At, cur.State())

	require.False(t, cur.Advance())
	require.Equal(t, AfterEnd, cur.State())
	require.False(t, cur.Advance(), "AfterEnd is terminal")
	require.Equal(t, AfterEnd, cur.State())

	_, err = cur.Current()
	require.ErrorIs(t, err, ErrInvalidCursor)
	_, err = cur.RemoveCurrent()
	require.ErrorIs(t, err, ErrInvalidCursor)
}

func TestCursorEmpty(t *testing.T) {
	var s Seq[int]
	cur := openCursor(t, &s)
	defer cur.Close()

	require.False(t, cur.Advance())
	require.Equal(t, AfterEnd, cur.State())
	require.False(t, cur.Retreat())
	require.Equal(t, BeforeStart, cur.State())
	require.ErrorIs(t, cur.Seek(0), ErrOutOfRange)
}

// Inserting v while At(i) grows Len by one; v is at i and the old element
// at i moves to i+1.
func TestCursorInsertBefore(t *testing.T) {
	s := From("a", "b", "c")
	cur := openCursor(t, s)

	require.NoError(t, cur.Seek(1))
	require.NoError(t, cur.InsertBefore("v"))
	require.Equal(t, 4, cur.Len())

	i, ok := cur.Index()
	require.True(t, ok)
	require.Equal(t, 2, i, "cursor follows its element")
	val, ok := cur.Value()
	require.True(t, ok)
	require.Equal(t, "b", val)
	cur.Close()

	v, ok := s.At(1)
	require.True(t, ok)
	require.Equal(t, "v", v)
	v, ok = s.At(2)
	require.True(t, ok)
	require.Equal(t, "b", v)
	require.Equal(t, []string{"a", "v", "b", "c"}, contents(t, s))
}

func TestCursorInsertAtEdges(t *testing.T) {
	s := From(2)
	cur := openCursor(t, s)

	// BeforeStart: new element comes first and is visited next
	require.NoError(t, cur.InsertBefore(1))
	require.Equal(t, BeforeStart, cur.State())
	require.NoError(t, cur.InsertAfter(0))
	require.Equal(t, BeforeStart, cur.State())
	require.True(t, cur.Advance())
	val, _ := cur.Value()
	require.Equal(t, 0, val)

	// At: InsertAfter keeps the position
	require.NoError(t, cur.InsertAfter(5))
	i, _ := cur.Index()
	require.Equal(t, 0, i)

	// AfterEnd: InsertBefore appends, InsertAfter is invalid
	for cur.Advance() {
	}
	require.Equal(t, AfterEnd, cur.State())
	require.NoError(t, cur.InsertBefore(9))
	require.Equal(t, AfterEnd, cur.State())
	require.ErrorIs(t, cur.InsertAfter(10), ErrInvalidCursor)
	cur.Close()

	require.Equal(t, []int{0, 5, 1, 2, 9}, contents(t, s))
}

// Removing while At(i) shrinks Len by one and shifts [i+1, Len) down by one
// keeping their order.
func TestCursorRemoveCurrent(t *testing.T) {
	s := From(0, 1, 2, 3, 4)
	cur := openCursor(t, s)

	require.NoError(t, cur.Seek(1))
	val, err := cur.RemoveCurrent()
	require.NoError(t, err)
	require.Equal(t, 1, val)
	require.Equal(t, 4, cur.Len())
	require.Equal(t, At, cur.State())
	i, _ := cur.Index()
	require.Equal(t, 1, i)
	cur.Close()
	require.Equal(t, []int{0, 2, 3, 4}, contents(t, s))

	cur = openCursor(t, s)
	defer cur.Close()
	require.NoError(t, cur.Seek(3))
	val, err = cur.RemoveCurrent()
	require.NoError(t, err)
	require.Equal(t, 4, val)
	require.Equal(t, AfterEnd, cur.State(), "removing the last element")
	_, ok := cur.Index()
	require.False(t, ok)
}

func TestCursorFilterInPlace(t *testing.T) {
	s := From(1, 2, 3, 4, 5, 6, 7, 8)
	cur := openCursor(t, s)

	cur.Advance()
	for cur.State() == At {
		val, _ := cur.Value()
		if val%2 == 0 {
			_, err := cur.RemoveCurrent()
			require.NoError(t, err)
			continue
		}
		require.NoError(t, cur.InsertAfter(val*10))
		cur.Advance()
		cur.Advance()
	}
	cur.Close()

	require.Equal(t, []int{1, 10, 3, 30, 5, 50, 7, 70}, contents(t, s))
}

func TestCursorRetreat(t *testing.T) {
	s := From("a", "b", "c")
	cur := openCursor(t, s)
	defer cur.Close()

	for cur.Advance() {
	}
	var back []string
	for cur.Retreat() {
		val, _ := cur.Value()
		back = append(back, val)
	}
	require.Equal(t, []string{"c", "b", "a"}, back)
	require.Equal(t, BeforeStart, cur.State())
	require.False(t, cur.Retreat())

	require.True(t, cur.Advance())
	require.NoError(t, cur.Set("A"))
	cur.Reset()
	require.Equal(t, BeforeStart, cur.State())
	require.ErrorIs(t, cur.Set("x"), ErrInvalidCursor)

	cur.Close()
	cur.Reset()
	require.Equal(t, AfterEnd, cur.State(), "Reset does not revive a closed cursor")
}

func TestCursorExcludesEverything(t *testing.T) {
	s := From(1, 2, 3)

	view, err := s.Get(0)
	require.NoError(t, err)
	_, err = s.Cursor()
	require.ErrorIs(t, err, ErrBorrowConflict)
	view.Release()

	cur := openCursor(t, s)
	require.True(t, cur.Live())

	_, err = s.Get(0)
	assert.ErrorIs(t, err, ErrBorrowConflict)
	_, err = s.GetMut(1)
	assert.ErrorIs(t, err, ErrBorrowConflict)
	_, _, err = s.SplitAtMut(1)
	assert.ErrorIs(t, err, ErrBorrowConflict)
	_, err = s.Iter()
	assert.ErrorIs(t, err, ErrBorrowConflict)
	_, err = s.Cursor()
	assert.ErrorIs(t, err, ErrBorrowConflict)
	assert.ErrorIs(t, s.Push(4), ErrBorrowConflict)

	// structural changes go through the cursor instead
	require.NoError(t, cur.InsertBefore(0))

	cur.Close()
	cur.Release()
	require.False(t, cur.Live())
	require.Equal(t, []int{0, 1, 2, 3}, contents(t, s))
}

func TestCursorClosed(t *testing.T) {
	s := From(1)
	cur := openCursor(t, s)
	require.True(t, cur.Advance())
	cur.Close()
	require.Equal(t, AfterEnd, cur.State(), "a closed cursor reads as spent")
	cur.Close()
	require.Equal(t, AfterEnd, cur.State())

	require.False(t, cur.Advance())
	require.False(t, cur.Retreat())
	require.Zero(t, cur.Len())
	_, err := cur.Current()
	require.ErrorIs(t, err, ErrClosed)
	_, ok := cur.Value()
	require.False(t, ok)
	_, ok = cur.Index()
	require.False(t, ok)
	require.ErrorIs(t, cur.Set(2), ErrClosed)
	require.ErrorIs(t, cur.InsertBefore(2), ErrClosed)
	require.ErrorIs(t, cur.InsertAfter(2), ErrClosed)
	require.ErrorIs(t, cur.Seek(0), ErrClosed)
	_, err = cur.RemoveCurrent()
	require.ErrorIs(t, err, ErrClosed)

	require.Equal(t, []int{1}, contents(t, s))
}

func TestStateString(t *testing.T) {
	require.Equal(t, "before-start", BeforeStart.String())
	require.Equal(t, "at", At.String())
	require.Equal(t, "after-end", AfterEnd.String())
	require.Equal(t, "invalid", State(9).String())
}
