package seq

import (
	"github.com/dacapoday/vec"
	"github.com/dacapoday/vec/internal/borrow"
	"github.com/dacapoday/vec/iterator"
)

// Iter returns an iterator over all elements in index order.
// It holds a shared borrow of [0, Len) until Close.
//
// Important: Caller must call Close to release the borrow.
func (seq *Seq[T]) Iter() (*Iter[T], error) {
	token, err := seq.ledger.Acquire(0, len(seq.buf), borrow.Shared)
	if err != nil {
		return nil, err
	}
	return &Iter[T]{items: seq.window(0, len(seq.buf)), token: token}, nil
}

// IterMut returns an iterator yielding a pointer to each element in index
// order. It holds an exclusive borrow of [0, Len) until Close.
//
// Important: Caller must call Close to release the borrow.
func (seq *Seq[T]) IterMut() (*IterMut[T], error) {
	token, err := seq.ledger.Acquire(0, len(seq.buf), borrow.Exclusive)
	if err != nil {
		return nil, err
	}
	return &IterMut[T]{items: seq.window(0, len(seq.buf)), token: token}, nil
}

// Values implements iter.Seq[T], iterating all elements in index order.
// The sequence is borrowed for the duration of the loop; if it cannot be
// borrowed the loop body never runs.
func (seq *Seq[T]) Values(yield func(val T) bool) {
	it, err := seq.Iter()
	if err != nil {
		return
	}
	for val := range iterator.Seq[T](it) {
		if !yield(val) {
			return
		}
	}
}

// Items implements iter.Seq2[int, T], iterating all index-element pairs.
// Same borrowing rules as Values.
func (seq *Seq[T]) Items(yield func(i int, val T) bool) {
	it, err := seq.Iter()
	if err != nil {
		return
	}
	defer it.Close()
	for i := 0; ; i++ {
		val, ok := it.Next()
		if !ok || !yield(i, val) {
			return
		}
	}
}

// Iter is a single-pass, non-restartable iterator over a fixed range.
// Each Next is one step with no bounds re-validation: the range cannot change
// while the iterator holds its borrow.
type Iter[T any] struct {
	items []T
	next  int
	token *borrow.Token
}

var (
	_ iterator.Iterator[int]  = (*Iter[int])(nil)
	_ iterator.Iterator[*int] = (*IterMut[int])(nil)
	_ vec.Borrow              = (*Iter[int])(nil)
	_ vec.Borrow              = (*IterMut[int])(nil)
)

// Next returns the next element, or false once exhausted or closed.
func (it *Iter[T]) Next() (val T, ok bool) {
	if it.next >= len(it.items) {
		return
	}
	val = it.items[it.next]
	it.next++
	return val, true
}

// Remaining returns the number of elements not yet yielded.
func (it *Iter[T]) Remaining() int {
	return len(it.items) - it.next
}

// Live reports whether the iterator still holds its borrow.
func (it *Iter[T]) Live() bool { return it.token != nil }

// Release is Close.
func (it *Iter[T]) Release() { it.Close() }

// Close releases the borrow. The iterator is exhausted afterwards.
func (it *Iter[T]) Close() {
	if it.token != nil {
		it.token.Release()
		it.token = nil
		it.items = nil
		it.next = 0
	}
}

// IterMut is the exclusive counterpart of Iter. Every pointer it yields is to
// a distinct element, and all of them stay valid until Close.
type IterMut[T any] struct {
	items []T
	next  int
	token *borrow.Token
}

// Next returns a pointer to the next element, or false once exhausted or closed.
func (it *IterMut[T]) Next() (ptr *T, ok bool) {
	if it.next >= len(it.items) {
		return
	}
	ptr = &it.items[it.next]
	it.next++
	return ptr, true
}

// Remaining returns the number of elements not yet yielded.
func (it *IterMut[T]) Remaining() int {
	return len(it.items) - it.next
}

// Live reports whether the iterator still holds its borrow.
func (it *IterMut[T]) Live() bool { return it.token != nil }

// Release is Close.
func (it *IterMut[T]) Release() { it.Close() }

// Close releases the borrow. The iterator is exhausted afterwards.
func (it *IterMut[T]) Close() {
	if it.token != nil {
		it.token.Release()
		it.token = nil
		it.items = nil
		it.next = 0
	}
}
