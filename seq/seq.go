// Package seq provides Seq, an owned, contiguous, growable sequence with four
// ways in: checked random access, a disjoint mutable split, single-pass
// iterators, and a cursor that can insert and remove while it traverses.
//
// Every way in is a borrow recorded in the sequence's ledger. Borrows are
// checked when they are acquired, never lazily during traversal:
//   - any number of shared borrows (View, Iter) may overlap;
//   - an exclusive borrow (MutView, IterMut) may not overlap any other borrow;
//   - a Cursor borrows the whole sequence and excludes everything else;
//   - anything that grows, shrinks or moves elements requires that no borrow
//     is live at all.
//
// A refused borrow returns ErrBorrowConflict and changes nothing.
// Borrows must be released (Release or Close) to let other access through.
//
// Example usage:
//
//	s := seq.From(1, 2, 3, 4, 5)
//	left, right, _ := s.SplitAtMut(2)
//	left.Set(0, 9)
//	left.Release()
//	right.Release()
//	// s now holds [9 2 3 4 5]
//
// Seq is not safe for concurrent use. The two halves of a split are
// independent and may be used from different goroutines.
package seq

import (
	"github.com/dacapoday/vec/internal/borrow"
)

// Seq is an owned, contiguous, growable sequence of T.
// The zero value is an empty sequence ready to use. A Seq must not be copied.
type Seq[T any] struct {
	buf    []T
	ledger borrow.Ledger
}

// New returns an empty sequence configured by opt, which may implement
// Capacity and Logger. opt may be nil.
func New[T any](opt any) *Seq[T] {
	seq := new(Seq[T])
	if n := getCapacity(opt); n > 0 {
		seq.buf = make([]T, 0, n)
	}
	if log := getLogger(opt); log != nil {
		seq.ledger.SetLogger(*log)
	}
	return seq
}

// From returns a sequence holding a copy of vals.
func From[T any](vals ...T) *Seq[T] {
	seq := new(Seq[T])
	seq.buf = append(make([]T, 0, len(vals)), vals...)
	return seq
}

// Len returns the number of elements.
func (seq *Seq[T]) Len() int {
	return len(seq.buf)
}

// Cap returns the number of allocated slots.
func (seq *Seq[T]) Cap() int {
	return cap(seq.buf)
}

// Empty returns true if the sequence has no elements.
func (seq *Seq[T]) Empty() bool {
	return len(seq.buf) == 0
}

// Borrows returns the number of live borrows.
func (seq *Seq[T]) Borrows() int {
	return seq.ledger.Live()
}

// At returns the element at i. ok is false if i is out of range or the slot
// is currently borrowed exclusively.
func (seq *Seq[T]) At(i int) (val T, ok bool) {
	view, err := seq.Get(i)
	if err != nil {
		return
	}
	val, ok = view.At(0)
	view.Release()
	return
}

// ToSlice returns a copy of the elements.
func (seq *Seq[T]) ToSlice() ([]T, error) {
	token, err := seq.ledger.Acquire(0, len(seq.buf), borrow.Shared)
	if err != nil {
		return nil, err
	}
	defer token.Release()
	return append([]T(nil), seq.buf...), nil
}

// Push appends vals to the end.
func (seq *Seq[T]) Push(vals ...T) error {
	if err := seq.ledger.CheckIdle("push"); err != nil {
		return err
	}
	seq.buf = append(seq.buf, vals...)
	return nil
}

// Pop removes and returns the last element.
func (seq *Seq[T]) Pop() (val T, err error) {
	if err = seq.ledger.CheckIdle("pop"); err != nil {
		return
	}
	if len(seq.buf) == 0 {
		err = ErrOutOfRange
		return
	}
	return seq.remove(len(seq.buf) - 1), nil
}

// Insert inserts val at index i, shifting the elements at or after i one
// slot later. i may equal Len, which appends.
func (seq *Seq[T]) Insert(i int, val T) error {
	if err := seq.ledger.CheckIdle("insert"); err != nil {
		return err
	}
	if i < 0 || i > len(seq.buf) {
		return ErrOutOfRange
	}
	seq.insert(i, val)
	return nil
}

// Remove removes and returns the element at i, shifting the elements after
// it one slot earlier.
func (seq *Seq[T]) Remove(i int) (val T, err error) {
	if err = seq.ledger.CheckIdle("remove"); err != nil {
		return
	}
	if i < 0 || i >= len(seq.buf) {
		err = ErrOutOfRange
		return
	}
	return seq.remove(i), nil
}

// Truncate drops every element at or after n. n greater than Len is a no-op.
func (seq *Seq[T]) Truncate(n int) error {
	if err := seq.ledger.CheckIdle("truncate"); err != nil {
		return err
	}
	if n < 0 {
		return ErrOutOfRange
	}
	if n < len(seq.buf) {
		clear(seq.buf[n:])
		seq.buf = seq.buf[:n]
	}
	return nil
}

// Clear drops every element, keeping the allocation.
func (seq *Seq[T]) Clear() error {
	return seq.Truncate(0)
}

// Reserve makes room for at least n more elements without reallocation.
func (seq *Seq[T]) Reserve(n int) error {
	if err := seq.ledger.CheckIdle("reserve"); err != nil {
		return err
	}
	if n < 0 {
		return ErrOutOfRange
	}
	if cap(seq.buf)-len(seq.buf) < n {
		buf := make([]T, len(seq.buf), len(seq.buf)+n)
		copy(buf, seq.buf)
		seq.buf = buf
	}
	return nil
}

// Shrink releases unused capacity.
func (seq *Seq[T]) Shrink() error {
	if err := seq.ledger.CheckIdle("shrink"); err != nil {
		return err
	}
	if cap(seq.buf) > len(seq.buf) {
		if len(seq.buf) == 0 {
			seq.buf = nil
		} else {
			seq.buf = append([]T(nil), seq.buf...)
		}
	}
	return nil
}

func (seq *Seq[T]) insert(i int, val T) {
	count := len(seq.buf)

	if i == count {
		seq.buf = append(seq.buf, val)
		return
	}

	var zero T
	seq.buf = append(seq.buf, zero)
	copy(seq.buf[i+1:], seq.buf[i:count])
	seq.buf[i] = val
}

func (seq *Seq[T]) remove(i int) (val T) {
	val = seq.buf[i]
	last := len(seq.buf) - 1
	if i != last {
		copy(seq.buf[i:], seq.buf[i+1:])
	}
	var zero T
	seq.buf[last] = zero
	seq.buf = seq.buf[:last]
	return
}

// window returns buf[start:end] with its capacity clipped, so appends through
// the window can never reach a neighbouring borrow.
func (seq *Seq[T]) window(start, end int) []T {
	return seq.buf[start:end:end]
}
