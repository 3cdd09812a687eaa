package seq

import (
	"github.com/dacapoday/vec"
	"github.com/dacapoday/vec/internal/borrow"
)

// Get borrows the element at i for reading.
// It fails with ErrOutOfRange if i is not in [0, Len), or ErrBorrowConflict
// if the element is borrowed exclusively.
func (seq *Seq[T]) Get(i int) (View[T], error) {
	if i < 0 || i >= len(seq.buf) {
		return View[T]{}, ErrOutOfRange
	}
	token, err := seq.ledger.Acquire(i, i+1, borrow.Shared)
	if err != nil {
		return View[T]{}, err
	}
	return View[T]{&view[T]{seq: seq, items: seq.window(i, i+1), token: token}}, nil
}

// GetMut borrows the element at i exclusively.
// It fails with ErrOutOfRange if i is not in [0, Len), or ErrBorrowConflict
// if the element is borrowed in any way.
func (seq *Seq[T]) GetMut(i int) (MutView[T], error) {
	if i < 0 || i >= len(seq.buf) {
		return MutView[T]{}, ErrOutOfRange
	}
	token, err := seq.ledger.Acquire(i, i+1, borrow.Exclusive)
	if err != nil {
		return MutView[T]{}, err
	}
	return MutView[T]{&view[T]{seq: seq, items: seq.window(i, i+1), token: token}}, nil
}

// View borrows [start, end) for reading.
func (seq *Seq[T]) View(start, end int) (View[T], error) {
	if start < 0 || start > end || end > len(seq.buf) {
		return View[T]{}, ErrOutOfRange
	}
	token, err := seq.ledger.Acquire(start, end, borrow.Shared)
	if err != nil {
		return View[T]{}, err
	}
	return View[T]{&view[T]{seq: seq, items: seq.window(start, end), token: token}}, nil
}

// MutView borrows [start, end) exclusively.
func (seq *Seq[T]) MutView(start, end int) (MutView[T], error) {
	if start < 0 || start > end || end > len(seq.buf) {
		return MutView[T]{}, ErrOutOfRange
	}
	token, err := seq.ledger.Acquire(start, end, borrow.Exclusive)
	if err != nil {
		return MutView[T]{}, err
	}
	return MutView[T]{&view[T]{seq: seq, items: seq.window(start, end), token: token}}, nil
}

// SplitAtMut borrows the whole sequence exclusively as two views over
// [0, mid) and [mid, Len). mid must be in [0, Len].
//
// Both halves may be mutated independently, including from different
// goroutines. They never alias: the bound check on mid is the only check made.
func (seq *Seq[T]) SplitAtMut(mid int) (left, right MutView[T], err error) {
	if mid < 0 || mid > len(seq.buf) {
		err = ErrOutOfRange
		return
	}
	whole, err := seq.MutView(0, len(seq.buf))
	if err != nil {
		return
	}
	return whole.SplitAt(mid)
}

// View is a shared borrow of a contiguous range of a Seq.
// The zero View is released.
type View[T any] struct {
	view *view[T]
}

// MutView is an exclusive borrow of a contiguous range of a Seq.
// The zero MutView is released.
type MutView[T any] struct {
	view *view[T]
}

var (
	_ vec.Borrow = View[int]{}
	_ vec.Borrow = MutView[int]{}
)

type view[T any] struct {
	seq   *Seq[T]
	items []T
	token *borrow.Token
}

func (v *view[T]) live() bool {
	return v != nil && v.token != nil
}

func (v *view[T]) release() {
	if v.live() {
		v.token.Release()
		v.token = nil
		v.items = nil
	}
}

func (v *view[T]) len() int {
	if !v.live() {
		return 0
	}
	return len(v.items)
}

func (v *view[T]) bounds() (start, end int) {
	if !v.live() {
		return
	}
	return v.token.Start(), v.token.End()
}

func (v *view[T]) at(i int) (val T, ok bool) {
	if !v.live() || i < 0 || i >= len(v.items) {
		return
	}
	return v.items[i], true
}

func (v *view[T]) first() (val T) {
	val, _ = v.at(0)
	return
}

func (v *view[T]) copyTo(dst []T) int {
	if !v.live() {
		return 0
	}
	return copy(dst, v.items)
}

// iter borrows the view's range again, shared, for an iterator that may
// outlive the view.
func (v *view[T]) iter() (*Iter[T], error) {
	if !v.live() {
		return nil, ErrClosed
	}
	token, err := v.seq.ledger.Acquire(v.token.Start(), v.token.End(), borrow.Shared)
	if err != nil {
		return nil, err
	}
	return &Iter[T]{items: v.items, token: token}, nil
}

// Live reports whether the view can still be read.
func (v View[T]) Live() bool { return v.view.live() }

// Release ends the borrow. Extra calls are no-ops.
func (v View[T]) Release() { v.view.release() }

// Len returns the number of elements in the view, 0 once released.
func (v View[T]) Len() int { return v.view.len() }

// Range returns the view's bounds as indices into the Seq.
func (v View[T]) Range() (start, end int) { return v.view.bounds() }

// At returns the i-th element of the view.
// ok is false if i is out of the view or the view is released.
func (v View[T]) At(i int) (T, bool) { return v.view.at(i) }

// Value returns the first element of the view: for views returned by Get,
// the borrowed element. It returns the zero value for an empty or released view.
func (v View[T]) Value() T { return v.view.first() }

// CopyTo copies the view's elements into dst and returns the number copied.
func (v View[T]) CopyTo(dst []T) int { return v.view.copyTo(dst) }

// Iter returns an iterator over the view's elements. The iterator holds its
// own shared borrow and stays valid after the view is released.
func (v View[T]) Iter() (*Iter[T], error) { return v.view.iter() }

// Live reports whether the view can still be used.
func (v MutView[T]) Live() bool { return v.view.live() }

// Release ends the borrow. Extra calls are no-ops.
func (v MutView[T]) Release() { v.view.release() }

// Len returns the number of elements in the view, 0 once released.
func (v MutView[T]) Len() int { return v.view.len() }

// Range returns the view's bounds as indices into the Seq.
func (v MutView[T]) Range() (start, end int) { return v.view.bounds() }

// At returns the i-th element of the view.
func (v MutView[T]) At(i int) (T, bool) { return v.view.at(i) }

// Value returns the first element of the view.
func (v MutView[T]) Value() T { return v.view.first() }

// CopyTo copies the view's elements into dst and returns the number copied.
func (v MutView[T]) CopyTo(dst []T) int { return v.view.copyTo(dst) }

// Set overwrites the i-th element of the view.
func (v MutView[T]) Set(i int, val T) error {
	if !v.view.live() {
		return ErrClosed
	}
	if i < 0 || i >= len(v.view.items) {
		return ErrOutOfRange
	}
	v.view.items[i] = val
	return nil
}

// SetValue overwrites the first element of the view.
func (v MutView[T]) SetValue(val T) error {
	return v.Set(0, val)
}

// Ptr returns a pointer to the i-th element of the view.
// The pointer must not be used after the view is released.
func (v MutView[T]) Ptr(i int) (*T, bool) {
	if !v.view.live() || i < 0 || i >= len(v.view.items) {
		return nil, false
	}
	return &v.view.items[i], true
}

// Swap exchanges the i-th and j-th elements of the view.
func (v MutView[T]) Swap(i, j int) error {
	if !v.view.live() {
		return ErrClosed
	}
	n := len(v.view.items)
	if i < 0 || i >= n || j < 0 || j >= n {
		return ErrOutOfRange
	}
	items := v.view.items
	items[i], items[j] = items[j], items[i]
	return nil
}

// Fill overwrites every element of the view with val.
func (v MutView[T]) Fill(val T) error {
	if !v.view.live() {
		return ErrClosed
	}
	for i := range v.view.items {
		v.view.items[i] = val
	}
	return nil
}

// SplitAt consumes the view and returns two exclusive views over its first
// mid elements and the rest. The receiver is released afterwards; either half
// may be split again.
func (v MutView[T]) SplitAt(mid int) (left, right MutView[T], err error) {
	if !v.view.live() {
		err = ErrClosed
		return
	}
	if mid < 0 || mid > len(v.view.items) {
		err = ErrOutOfRange
		return
	}

	ltoken, rtoken, err := v.view.token.Split(mid)
	if err != nil {
		return
	}

	items := v.view.items
	seq := v.view.seq
	v.view.token = nil
	v.view.items = nil

	left = MutView[T]{&view[T]{seq: seq, items: items[:mid:mid], token: ltoken}}
	right = MutView[T]{&view[T]{seq: seq, items: items[mid:], token: rtoken}}
	return
}

// IterMut consumes the view and returns an iterator yielding pointers to its
// elements. The view's borrow moves to the iterator.
func (v MutView[T]) IterMut() (*IterMut[T], error) {
	if !v.view.live() {
		return nil, ErrClosed
	}
	token, err := v.view.token.Transfer()
	if err != nil {
		return nil, err
	}
	items := v.view.items
	v.view.token = nil
	v.view.items = nil
	return &IterMut[T]{items: items, token: token}, nil
}
