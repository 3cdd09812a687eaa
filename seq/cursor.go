package seq

import (
	"github.com/dacapoday/vec"
	"github.com/dacapoday/vec/internal/borrow"
)

// State is the position of a Cursor.
type State uint8

const (
	BeforeStart State = iota
	At
	AfterEnd
)

func (state State) String() string {
	switch state {
	case BeforeStart:
		return "before-start"
	case At:
		return "at"
	case AfterEnd:
		return "after-end"
	default:
		return "invalid"
	}
}

// Cursor returns a cursor positioned before the first element.
// The cursor borrows the whole sequence exclusively, so it requires that no
// other borrow is live and refuses every other borrow until Close.
//
// Important: Caller must call Close to release the borrow.
func (seq *Seq[T]) Cursor() (*Cursor[T], error) {
	token, err := seq.ledger.AcquireWhole()
	if err != nil {
		return nil, err
	}
	return &Cursor[T]{seq: seq, token: token, state: BeforeStart}, nil
}

// Cursor is a stateful traversal that can insert and remove elements at its
// position. Unlike Iter, it owns the whole sequence rather than a fixed range:
// indices are renumbered by its own insertions and removals, and no other
// reference can observe them mid-way.
//
// The cursor exposes at most one element at a time (Current). Operations that
// need a current element return ErrInvalidCursor in BeforeStart and AfterEnd.
// After Close the cursor reads AfterEnd and every operation returns ErrClosed
// or false.
type Cursor[T any] struct {
	seq   *Seq[T]
	token *borrow.Token
	state State
	index int
}

var _ vec.Borrow = (*Cursor[int])(nil)

// State returns the cursor's position kind.
func (cur *Cursor[T]) State() State {
	return cur.state
}

// Index returns the current index; ok is false unless the state is At.
func (cur *Cursor[T]) Index() (i int, ok bool) {
	if cur.token == nil || cur.state != At {
		return
	}
	return cur.index, true
}

// Len returns the current length of the sequence.
func (cur *Cursor[T]) Len() int {
	if cur.token == nil {
		return 0
	}
	return len(cur.seq.buf)
}

// Advance moves one element forward. From BeforeStart it goes to the first
// element; past the last element it goes to AfterEnd. It returns true if the
// cursor ends At an element; AfterEnd is terminal for Advance.
func (cur *Cursor[T]) Advance() bool {
	if cur.token == nil {
		return false
	}
	switch cur.state {
	case BeforeStart:
		cur.index = 0
	case At:
		cur.index++
	case AfterEnd:
		return false
	}
	return cur.settle()
}

// Retreat moves one element backward, mirroring Advance. BeforeStart is
// terminal for Retreat.
func (cur *Cursor[T]) Retreat() bool {
	if cur.token == nil {
		return false
	}
	switch cur.state {
	case BeforeStart:
		return false
	case At:
		cur.index--
	case AfterEnd:
		cur.index = len(cur.seq.buf) - 1
	}
	if cur.index < 0 {
		cur.state, cur.index = BeforeStart, 0
		return false
	}
	cur.state = At
	return true
}

// Reset moves the cursor back to BeforeStart.
func (cur *Cursor[T]) Reset() {
	if cur.token != nil {
		cur.state, cur.index = BeforeStart, 0
	}
}

// Seek moves the cursor to the element at i.
func (cur *Cursor[T]) Seek(i int) error {
	if cur.token == nil {
		return ErrClosed
	}
	if i < 0 || i >= len(cur.seq.buf) {
		return ErrOutOfRange
	}
	cur.state, cur.index = At, i
	return nil
}

// Current returns a pointer to the current element.
// The pointer is valid until the next structural change through the cursor
// or Close.
func (cur *Cursor[T]) Current() (*T, error) {
	if err := cur.check(); err != nil {
		return nil, err
	}
	return &cur.seq.buf[cur.index], nil
}

// Value returns the current element; ok is false unless the state is At.
func (cur *Cursor[T]) Value() (val T, ok bool) {
	if cur.check() != nil {
		return
	}
	return cur.seq.buf[cur.index], true
}

// Set overwrites the current element.
func (cur *Cursor[T]) Set(val T) error {
	if err := cur.check(); err != nil {
		return err
	}
	cur.seq.buf[cur.index] = val
	return nil
}

// InsertBefore inserts val immediately before the cursor's position.
//
//   - At(i): val takes index i, the cursor follows its element to At(i+1).
//   - BeforeStart: val becomes the first element; the cursor stays
//     BeforeStart, so val is the next element visited.
//   - AfterEnd: val is appended; the cursor stays AfterEnd.
func (cur *Cursor[T]) InsertBefore(val T) error {
	if cur.token == nil {
		return ErrClosed
	}
	switch cur.state {
	case BeforeStart:
		cur.seq.insert(0, val)
	case At:
		cur.seq.insert(cur.index, val)
		cur.index++
	case AfterEnd:
		cur.seq.insert(len(cur.seq.buf), val)
	}
	return nil
}

// InsertAfter inserts val immediately after the cursor's position.
//
//   - At(i): val takes index i+1, the cursor stays At(i).
//   - BeforeStart: val becomes the first element; the cursor stays BeforeStart.
//   - AfterEnd: nothing follows AfterEnd, ErrInvalidCursor.
func (cur *Cursor[T]) InsertAfter(val T) error {
	if cur.token == nil {
		return ErrClosed
	}
	switch cur.state {
	case BeforeStart:
		cur.seq.insert(0, val)
	case At:
		cur.seq.insert(cur.index+1, val)
	case AfterEnd:
		return ErrInvalidCursor
	}
	return nil
}

// RemoveCurrent removes and returns the current element. The cursor moves to
// the element that followed it (same index), or AfterEnd if it was the last.
func (cur *Cursor[T]) RemoveCurrent() (val T, err error) {
	if err = cur.check(); err != nil {
		return
	}
	val = cur.seq.remove(cur.index)
	cur.settle()
	return
}

// Live reports whether the cursor still holds its borrow.
func (cur *Cursor[T]) Live() bool { return cur.token != nil }

// Release is Close.
func (cur *Cursor[T]) Release() { cur.Close() }

// Close releases the borrow of the sequence and leaves the cursor AfterEnd.
// Extra calls are no-ops.
func (cur *Cursor[T]) Close() {
	if cur.token != nil {
		cur.token.Release()
		cur.token = nil
		cur.state, cur.index = AfterEnd, 0
	}
}

func (cur *Cursor[T]) check() error {
	if cur.token == nil {
		return ErrClosed
	}
	if cur.state != At {
		return ErrInvalidCursor
	}
	return nil
}

// settle sets At(index) if index is a live slot, AfterEnd otherwise.
func (cur *Cursor[T]) settle() bool {
	if cur.index < len(cur.seq.buf) {
		cur.state = At
		return true
	}
	cur.state, cur.index = AfterEnd, 0
	return false
}
