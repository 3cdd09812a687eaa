// Package vec defines the shared contracts of a contiguous, growable sequence
// whose views, iterators and cursors are checked against a borrow ledger.
//
// The implementation lives in package seq. Every handle that grants access to
// elements (views, iterators, cursors) is a Borrow: it is live from creation
// until Release, and while it is live the owning sequence refuses any access
// that would alias it.
package vec

// Borrow is a live permission to access part (or all) of a sequence.
type Borrow interface {
	// Live reports whether the borrow still grants access.
	Live() bool

	// Release gives the permission back to the owning sequence.
	// Calling Release more than once has no effect.
	Release()
}
