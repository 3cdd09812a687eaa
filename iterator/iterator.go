// Package iterator defines the forward iterator contract shared by the
// sequence iterators, plus adapters over it.
package iterator

import "iter"

// Iterator is a single-pass cursor over a finite run of values.
// It cannot be restarted: a fresh iterator must be created to traverse again.
//
// Usage:
//
//	it, err := s.Iter()
//	if err != nil {
//	    // handle error
//	}
//	defer it.Close()
//	for v, ok := it.Next(); ok; v, ok = it.Next() {
//	    // process v
//	}
type Iterator[T any] interface {
	// Next returns the next value and true, or the zero value and false once
	// the iterator is exhausted or closed. After returning false it keeps
	// returning false.
	Next() (T, bool)

	// Close releases whatever the iterator holds. Calling Close more than
	// once has no effect.
	Close()
}

// Seq adapts it to a range-over-func sequence.
// The iterator is closed when the loop ends, including on early break.
func Seq[T any](it Iterator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		defer it.Close()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Collect drains it into a slice and closes it.
func Collect[T any](it Iterator[T]) (vals []T) {
	for v := range Seq(it) {
		vals = append(vals, v)
	}
	return
}

// Count drains it and closes it, returning the number of values seen.
func Count[T any](it Iterator[T]) (n int) {
	for range Seq(it) {
		n++
	}
	return
}
