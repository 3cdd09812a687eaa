package iterator

// Filter skips the values of an underlying iterator for which keep returns
// false. Other methods are forwarded unchanged.
type Filter[T any] struct {
	it   Iterator[T]
	keep func(T) bool
}

var _ Iterator[int] = (*Filter[int])(nil)

// Load initializes the filter over it.
func (iter *Filter[T]) Load(it Iterator[T], keep func(T) bool) {
	iter.it, iter.keep = it, keep
}

// Next returns the next value accepted by keep.
func (iter *Filter[T]) Next() (v T, ok bool) {
	if iter.it == nil {
		return
	}
	for {
		if v, ok = iter.it.Next(); !ok {
			return
		}
		if iter.keep(v) {
			return
		}
	}
}

// Close closes the underlying iterator.
func (iter *Filter[T]) Close() {
	if iter.it != nil {
		iter.it.Close()
	}
}
