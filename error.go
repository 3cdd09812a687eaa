package vec

import "errors"

var (
	ErrOutOfRange     = errors.New("out of range")
	ErrInvalidCursor  = errors.New("invalid cursor state")
	ErrBorrowConflict = errors.New("borrow conflict")
	ErrClosed         = errors.New("closed")
	ErrUnsupported    = errors.New("unsupported")
)
