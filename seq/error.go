package seq

import (
	"github.com/dacapoday/vec"
)

var (
	ErrOutOfRange     = vec.ErrOutOfRange
	ErrInvalidCursor  = vec.ErrInvalidCursor
	ErrBorrowConflict = vec.ErrBorrowConflict
	ErrClosed         = vec.ErrClosed
)
