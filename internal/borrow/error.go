// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package borrow

import (
	"github.com/dacapoday/vec"
)

var (
	ErrOutOfRange     = vec.ErrOutOfRange
	ErrBorrowConflict = vec.ErrBorrowConflict
	ErrClosed         = vec.ErrClosed
	ErrUnsupported    = vec.ErrUnsupported
)
