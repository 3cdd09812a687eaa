// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package borrow

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLedgerSharedCoexist(t *testing.T) {
	var ledger Ledger

	a, err := ledger.Acquire(0, 4, Shared)
	require.NoError(t, err)
	b, err := ledger.Acquire(2, 6, Shared)
	require.NoError(t, err)
	require.Equal(t, 2, ledger.Live())

	_, err = ledger.Acquire(3, 4, Exclusive)
	require.ErrorIs(t, err, ErrBorrowConflict)

	// disjoint exclusive is fine
	c, err := ledger.Acquire(6, 8, Exclusive)
	require.NoError(t, err)

	a.Release()
	_, err = ledger.Acquire(3, 4, Exclusive)
	require.ErrorIs(t, err, ErrBorrowConflict, "slot 3 still shared by b")

	b.Release()
	d, err := ledger.Acquire(0, 6, Exclusive)
	require.NoError(t, err)

	c.Release()
	d.Release()
	require.True(t, ledger.Idle())
}

func TestLedgerExclusiveConflict(t *testing.T) {
	var ledger Ledger

	a, err := ledger.Acquire(2, 3, Exclusive)
	require.NoError(t, err)

	_, err = ledger.Acquire(2, 3, Exclusive)
	require.ErrorIs(t, err, ErrBorrowConflict)
	_, err = ledger.Acquire(0, 5, Shared)
	require.ErrorIs(t, err, ErrBorrowConflict)
	require.Equal(t, 1, ledger.Live(), "refused acquisitions leave no trace")

	// empty ranges never overlap
	e, err := ledger.Acquire(2, 2, Exclusive)
	require.NoError(t, err)
	e.Release()

	a.Release()
	a.Release()
	require.False(t, a.Live())
	require.True(t, ledger.Idle())
}

func TestLedgerInvalidRange(t *testing.T) {
	var ledger Ledger

	_, err := ledger.Acquire(-1, 2, Shared)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = ledger.Acquire(0, 1, Whole)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestLedgerWhole(t *testing.T) {
	var ledger Ledger

	a, err := ledger.Acquire(0, 1, Shared)
	require.NoError(t, err)
	_, err = ledger.AcquireWhole()
	require.ErrorIs(t, err, ErrBorrowConflict)
	a.Release()

	w, err := ledger.AcquireWhole()
	require.NoError(t, err)
	require.Equal(t, -1, w.Len())

	_, err = ledger.Acquire(0, 0, Shared)
	require.ErrorIs(t, err, ErrBorrowConflict)
	_, err = ledger.AcquireWhole()
	require.ErrorIs(t, err, ErrBorrowConflict)

	_, _, err = w.Split(0)
	require.ErrorIs(t, err, ErrUnsupported)

	w.Release()
	require.True(t, ledger.Idle())
}

func TestTokenSplit(t *testing.T) {
	var ledger Ledger

	parent, err := ledger.Acquire(0, 5, Exclusive)
	require.NoError(t, err)

	_, _, err = parent.Split(6)
	require.ErrorIs(t, err, ErrOutOfRange)

	left, right, err := parent.Split(2)
	require.NoError(t, err)
	require.False(t, parent.Live())
	require.Equal(t, [2]int{0, 2}, [2]int{left.Start(), left.End()})
	require.Equal(t, [2]int{2, 5}, [2]int{right.Start(), right.End()})
	require.Equal(t, 2, ledger.Live())

	_, _, err = parent.Split(1)
	require.ErrorIs(t, err, ErrClosed)

	// the halves still keep everyone else out
	_, err = ledger.Acquire(1, 2, Shared)
	require.ErrorIs(t, err, ErrBorrowConflict)

	left.Release()
	s, err := ledger.Acquire(0, 2, Shared)
	require.NoError(t, err)
	_, err = ledger.Acquire(2, 3, Shared)
	require.ErrorIs(t, err, ErrBorrowConflict)

	s.Release()
	right.Release()
	require.True(t, ledger.Idle())
}

func TestTokenSplitShared(t *testing.T) {
	var ledger Ledger

	parent, err := ledger.Acquire(0, 4, Shared)
	require.NoError(t, err)
	left, right, err := parent.Split(4)
	require.NoError(t, err)
	require.Equal(t, 0, right.Len())

	left.Release()
	right.Release()
	x, err := ledger.Acquire(0, 4, Exclusive)
	require.NoError(t, err)
	x.Release()
}

func TestTokenTransfer(t *testing.T) {
	var ledger Ledger

	a, err := ledger.Acquire(1, 3, Exclusive)
	require.NoError(t, err)
	b, err := a.Transfer()
	require.NoError(t, err)
	require.False(t, a.Live())
	require.True(t, b.Live())
	require.Equal(t, 1, ledger.Live())

	a.Release()
	_, err = ledger.Acquire(1, 2, Shared)
	require.ErrorIs(t, err, ErrBorrowConflict, "releasing a transferred token is a no-op")

	_, err = a.Transfer()
	require.ErrorIs(t, err, ErrClosed)

	b.Release()
	require.True(t, ledger.Idle())
}

func TestLedgerConcurrentRelease(t *testing.T) {
	var ledger Ledger

	token, err := ledger.Acquire(0, 64, Exclusive)
	require.NoError(t, err)

	tokens := []*Token{token}
	for len(tokens) < 8 {
		var next []*Token
		for _, token := range tokens {
			left, right, err := token.Split(token.Len() / 2)
			require.NoError(t, err)
			next = append(next, left, right)
		}
		tokens = next
	}

	var wg sync.WaitGroup
	for _, token := range tokens {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token.Release()
		}()
	}
	wg.Wait()
	require.True(t, ledger.Idle())
}

func TestLedgerLogsRejection(t *testing.T) {
	var buf bytes.Buffer
	var ledger Ledger
	ledger.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	a, err := ledger.Acquire(0, 1, Exclusive)
	require.NoError(t, err)
	defer a.Release()
	require.Zero(t, buf.Len())

	_, err = ledger.Acquire(0, 1, Shared)
	require.ErrorIs(t, err, ErrBorrowConflict)
	require.Contains(t, buf.String(), `"mode":"shared"`)
	require.Contains(t, buf.String(), "borrow rejected")
}

func TestLedgerCheckIdle(t *testing.T) {
	var buf bytes.Buffer
	var ledger Ledger
	ledger.SetLogger(zerolog.New(&buf))

	require.NoError(t, ledger.CheckIdle("push"))

	a, err := ledger.Acquire(0, 0, Shared)
	require.NoError(t, err)
	require.ErrorIs(t, ledger.CheckIdle("push"), ErrBorrowConflict)
	require.Contains(t, buf.String(), `"op":"push"`)

	a.Release()
	require.NoError(t, ledger.CheckIdle("push"))
}
