// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package borrow implements the permission table that stands in for a static
// borrow checker: every live reference into a sequence holds a Token recording
// its slot range and mode, and new tokens are refused at acquisition time when
// they would alias an incompatible live one.
package borrow

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"
)

// Mode is the access mode of a token.
type Mode uint8

const (
	Shared Mode = iota + 1
	Exclusive
	Whole // exclusive over the whole container, including slots not yet allocated
)

func (mode Mode) String() string {
	switch mode {
	case Shared:
		return "shared"
	case Exclusive:
		return "exclusive"
	case Whole:
		return "whole"
	default:
		return "invalid"
	}
}

// Ledger tracks live tokens of one container.
// The zero value is an empty ledger ready to use.
//
// Rules checked on every acquisition:
//   - any number of Shared tokens may cover the same slot;
//   - an Exclusive token conflicts with every token covering one of its slots;
//   - a Whole token conflicts with every other token.
//
// Release and Split are safe for concurrent use, so that the halves of a split
// may be handed to different goroutines.
type Ledger struct {
	mutex  sync.Mutex
	excl   bitset.BitSet // slots under an Exclusive token
	shared bitset.BitSet // slots under at least one Shared token
	counts []uint32      // Shared tokens per slot
	whole  bool
	live   int
	log    *zerolog.Logger
}

// SetLogger makes the ledger report refused acquisitions at debug level.
func (ledger *Ledger) SetLogger(log zerolog.Logger) {
	ledger.mutex.Lock()
	ledger.log = &log
	ledger.mutex.Unlock()
}

// Live returns the number of live tokens.
func (ledger *Ledger) Live() int {
	ledger.mutex.Lock()
	defer ledger.mutex.Unlock()
	return ledger.live
}

// Idle reports whether no token is live. Structural changes to the container
// (growing, shrinking, moving elements) are only allowed while idle.
func (ledger *Ledger) Idle() bool {
	return ledger.Live() == 0
}

// CheckIdle returns ErrBorrowConflict unless the ledger is idle.
// op names the refused change in the debug log.
func (ledger *Ledger) CheckIdle(op string) error {
	ledger.mutex.Lock()
	defer ledger.mutex.Unlock()

	if ledger.live == 0 {
		return nil
	}
	if ledger.log != nil {
		ledger.log.Debug().
			Str("op", op).
			Int("live", ledger.live).
			Bool("whole", ledger.whole).
			Msg("structural change rejected")
	}
	return ErrBorrowConflict
}

// Acquire grants a Shared or Exclusive token over slots [start, end).
// An empty range only conflicts with a Whole token.
func (ledger *Ledger) Acquire(start, end int, mode Mode) (*Token, error) {
	if start < 0 || start > end {
		return nil, ErrOutOfRange
	}
	if mode != Shared && mode != Exclusive {
		return nil, ErrUnsupported
	}

	ledger.mutex.Lock()
	defer ledger.mutex.Unlock()

	if ledger.whole || ledger.covered(&ledger.excl, start, end) ||
		mode == Exclusive && ledger.covered(&ledger.shared, start, end) {
		ledger.reject(start, end, mode)
		return nil, ErrBorrowConflict
	}

	switch mode {
	case Shared:
		ledger.grow(end)
		for i := start; i < end; i++ {
			ledger.counts[i]++
			ledger.shared.Set(uint(i))
		}
	case Exclusive:
		for i := start; i < end; i++ {
			ledger.excl.Set(uint(i))
		}
	}
	ledger.live++
	return &Token{ledger: ledger, start: start, end: end, mode: mode, live: true}, nil
}

// AcquireWhole grants the Whole token. It requires the ledger to be idle.
func (ledger *Ledger) AcquireWhole() (*Token, error) {
	ledger.mutex.Lock()
	defer ledger.mutex.Unlock()

	if ledger.live != 0 {
		ledger.reject(0, -1, Whole)
		return nil, ErrBorrowConflict
	}
	ledger.whole = true
	ledger.live++
	return &Token{ledger: ledger, start: 0, end: -1, mode: Whole, live: true}, nil
}

func (ledger *Ledger) covered(set *bitset.BitSet, start, end int) bool {
	if start >= end {
		return false
	}
	i, ok := set.NextSet(uint(start))
	return ok && i < uint(end)
}

func (ledger *Ledger) grow(end int) {
	if end > len(ledger.counts) {
		ledger.counts = append(ledger.counts, make([]uint32, end-len(ledger.counts))...)
	}
}

func (ledger *Ledger) reject(start, end int, mode Mode) {
	if ledger.log == nil {
		return
	}
	ledger.log.Debug().
		Int("start", start).
		Int("end", end).
		Str("mode", mode.String()).
		Int("live", ledger.live).
		Bool("whole", ledger.whole).
		Msg("borrow rejected")
}

func (ledger *Ledger) release(token *Token) {
	switch token.mode {
	case Shared:
		for i := token.start; i < token.end; i++ {
			ledger.counts[i]--
			if ledger.counts[i] == 0 {
				ledger.shared.Clear(uint(i))
			}
		}
	case Exclusive:
		for i := token.start; i < token.end; i++ {
			ledger.excl.Clear(uint(i))
		}
	case Whole:
		ledger.whole = false
	}
	ledger.live--
}
