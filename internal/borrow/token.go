// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package borrow

// Token is one live permission recorded in a Ledger.
type Token struct {
	ledger *Ledger
	start  int
	end    int
	mode   Mode
	live   bool
}

// Start returns the first slot covered by the token.
func (token *Token) Start() int { return token.start }

// End returns the slot after the last one covered by the token.
// It is -1 for a Whole token.
func (token *Token) End() int { return token.end }

// Len returns the number of slots covered, or -1 for a Whole token.
func (token *Token) Len() int {
	if token.mode == Whole {
		return -1
	}
	return token.end - token.start
}

// Mode returns the access mode.
func (token *Token) Mode() Mode { return token.mode }

// Live reports whether the token has not been released or split.
func (token *Token) Live() bool {
	if token == nil {
		return false
	}
	token.ledger.mutex.Lock()
	defer token.ledger.mutex.Unlock()
	return token.live
}

// Release returns the permission to the ledger. Extra calls are no-ops.
func (token *Token) Release() {
	if token == nil {
		return
	}
	ledger := token.ledger
	ledger.mutex.Lock()
	if token.live {
		token.live = false
		ledger.release(token)
	}
	ledger.mutex.Unlock()
}

// Split consumes the token and returns two tokens over [start, start+at) and
// [start+at, end), with the same mode.
//
// This is the only place where one exclusive permission becomes two. No
// aliasing check is made: the halves are disjoint because they partition the
// parent range at a single point, and the slot bits recorded for the parent
// stay set, now owned by exactly one half each.
func (token *Token) Split(at int) (left, right *Token, err error) {
	ledger := token.ledger
	ledger.mutex.Lock()
	defer ledger.mutex.Unlock()

	if !token.live {
		return nil, nil, ErrClosed
	}
	if token.mode == Whole {
		return nil, nil, ErrUnsupported
	}
	if at < 0 || at > token.end-token.start {
		return nil, nil, ErrOutOfRange
	}

	mid := token.start + at
	left = &Token{ledger: ledger, start: token.start, end: mid, mode: token.mode, live: true}
	right = &Token{ledger: ledger, start: mid, end: token.end, mode: token.mode, live: true}
	assertPartition("Split", token, left, right)

	token.live = false
	ledger.live++
	return left, right, nil
}

// Transfer consumes the token and returns a fresh one with the same range and
// mode. It moves a permission from one owner to another, so that the old owner
// can no longer use it.
func (token *Token) Transfer() (*Token, error) {
	ledger := token.ledger
	ledger.mutex.Lock()
	defer ledger.mutex.Unlock()

	if !token.live {
		return nil, ErrClosed
	}
	token.live = false
	return &Token{ledger: ledger, start: token.start, end: token.end, mode: token.mode, live: true}, nil
}
