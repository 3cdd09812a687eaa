// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package seq

import "github.com/rs/zerolog"

// Capacity is implemented by options that preallocate the buffer.
type Capacity interface {
	Capacity() int
}

// Logger is implemented by options that attach a logger to the borrow ledger.
// Refused borrows and structural changes are logged at debug level.
type Logger interface {
	Logger() *zerolog.Logger
}

// Options is a ready-made option value for New.
type Options struct {
	Cap int
	Log *zerolog.Logger
}

func (o Options) Capacity() int           { return o.Cap }
func (o Options) Logger() *zerolog.Logger { return o.Log }

func getCapacity(opt any) (n int) {
	if o, ok := opt.(Capacity); ok {
		n = max(o.Capacity(), 0)
	}
	return
}

func getLogger(opt any) (log *zerolog.Logger) {
	if o, ok := opt.(Logger); ok {
		log = o.Logger()
	}
	return
}
