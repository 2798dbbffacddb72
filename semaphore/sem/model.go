/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package sem provides a worker-limiting semaphore built either on
// golang.org/x/sync/semaphore (a bounded number of simultaneous workers) or
// on sync.WaitGroup (no bound at all), selected by the limit passed to New.
package sem

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Sem bounds the number of concurrent workers sharing a cancellable context.
type Sem interface {
	context.Context

	// Weighted returns the configured concurrency limit, or -1 if unlimited.
	Weighted() int64

	// NewWorker blocks until a worker slot is available or the context ends.
	NewWorker() error

	// NewWorkerTry acquires a worker slot without blocking.
	NewWorkerTry() bool

	// DeferWorker releases a worker slot acquired via NewWorker/NewWorkerTry.
	DeferWorker()

	// DeferMain cancels the semaphore's context. Safe to call more than once.
	DeferMain()

	// WaitAll blocks until every acquired worker slot has been released.
	WaitAll() error

	// New creates an independent semaphore with the same limit, derived from
	// this semaphore's context.
	New() Sem
}

// New creates a Sem bound to ctx. A nbrSimultaneous of zero uses
// MaxSimultaneous, a positive value is used as the limit as given, and any
// negative value creates an unlimited, WaitGroup-based semaphore.
func New(ctx context.Context, nbrSimultaneous int) Sem {
	if ctx == nil {
		ctx = context.Background()
	}

	cctx, cancel := context.WithCancel(ctx)

	if nbrSimultaneous < 0 {
		return &waitGroupSem{
			Context: cctx,
			cancel:  cancel,
			wg:      new(sync.WaitGroup),
		}
	}

	n := int64(nbrSimultaneous)
	if n == 0 {
		n = int64(MaxSimultaneous())
	}

	return &weightedSem{
		Context: cctx,
		cancel:  cancel,
		limit:   n,
		sem:     semaphore.NewWeighted(n),
	}
}

// MaxSimultaneous returns the default concurrency limit, derived from the
// number of logical CPUs available to the process.
func MaxSimultaneous() int {
	return runtime.GOMAXPROCS(0)
}

// SetSimultaneous clamps n into the valid [1, MaxSimultaneous] range,
// returning MaxSimultaneous for any n outside that range.
func SetSimultaneous(n int64) int64 {
	max := int64(MaxSimultaneous())

	if n < 1 || n > max {
		return max
	}

	return n
}
