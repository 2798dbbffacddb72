/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package startStop provides a generic, thread-safe wrapper turning a pair of
// blocking start/stop functions into a restartable, supervised goroutine with
// uptime and error tracking.
package startStop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Func is a blocking operation driven by a context. A start Func is expected
// to run until its context is cancelled; a stop Func performs the actual
// shutdown signalling or cleanup.
type Func func(ctx context.Context) error

// StartStop supervises a single running instance of a start/stop function
// pair, exposing a non-blocking lifecycle and basic observability.
type StartStop interface {
	// Start launches the start function in a background goroutine. It does
	// not wait for the function to return. If an instance is already
	// running, it is stopped first.
	Start(ctx context.Context) error

	// Stop signals the running instance to shut down and invokes the stop
	// function. It is safe to call when not running, and concurrent calls
	// only trigger the stop function once.
	Stop(ctx context.Context) error

	// Restart stops the current instance, if any, then starts a new one.
	Restart(ctx context.Context) error

	// IsRunning reports whether an instance is currently running.
	IsRunning() bool

	// Uptime returns the time elapsed since the current instance started,
	// or zero if not running.
	Uptime() time.Duration

	// ErrorsLast returns the most recent error recorded since the last
	// Start call, or nil.
	ErrorsLast() error

	// ErrorsList returns every error recorded since the last Start call.
	ErrorsList() []error
}

type runner struct {
	fnStart Func
	fnStop  Func

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	running   atomic.Bool
	startedAt atomic.Int64

	errMu sync.Mutex
	errs  []error
	last  error
}

// New returns a StartStop driving the given start/stop functions. Either may
// be nil: a nil start function records an error on Start, a nil stop function
// records an error on Stop.
func New(start, stop Func) StartStop {
	return &runner{
		fnStart: start,
		fnStop:  stop,
	}
}
