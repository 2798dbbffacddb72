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

package startStop

import (
	"context"
	"fmt"
	"time"
)

// Start stops any running instance, then launches the start function in a
// new goroutine and returns immediately.
func (r *runner) Start(ctx context.Context) error {
	r.stopCurrent(ctx)

	r.mu.Lock()

	r.resetErrors()

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.cancel = cancel
	r.done = done
	r.startedAt.Store(time.Now().UnixNano())
	r.running.Store(true)

	fn := r.fnStart

	r.mu.Unlock()

	go r.runStart(cctx, fn, done)

	return nil
}

func (r *runner) runStart(ctx context.Context, fn Func, done chan struct{}) {
	defer close(done)
	defer func() {
		if rec := recover(); rec != nil {
			r.recordError(fmt.Errorf("startStop: panic in start function: %v", rec))
		}
		r.running.Store(false)
	}()

	if fn == nil {
		r.recordError(fmt.Errorf("startStop: invalid start function"))
		return
	}

	if err := fn(ctx); err != nil {
		r.recordError(err)
	}
}

// Stop cancels the running instance, waits for it to exit, and invokes the
// stop function. Concurrent or redundant calls are no-ops beyond the first.
func (r *runner) Stop(ctx context.Context) error {
	r.stopCurrent(ctx)
	return nil
}

// stopCurrent cancels and waits for the current instance if one is running,
// then runs the stop function exactly once for that instance.
func (r *runner) stopCurrent(ctx context.Context) {
	r.mu.Lock()
	if !r.running.Load() {
		r.mu.Unlock()
		return
	}

	cancel := r.cancel
	done := r.done
	fn := r.fnStop

	r.running.Store(false)
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	r.runStop(ctx, fn)
}

func (r *runner) runStop(ctx context.Context, fn Func) {
	defer func() {
		if rec := recover(); rec != nil {
			r.recordError(fmt.Errorf("startStop: panic in stop function: %v", rec))
		}
	}()

	if fn == nil {
		r.recordError(fmt.Errorf("startStop: invalid stop function"))
		return
	}

	if err := fn(ctx); err != nil {
		r.recordError(err)
	}
}

// Restart stops the current instance, if any, and starts a new one.
func (r *runner) Restart(ctx context.Context) error {
	_ = r.Stop(ctx)
	return r.Start(ctx)
}
