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

package sem

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// weightedSem bounds concurrency to a fixed number of simultaneous workers
// using golang.org/x/sync/semaphore.
type weightedSem struct {
	context.Context
	cancel context.CancelFunc
	limit  int64
	sem    *semaphore.Weighted
}

func (w *weightedSem) Weighted() int64 {
	return w.limit
}

func (w *weightedSem) NewWorker() error {
	return w.sem.Acquire(w.Context, 1)
}

func (w *weightedSem) NewWorkerTry() bool {
	return w.sem.TryAcquire(1)
}

func (w *weightedSem) DeferWorker() {
	w.sem.Release(1)
}

func (w *weightedSem) DeferMain() {
	w.cancel()
}

// WaitAll acquires the full weight of the semaphore, which only succeeds
// once every outstanding worker has released its slot, then releases it
// back immediately.
func (w *weightedSem) WaitAll() error {
	if err := w.sem.Acquire(w.Context, w.limit); err != nil {
		return err
	}

	w.sem.Release(w.limit)
	return nil
}

func (w *weightedSem) New() Sem {
	return New(w.Context, int(w.limit))
}
