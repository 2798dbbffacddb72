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
	"sync"
)

// waitGroupSem imposes no concurrency limit: every worker is accepted
// immediately and tracked with a sync.WaitGroup.
type waitGroupSem struct {
	context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup
}

func (w *waitGroupSem) Weighted() int64 {
	return -1
}

func (w *waitGroupSem) NewWorker() error {
	w.wg.Add(1)
	return nil
}

func (w *waitGroupSem) NewWorkerTry() bool {
	w.wg.Add(1)
	return true
}

func (w *waitGroupSem) DeferWorker() {
	w.wg.Done()
}

func (w *waitGroupSem) DeferMain() {
	w.cancel()
}

func (w *waitGroupSem) WaitAll() error {
	w.wg.Wait()
	return nil
}

func (w *waitGroupSem) New() Sem {
	return New(w.Context, -1)
}
