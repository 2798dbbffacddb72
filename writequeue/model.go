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

// Package writequeue implements the single outstanding-write pipeline shared
// by every channel kind: a strictly-ordered byte buffer queue with a
// configurable backpressure threshold and an edge-triggered warning
// callback.
package writequeue

import (
	"sync"

	liberr "github.com/nabbar/golib/errors"
	"github.com/nabbar/golib/errorkind"
	"github.com/nabbar/golib/size"
)

// Mode selects the ownership semantics of an enqueued buffer.
type Mode uint8

const (
	// ModeCopy defensively clones data before storing it: the caller is
	// free to reuse or mutate its buffer immediately after the call.
	ModeCopy Mode = iota
	// ModeMove takes ownership of data without cloning: the caller must
	// not read or write it again.
	ModeMove
	// ModeShared stores data without cloning, on the understanding that the
	// caller guarantees it will remain unmodified (a read-only buffer) for
	// as long as the write may still be pending.
	ModeShared
)

// Queue is the per-channel (or per-session) pending-write buffer.
type Queue struct {
	mu sync.Mutex

	items [][]byte
	bytes uint64

	threshold uint64
	watermark uint64
	crossed   bool

	writing bool

	onBackpressure func(current uint64)
}

// New creates a Queue whose hard rejection threshold is threshold bytes. A
// zero threshold disables backpressure rejection entirely. onBackpressure,
// if non-nil, fires at most once per crossing of 80% of threshold, resetting
// once queued bytes drop back below that watermark.
func New(threshold size.Size, onBackpressure func(current uint64)) *Queue {
	t := uint64(threshold)
	wm := t
	if t > 0 {
		wm = t - t/5
	}

	return &Queue{
		threshold:      t,
		watermark:      wm,
		onBackpressure: onBackpressure,
	}
}

// QueuedBytes returns the current total of unwritten, queued bytes (WQ3).
func (q *Queue) QueuedBytes() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.bytes
}

// Enqueue appends data honoring mode's ownership semantics, in arrival order
// (WQ2). It returns a BackpressureExceeded error without modifying the queue
// if the resulting total would exceed the configured threshold.
func (q *Queue) Enqueue(data []byte, mode Mode) liberr.Error {
	if len(data) == 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	newTotal := q.bytes + uint64(len(data))
	if q.threshold > 0 && newTotal > q.threshold {
		return errorkind.New(errorkind.BackpressureExceeded, "")
	}

	var buf []byte
	switch mode {
	case ModeCopy:
		buf = make([]byte, len(data))
		copy(buf, data)
	default:
		buf = data
	}

	q.items = append(q.items, buf)
	q.bytes = newTotal

	q.checkWatermark()

	return nil
}

func (q *Queue) checkWatermark() {
	if q.onBackpressure == nil || q.watermark == 0 {
		return
	}

	if !q.crossed && q.bytes >= q.watermark {
		q.crossed = true
		current := q.bytes
		cb := q.onBackpressure
		go cb(current)
	} else if q.crossed && q.bytes < q.watermark {
		q.crossed = false
	}
}

// TryBeginWrite returns the front-of-queue buffer to write next, marking the
// queue as having an outstanding write (WQ1). It returns ok=false if a write
// is already outstanding or the queue is empty.
func (q *Queue) TryBeginWrite() (buf []byte, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.writing || len(q.items) == 0 {
		return nil, false
	}

	q.writing = true
	return q.items[0], true
}

// CompleteWrite reports the outcome of the buffer returned by TryBeginWrite.
// n is the number of bytes actually written; a partial write (n less than
// the buffer length) leaves the remainder at the front of the queue for the
// next write attempt. It returns whether another buffer is ready to write.
func (q *Queue) CompleteWrite(n int) (hasMore bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.writing = false

	if len(q.items) == 0 {
		return false
	}

	front := q.items[0]
	if n >= len(front) {
		q.bytes -= uint64(len(front))
		q.items = q.items[1:]
	} else if n > 0 {
		q.bytes -= uint64(n)
		q.items[0] = front[n:]
	}

	q.checkWatermark()

	return len(q.items) > 0
}

// Drain discards every queued buffer, as stop() must do, returning the
// number of bytes discarded.
func (q *Queue) Drain() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	discarded := q.bytes
	q.items = nil
	q.bytes = 0
	q.writing = false
	q.crossed = false

	return discarded
}
