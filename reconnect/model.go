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

// Package reconnect implements the retry policies consulted by the TCP
// client and serial transports after a failed connect/open or a dropped
// connection: fixed interval, exponential backoff with jitter (built on
// cenkalti/backoff/v4), and arbitrary caller-supplied predicates.
package reconnect

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Decision is the outcome of consulting a Policy after a failed attempt.
type Decision struct {
	Retry bool
	Delay time.Duration
}

// LastError carries the most recent failure into the policy, so a custom
// Policy can vary its decision by error kind.
type LastError struct {
	Err     error
	Attempt int
}

// Policy decides, after a failed connect/open/read attempt, whether to try
// again and after what delay. Attempt numbers reset to zero whenever a
// connect attempt succeeds.
type Policy interface {
	Next(info LastError) Decision
}

type fixedPolicy struct {
	interval   time.Duration
	maxRetries int
}

// Fixed retries at a constant interval. maxRetries of -1 means unlimited.
func Fixed(interval time.Duration, maxRetries int) Policy {
	return &fixedPolicy{interval: interval, maxRetries: maxRetries}
}

func (p *fixedPolicy) Next(info LastError) Decision {
	if p.maxRetries >= 0 && info.Attempt > p.maxRetries {
		return Decision{Retry: false}
	}
	return Decision{Retry: true, Delay: p.interval}
}

type exponentialPolicy struct {
	maxRetries int
	base       *backoff.ExponentialBackOff
}

// Exponential retries with a delay that doubles (by multiplier) from initial
// up to max, optionally randomized by backoff.ExponentialBackOff's own
// jitter (RandomizationFactor), matching the library's usual defaults.
// maxRetries of -1 means unlimited.
func Exponential(initial, max time.Duration, multiplier float64, jitter bool, maxRetries int) Policy {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.MaxInterval = max
	b.Multiplier = multiplier
	b.MaxElapsedTime = 0

	if jitter {
		b.RandomizationFactor = 0.25
	} else {
		b.RandomizationFactor = 0
	}

	b.Reset()

	return &exponentialPolicy{maxRetries: maxRetries, base: b}
}

func (p *exponentialPolicy) Next(info LastError) Decision {
	if p.maxRetries >= 0 && info.Attempt > p.maxRetries {
		return Decision{Retry: false}
	}

	if info.Attempt == 0 {
		p.base.Reset()
	}

	d := p.base.NextBackOff()
	if d == backoff.Stop {
		return Decision{Retry: false}
	}

	return Decision{Retry: true, Delay: d}
}

// Func adapts a plain function into a Policy.
type Func func(info LastError) Decision

func (f Func) Next(info LastError) Decision { return f(info) }

// Custom wraps an arbitrary decision function as a Policy.
func Custom(fn func(info LastError) Decision) Policy {
	return Func(fn)
}
