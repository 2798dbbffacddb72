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

package tcpserver

import (
	"sync/atomic"

	libatm "github.com/nabbar/golib/atomic"
	"github.com/nabbar/golib/channel"
)

// Registry is the server's live session table (SessionRegistry). Insertion
// enforces the configured connection cap (SR1); removal is atomic and final
// (SR3) -- once removed, an id is never reused.
type Registry struct {
	max  int
	size atomic.Int64
	m    libatm.MapTyped[channel.ClientID, *Session]
}

// NewRegistry creates an empty Registry capped at max sessions. A max of
// zero means unlimited.
func NewRegistry(max int) *Registry {
	return &Registry{max: max, m: libatm.NewMapTyped[channel.ClientID, *Session]()}
}

// TryInsert inserts sess if the registry has not reached its cap, returning
// false (no insertion) otherwise.
func (r *Registry) TryInsert(sess *Session) bool {
	if r.max > 0 && int(r.size.Load()) >= r.max {
		return false
	}

	r.m.Store(sess.id, sess)
	r.size.Add(1)
	return true
}

// Remove atomically drops id from the registry (SR3). Safe to call more
// than once for the same id.
func (r *Registry) Remove(id channel.ClientID) {
	if _, ok := r.m.LoadAndDelete(id); ok {
		r.size.Add(-1)
	}
}

// Get returns the session registered under id, if any.
func (r *Registry) Get(id channel.ClientID) (*Session, bool) {
	return r.m.Load(id)
}

// Len returns the number of sessions currently registered.
func (r *Registry) Len() uint64 {
	n := r.size.Load()
	if n < 0 {
		return 0
	}
	return uint64(n)
}

// Range calls f for every session present at the moment of the call (used
// by broadcast: later joiners are excluded per section 4.4).
func (r *Registry) Range(f func(id channel.ClientID, sess *Session) bool) {
	r.m.Range(func(id channel.ClientID, sess *Session) bool {
		return f(id, sess)
	})
}
