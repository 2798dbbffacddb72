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

package channel

import (
	"context"
	"sync"
	"sync/atomic"

	liberr "github.com/nabbar/golib/errors"
	"github.com/nabbar/golib/errorkind"
	"github.com/nabbar/golib/linkstate"
)

// Core implements the state machine and stop() contract shared by every
// channel kind. A transport (TCP client, one TCP server session, serial
// port) embeds a Core and calls its Notify*/TransitionTo methods as I/O
// events occur; Core serializes callback dispatch (invariant I2), rejects
// any dispatch once stopped (invariant I1), guarantees Closed fires exactly
// once (invariant I3) and Error fires at most once (invariant I4).
type Core struct {
	id ClientID
	cb Callbacks

	// dmu serializes callback dispatch so no two callbacks for this Core
	// ever run concurrently (I2). It is held while a callback runs; smu
	// never is.
	dmu sync.Mutex

	smu   sync.Mutex
	state linkstate.LinkState

	stopped  atomic.Bool
	errOnce  atomic.Bool
	closeded atomic.Bool

	cancel func()
	close  func() error
	drain  func() uint64

	log atomic.Value
}

// NewCore builds a Core for the given client (zero for single-peer
// channels) with the given user callbacks.
func NewCore(id ClientID, cb Callbacks) *Core {
	return &Core{id: id, cb: cb, state: linkstate.Idle}
}

// SetCancel registers the function that aborts any pending I/O suspension
// point (resolve, connect, read, write, accept, timer). Called once per
// Start().
func (c *Core) SetCancel(fn func()) { c.cancel = fn }

// SetClose registers the function that closes the underlying transport
// handle (socket, serial port). May be called multiple times; must be
// idempotent.
func (c *Core) SetClose(fn func() error) { c.close = fn }

// SetDrain registers the function that discards any queued, unwritten
// bytes, returning the count discarded.
func (c *Core) SetDrain(fn func() uint64) { c.drain = fn }

// State returns the current observable LinkState.
func (c *Core) State() linkstate.LinkState {
	c.smu.Lock()
	defer c.smu.Unlock()
	return c.state
}

// IsStopped reports whether Stop has been called, regardless of whether it
// has finished running its teardown steps yet.
func (c *Core) IsStopped() bool { return c.stopped.Load() }

// TransitionTo moves the state machine to next, rejecting the transition
// (returning false, no dispatch) if it is not legal from the current state
// or if the channel has already stopped. It invokes OnState with the
// dispatch lock held (serialized, I2) but never with smu held.
func (c *Core) TransitionTo(next linkstate.LinkState) bool {
	if c.stopped.Load() && next != linkstate.Closed {
		return false
	}

	c.smu.Lock()
	cur := c.state
	if !cur.CanTransitionTo(next) {
		c.smu.Unlock()
		return false
	}
	c.state = next
	c.smu.Unlock()

	c.logState(next)

	c.dmu.Lock()
	defer c.dmu.Unlock()
	c.cb.dispatchState(next)

	return true
}

// NotifyConnect dispatches OnConnect, unless the channel has already
// stopped (I1).
func (c *Core) NotifyConnect(info string) {
	if c.stopped.Load() {
		return
	}

	c.dmu.Lock()
	defer c.dmu.Unlock()
	c.cb.dispatchConnect(ConnectionContext{ClientID: c.id, ClientInfo: info})
}

// NotifyDisconnect dispatches OnDisconnect, unless the channel has already
// stopped (I1). Stop itself delivers no disconnect: a transport that owes
// one on shutdown (tcpserver's Session.Stop) calls this before Stop.
func (c *Core) NotifyDisconnect(info string) {
	if c.stopped.Load() {
		return
	}

	c.dmu.Lock()
	defer c.dmu.Unlock()
	c.cb.dispatchDisconnect(ConnectionContext{ClientID: c.id, ClientInfo: info})
}

// NotifyData dispatches OnData, unless the channel has already stopped (I1).
func (c *Core) NotifyData(data []byte, remoteAddress string) {
	if c.stopped.Load() {
		return
	}

	c.dmu.Lock()
	defer c.dmu.Unlock()
	c.cb.dispatchData(MessageContext{ClientID: c.id, Data: data, RemoteAddress: remoteAddress})
}

// NotifyBackpressure dispatches OnBackpressure, unless the channel has
// already stopped (I1).
func (c *Core) NotifyBackpressure(queuedBytes uint64) {
	if c.stopped.Load() {
		return
	}

	c.dmu.Lock()
	defer c.dmu.Unlock()
	c.cb.dispatchBackpressure(c.id, queuedBytes)
}

// NotifyError delivers exactly one ErrorContext (I4), then transitions the
// state machine to Error. Subsequent calls are no-ops. Returns false if an
// error was already notified or the channel already stopped.
func (c *Core) NotifyError(err liberr.Error) bool {
	if c.stopped.Load() {
		return false
	}
	if !c.errOnce.CompareAndSwap(false, true) {
		return false
	}

	c.smu.Lock()
	if c.state != linkstate.Closed {
		c.state = linkstate.Error
	}
	c.smu.Unlock()

	c.logError(err)

	c.dmu.Lock()
	c.cb.dispatchError(ErrorContext{Err: err, ClientID: c.id})
	c.cb.dispatchState(linkstate.Error)
	c.dmu.Unlock()

	return true
}

// ErrorKind wraps a raw OS/transport error as an error tagged with kind,
// attaching parent as its cause when parent is non-nil.
func ErrorKind(kind liberr.CodeError, msg string, parent error) liberr.Error {
	if parent != nil {
		return errorkind.New(kind, msg, parent)
	}
	return errorkind.New(kind, msg)
}

// Stop executes the six-step stop contract: it is idempotent and safe to
// call concurrently, repeatedly, and from inside a callback invoked by this
// very Core. It never blocks waiting for a callback to return.
func (c *Core) Stop(_ context.Context) error {
	if !c.stopped.CompareAndSwap(false, true) {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	if c.close != nil {
		_ = c.close()
	}

	if c.drain != nil {
		c.drain()
	}

	if !c.closeded.CompareAndSwap(false, true) {
		return nil
	}

	c.smu.Lock()
	c.state = linkstate.Closed
	c.smu.Unlock()

	c.logState(linkstate.Closed)

	c.dmu.Lock()
	defer c.dmu.Unlock()
	c.cb.dispatchState(linkstate.Closed)

	return nil
}
