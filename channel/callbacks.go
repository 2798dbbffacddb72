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

import "github.com/nabbar/golib/linkstate"

// Callbacks groups every user-supplied handler a Channel may invoke. All
// fields are optional; a nil handler is simply skipped. Callbacks must be
// configured before Start() -- none of them are safe to set concurrently
// with a running channel.
type Callbacks struct {
	// OnData fires for every byte delivery off the read loop.
	OnData func(MessageContext)
	// OnState fires on every LinkState transition, including the terminal
	// Closed transition emitted by stop().
	OnState func(linkstate.LinkState)
	// OnBackpressure fires at most once per crossing of the write queue's
	// warning watermark.
	OnBackpressure func(clientID ClientID, queuedBytes uint64)
	// OnError fires at most once per unrecoverable failure (invariant I4).
	OnError func(ErrorContext)
	// OnConnect fires once per accepted server session, or once per
	// successful client/serial connect.
	OnConnect func(ConnectionContext)
	// OnDisconnect fires once per server session teardown, or when a
	// client/serial channel leaves Connected for any reason other than a
	// reconnect-and-retry cycle.
	OnDisconnect func(ConnectionContext)
}

func (c Callbacks) dispatchData(ctx MessageContext) {
	if c.OnData != nil {
		c.OnData(ctx)
	}
}

func (c Callbacks) dispatchState(s linkstate.LinkState) {
	if c.OnState != nil {
		c.OnState(s)
	}
}

func (c Callbacks) dispatchBackpressure(id ClientID, n uint64) {
	if c.OnBackpressure != nil {
		c.OnBackpressure(id, n)
	}
}

func (c Callbacks) dispatchError(ctx ErrorContext) {
	if c.OnError != nil {
		c.OnError(ctx)
	}
}

func (c Callbacks) dispatchConnect(ctx ConnectionContext) {
	if c.OnConnect != nil {
		c.OnConnect(ctx)
	}
}

func (c Callbacks) dispatchDisconnect(ctx ConnectionContext) {
	if c.OnDisconnect != nil {
		c.OnDisconnect(ctx)
	}
}
