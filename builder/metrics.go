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

package builder

import (
	"strconv"
	"sync/atomic"

	"github.com/nabbar/golib/channel"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/metrics"
)

// instrument chains the Prometheus collector's bookkeeping in front of
// whatever callbacks the caller already configured, so attaching metrics
// never overrides a user-supplied handler.
func instrument(cb channel.Callbacks, m *metrics.Collector, name string) channel.Callbacks {
	if m == nil {
		return cb
	}

	m.SetState(name, linkstate.Idle)

	var connectedOnce atomic.Bool
	userState := cb.OnState
	cb.OnState = func(s linkstate.LinkState) {
		m.SetState(name, s)
		if s == linkstate.Connected && connectedOnce.Swap(true) {
			m.IncReconnect(name)
		}
		if userState != nil {
			userState(s)
		}
	}

	userData := cb.OnData
	cb.OnData = func(mc channel.MessageContext) {
		m.AddBytesRead(name, len(mc.Data))
		if userData != nil {
			userData(mc)
		}
	}

	userBP := cb.OnBackpressure
	cb.OnBackpressure = func(id channel.ClientID, n uint64) {
		m.SetQueuedBytes(name, n)
		if userBP != nil {
			userBP(id, n)
		}
	}

	userErr := cb.OnError
	cb.OnError = func(ec channel.ErrorContext) {
		kind := "unknown"
		if ec.Err != nil {
			kind = strconv.FormatUint(uint64(ec.Err.Code()), 10)
		}
		m.IncError(name, kind)
		if userErr != nil {
			userErr(ec)
		}
	}

	return cb
}

// instrumentSessionCount tracks the server gauge locally from connect/
// disconnect events, since the Server itself does not exist yet at the
// point the callback set is assembled.
func instrumentSessionCount(cb channel.Callbacks, m *metrics.Collector, name string) channel.Callbacks {
	var count atomic.Int64

	userConnect := cb.OnConnect
	cb.OnConnect = func(cc channel.ConnectionContext) {
		m.SetSessions(name, uint64(count.Add(1)))
		if userConnect != nil {
			userConnect(cc)
		}
	}

	userDisconnect := cb.OnDisconnect
	cb.OnDisconnect = func(cc channel.ConnectionContext) {
		n := count.Add(-1)
		if n < 0 {
			n = 0
		}
		m.SetSessions(name, uint64(n))
		if userDisconnect != nil {
			userDisconnect(cc)
		}
	}

	return cb
}
