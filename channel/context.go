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

// Package channel defines the Channel lifecycle contract shared by the TCP
// client, TCP server and serial transports: the observable state machine,
// the callback contexts delivered to user code, and the stop() guarantee
// that no callback fires once stop() has returned.
package channel

import liberr "github.com/nabbar/golib/errors"

// ClientID identifies one session on a multi-client TCP server. It is zero
// for channel kinds that never multiplex more than one peer (TCP client,
// serial port).
type ClientID uint64

// MessageContext accompanies every byte delivery, whether from a TCP
// client's single connection, a TCP server session, or a serial port.
type MessageContext struct {
	ClientID      ClientID
	Data          []byte
	RemoteAddress string
}

// ConnectionContext accompanies connect and disconnect notifications.
type ConnectionContext struct {
	ClientID   ClientID
	ClientInfo string
}

// ErrorContext accompanies every on_error delivery. ClientID is zero unless
// the failure is scoped to one server session.
type ErrorContext struct {
	Err      liberr.Error
	ClientID ClientID
}

func (e ErrorContext) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
