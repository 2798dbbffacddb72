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

// Package linkstate defines the observable lifecycle states shared by every
// channel kind (TCP client, TCP server, serial port).
package linkstate

// LinkState is the observable state of a Channel, delivered to on_state
// callbacks as transitions occur.
type LinkState uint8

const (
	// Idle is the state of a Channel that has been built but not started.
	Idle LinkState = iota
	// Connecting is entered while a client dials out, or while a serial
	// port is being opened. A channel may cycle back into Connecting from
	// Connected any number of times without ever becoming Closed.
	Connecting
	// Listening is the server-only state entered once the accept socket is
	// bound and is actively accepting incoming connections.
	Listening
	// Connected is entered once a transport handle is usable for I/O: a
	// dialed TCP socket, an accepted TCP session, or an opened serial port.
	Connected
	// Closed is a terminal state reached only via stop(). Once observed, no
	// further state transitions or data/error callbacks will be delivered.
	Closed
	// Error is a terminal state reached after an unrecoverable failure. It
	// is always followed by exactly one Closed transition once stop() runs.
	Error
)

func (s LinkState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Listening:
		return "listening"
	case Connected:
		return "connected"
	case Closed:
		return "closed"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether s is one of the two states a Channel cannot
// leave on its own: Closed and Error both end observable life, though Error
// is always followed by a final Closed notification once stop() completes.
func (s LinkState) IsTerminal() bool {
	return s == Closed || s == Error
}

// CanTransitionTo reports whether moving from s to next is a legal state
// transition per the channel state machine. It does not by itself enforce
// invariant I4 (exactly one Error notification) or I3 (monotonicity of
// Closed) -- those require tracking history, which is the Channel's job.
func (s LinkState) CanTransitionTo(next LinkState) bool {
	switch s {
	case Idle:
		return next == Connecting || next == Listening
	case Connecting:
		return next == Connected || next == Connecting || next == Error || next == Closed
	case Listening:
		return next == Listening || next == Closed
	case Connected:
		return next == Connecting || next == Closed || next == Error
	case Error:
		return next == Closed
	case Closed:
		return false
	default:
		return false
	}
}
