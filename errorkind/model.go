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

// Package errorkind registers the Channel error taxonomy as a band of
// errors.CodeError values, so every ErrorContext delivered to an on_error
// callback carries a stable code alongside its message.
package errorkind

import (
	liberr "github.com/nabbar/golib/errors"
)

// base is the first code of the band this package registers with the
// shared errors.CodeError registry. It is chosen well above the HTTP-status
// range the errors package reserves for itself.
const base liberr.CodeError = 7000

const (
	// Unknown covers any failure that cannot be classified more precisely.
	Unknown = base + iota
	// InvalidConfiguration is returned synchronously from a builder when a
	// field fails validation; no Channel is constructed for it.
	InvalidConfiguration
	// ResolveFailed means DNS/address resolution did not produce a usable
	// endpoint for a TCP client dial attempt.
	ResolveFailed
	// ConnectionRefused mirrors a TCP RST on connect (ECONNREFUSED).
	ConnectionRefused
	// ConnectionReset means the peer reset an established connection.
	ConnectionReset
	// ConnectionAborted means the local stack aborted the connection.
	ConnectionAborted
	// TimedOut covers connect, read and write deadlines.
	TimedOut
	// NotConnected is returned by operations attempted on a channel that has
	// no live transport handle (e.g. send_to before connect completes).
	NotConnected
	// PortInUse means a TCP server could not bind its listen address, or a
	// serial device was already held open by another process.
	PortInUse
	// AccessDenied covers OS-level permission failures opening a serial
	// device or binding a privileged port.
	AccessDenied
	// IoError is the catch-all for OS errors not covered by a more specific
	// kind above; the original message is preserved verbatim.
	IoError
	// BackpressureExceeded means a write queue grew past its configured
	// threshold and the channel (or session) was closed as a result.
	BackpressureExceeded
	// StartFailed means start() could not bring the channel out of Idle.
	StartFailed
	// Stopped tags the terminal notification produced by a user-initiated
	// stop(), as opposed to an unrecoverable transport failure.
	Stopped
)

func message(code liberr.CodeError) string {
	switch code {
	case Unknown:
		return "unknown channel error"
	case InvalidConfiguration:
		return "invalid configuration"
	case ResolveFailed:
		return "address resolution failed"
	case ConnectionRefused:
		return "connection refused"
	case ConnectionReset:
		return "connection reset by peer"
	case ConnectionAborted:
		return "connection aborted"
	case TimedOut:
		return "operation timed out"
	case NotConnected:
		return "channel is not connected"
	case PortInUse:
		return "address or port already in use"
	case AccessDenied:
		return "access denied"
	case IoError:
		return "i/o error"
	case BackpressureExceeded:
		return "write queue backpressure threshold exceeded"
	case StartFailed:
		return "channel failed to start"
	case Stopped:
		return "channel stopped"
	default:
		return liberr.UnknownMessage
	}
}

func init() {
	liberr.RegisterIdFctMessage(base, message)
}

// New builds an errors.Error tagged with kind, wrapping parent if given.
func New(kind liberr.CodeError, msg string, parent ...error) liberr.Error {
	if msg == "" {
		return kind.Error(parent...)
	}
	return liberr.New(uint16(kind), msg, parent...)
}
