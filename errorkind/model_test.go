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

package errorkind_test

import (
	"errors"

	liberr "github.com/nabbar/golib/errors"
	. "github.com/nabbar/golib/errorkind"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("New", func() {
	It("builds an error carrying the given code", func() {
		e := New(ConnectionRefused, "dial tcp 127.0.0.1:9: connect: connection refused")
		Expect(e).ToNot(BeNil())
		Expect(e.Code()).To(Equal(uint16(ConnectionRefused)))
	})

	It("falls back to the registered message when msg is empty", func() {
		e := New(NotConnected, "")
		Expect(e).ToNot(BeNil())
		Expect(e.Error()).To(ContainSubstring("not connected"))
	})

	It("wraps a parent error so it remains inspectable", func() {
		parent := errors.New("wsarecv: connection reset by remote host")
		e := New(ConnectionReset, "read failed", parent)
		Expect(e).ToNot(BeNil())
		Expect(e.Error()).To(ContainSubstring("read failed"))
	})

	It("covers every registered kind with a non-empty message", func() {
		kinds := []liberr.CodeError{
			Unknown, InvalidConfiguration, ResolveFailed, ConnectionRefused,
			ConnectionReset, ConnectionAborted, TimedOut, NotConnected,
			PortInUse, AccessDenied, IoError, BackpressureExceeded,
			StartFailed, Stopped,
		}
		for _, k := range kinds {
			e := New(k, "")
			Expect(e.Error()).ToNot(BeEmpty())
			Expect(e.Code()).To(Equal(uint16(k)))
		}
	})
})
