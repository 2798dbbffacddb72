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

package metrics_test

import (
	"github.com/nabbar/golib/linkstate"
	. "github.com/nabbar/golib/metrics"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
)

var _ = Describe("Collector", func() {
	It("registers its collectors on construction without panicking", func() {
		reg := prometheus.NewRegistry()
		Expect(func() { New(reg) }).ToNot(Panic())
	})

	It("records state, bytes, queue depth, sessions, reconnects and errors", func() {
		reg := prometheus.NewRegistry()
		c := New(reg)

		c.SetState("client-a", linkstate.Connected)
		c.AddBytesRead("client-a", 128)
		c.AddBytesWritten("client-a", 64)
		c.SetQueuedBytes("client-a", 4096)
		c.SetSessions("server-a", 3)
		c.IncReconnect("client-a")
		c.IncError("client-a", "7003")

		mfs, err := reg.Gather()
		Expect(err).ToNot(HaveOccurred())
		Expect(mfs).ToNot(BeEmpty())
	})

	It("ignores non-positive byte deltas", func() {
		reg := prometheus.NewRegistry()
		c := New(reg)

		c.AddBytesRead("x", 0)
		c.AddBytesRead("x", -5)

		mfs, err := reg.Gather()
		Expect(err).ToNot(HaveOccurred())
		Expect(mfs).ToNot(BeNil())
	})

	It("never panics on a nil receiver (optional wiring)", func() {
		var c *Collector
		Expect(func() {
			c.SetState("x", linkstate.Connected)
			c.AddBytesRead("x", 10)
			c.AddBytesWritten("x", 10)
			c.SetQueuedBytes("x", 10)
			c.SetSessions("x", 1)
			c.IncReconnect("x")
			c.IncError("x", "unknown")
		}).ToNot(Panic())
	})
})
