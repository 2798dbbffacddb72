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

package builder_test

import (
	"context"
	"time"

	. "github.com/nabbar/golib/builder"
	"github.com/nabbar/golib/channel"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/metrics"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
)

var _ = Describe("ClientBuilder", func() {
	It("builds a client in Idle state without connecting when AutoManage is unset", func() {
		c, err := NewClient("example.org", 9000).Build(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(c).ToNot(BeNil())
		Expect(c.State()).To(Equal(linkstate.Idle))
		Expect(c.IsConnected()).To(BeFalse())
	})

	It("rejects an invalid configuration before any I/O", func() {
		_, err := NewClient("", 0).Build(context.Background())
		Expect(err).To(HaveOccurred())
	})

	It("composes fluent setters onto the underlying configuration", func() {
		var gotState linkstate.LinkState
		c, err := NewClient("example.org", 9000).
			WithConnectTimeout(3 * time.Second).
			WithMaxRetries(4).
			OnState(func(s linkstate.LinkState) { gotState = s }).
			Build(context.Background())

		Expect(err).ToNot(HaveOccurred())
		Expect(c).ToNot(BeNil())
		_ = gotState
	})

	It("wires a metrics collector so the registry observes channel activity", func() {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)

		var observed []linkstate.LinkState
		c, err := NewClient("example.org", 9000).
			WithMetrics(m, "test-client").
			OnState(func(s linkstate.LinkState) { observed = append(observed, s) }).
			Build(context.Background())

		Expect(err).ToNot(HaveOccurred())
		Expect(c).ToNot(BeNil())

		mfs, gerr := reg.Gather()
		Expect(gerr).ToNot(HaveOccurred())
		Expect(mfs).ToNot(BeEmpty())
	})

	It("never overrides a user OnError callback when metrics are attached", func() {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)

		var fired bool
		c, err := NewClient("example.org", 9000).
			WithMetrics(m, "test-client-2").
			OnError(func(channel.ErrorContext) { fired = true }).
			Build(context.Background())

		Expect(err).ToNot(HaveOccurred())
		Expect(c).ToNot(BeNil())
		_ = fired
	})
})
