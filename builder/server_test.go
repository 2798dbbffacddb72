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

	. "github.com/nabbar/golib/builder"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/metrics"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
)

var _ = Describe("ServerBuilder", func() {
	It("builds a server without binding a socket", func() {
		s, err := NewServer(9100).Build(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(s).ToNot(BeNil())
		Expect(s.State()).To(Equal(linkstate.Idle))
		Expect(s.IsListening()).To(BeFalse())
		Expect(s.SessionCount()).To(BeZero())
	})

	It("rejects an invalid configuration before any I/O", func() {
		_, err := NewServer(0).WithClientLimit(-5).Build(context.Background())
		Expect(err).To(HaveOccurred())
	})

	It("applies the client-limit convenience constants", func() {
		s, err := NewServer(9101).WithClientLimit(int(ClientLimitSingle)).Build(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(s).ToNot(BeNil())
	})

	It("wires both data metrics and the session-count tracker when metrics are attached", func() {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)

		s, err := NewServer(9102).WithMetrics(m, "test-server").Build(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(s).ToNot(BeNil())

		mfs, gerr := reg.Gather()
		Expect(gerr).ToNot(HaveOccurred())
		Expect(mfs).ToNot(BeEmpty())
	})
})
