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

package linkstate_test

import (
	. "github.com/nabbar/golib/linkstate"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LinkState", func() {
	DescribeTable("String",
		func(s LinkState, expect string) {
			Expect(s.String()).To(Equal(expect))
		},
		Entry("Idle", Idle, "idle"),
		Entry("Connecting", Connecting, "connecting"),
		Entry("Listening", Listening, "listening"),
		Entry("Connected", Connected, "connected"),
		Entry("Closed", Closed, "closed"),
		Entry("Error", Error, "error"),
		Entry("unknown value", LinkState(99), "unknown"),
	)

	DescribeTable("IsTerminal",
		func(s LinkState, expect bool) {
			Expect(s.IsTerminal()).To(Equal(expect))
		},
		Entry("Idle", Idle, false),
		Entry("Connecting", Connecting, false),
		Entry("Listening", Listening, false),
		Entry("Connected", Connected, false),
		Entry("Closed", Closed, true),
		Entry("Error", Error, true),
	)

	Context("CanTransitionTo", func() {
		It("allows Idle to become Connecting or Listening only", func() {
			Expect(Idle.CanTransitionTo(Connecting)).To(BeTrue())
			Expect(Idle.CanTransitionTo(Listening)).To(BeTrue())
			Expect(Idle.CanTransitionTo(Connected)).To(BeFalse())
			Expect(Idle.CanTransitionTo(Closed)).To(BeFalse())
			Expect(Idle.CanTransitionTo(Error)).To(BeFalse())
		})

		It("allows Connecting to cycle to itself, Connected, Error or Closed", func() {
			Expect(Connecting.CanTransitionTo(Connecting)).To(BeTrue())
			Expect(Connecting.CanTransitionTo(Connected)).To(BeTrue())
			Expect(Connecting.CanTransitionTo(Error)).To(BeTrue())
			Expect(Connecting.CanTransitionTo(Closed)).To(BeTrue())
			Expect(Connecting.CanTransitionTo(Listening)).To(BeFalse())
		})

		It("allows Connected to fall back to Connecting or go terminal", func() {
			Expect(Connected.CanTransitionTo(Connecting)).To(BeTrue())
			Expect(Connected.CanTransitionTo(Closed)).To(BeTrue())
			Expect(Connected.CanTransitionTo(Error)).To(BeTrue())
			Expect(Connected.CanTransitionTo(Listening)).To(BeFalse())
		})

		It("allows Listening to stay Listening or close, never to dial out", func() {
			Expect(Listening.CanTransitionTo(Listening)).To(BeTrue())
			Expect(Listening.CanTransitionTo(Closed)).To(BeTrue())
			Expect(Listening.CanTransitionTo(Connecting)).To(BeFalse())
			Expect(Listening.CanTransitionTo(Connected)).To(BeFalse())
		})

		It("allows Error only to reach Closed", func() {
			Expect(Error.CanTransitionTo(Closed)).To(BeTrue())
			Expect(Error.CanTransitionTo(Connecting)).To(BeFalse())
			Expect(Error.CanTransitionTo(Idle)).To(BeFalse())
		})

		It("never lets Closed transition anywhere, including to itself", func() {
			Expect(Closed.CanTransitionTo(Closed)).To(BeFalse())
			Expect(Closed.CanTransitionTo(Idle)).To(BeFalse())
			Expect(Closed.CanTransitionTo(Error)).To(BeFalse())
		})
	})
})
