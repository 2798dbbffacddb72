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

package channel_test

import (
	"context"
	"sync/atomic"

	. "github.com/nabbar/golib/channel"
	"github.com/nabbar/golib/errorkind"
	"github.com/nabbar/golib/linkstate"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Core", func() {
	Context("state machine", func() {
		It("starts Idle and follows legal transitions", func() {
			c := NewCore(0, Callbacks{})
			Expect(c.State()).To(Equal(linkstate.Idle))

			Expect(c.TransitionTo(linkstate.Connecting)).To(BeTrue())
			Expect(c.State()).To(Equal(linkstate.Connecting))

			Expect(c.TransitionTo(linkstate.Connected)).To(BeTrue())
			Expect(c.State()).To(Equal(linkstate.Connected))
		})

		It("rejects an illegal transition and leaves state unchanged", func() {
			c := NewCore(0, Callbacks{})
			Expect(c.TransitionTo(linkstate.Connected)).To(BeFalse())
			Expect(c.State()).To(Equal(linkstate.Idle))
		})

		It("dispatches OnState for every legal transition", func() {
			var seen []linkstate.LinkState
			c := NewCore(0, Callbacks{OnState: func(s linkstate.LinkState) {
				seen = append(seen, s)
			}})

			c.TransitionTo(linkstate.Connecting)
			c.TransitionTo(linkstate.Connected)

			Expect(seen).To(Equal([]linkstate.LinkState{linkstate.Connecting, linkstate.Connected}))
		})
	})

	Context("NotifyError (I4)", func() {
		It("delivers exactly one error notification even under repeated calls", func() {
			var errCount int32
			var stateCount int32

			c := NewCore(0, Callbacks{
				OnError: func(ErrorContext) { atomic.AddInt32(&errCount, 1) },
				OnState: func(linkstate.LinkState) { atomic.AddInt32(&stateCount, 1) },
			})

			e := errorkind.New(errorkind.ConnectionReset, "")
			Expect(c.NotifyError(e)).To(BeTrue())
			Expect(c.NotifyError(e)).To(BeFalse())
			Expect(c.NotifyError(e)).To(BeFalse())

			Expect(atomic.LoadInt32(&errCount)).To(Equal(int32(1)))
			Expect(atomic.LoadInt32(&stateCount)).To(Equal(int32(1)))
			Expect(c.State()).To(Equal(linkstate.Error))
		})
	})

	Context("Stop (six-step contract)", func() {
		It("is idempotent under repeated and concurrent calls", func() {
			var cancelled, closed int32
			var drained uint64

			c := NewCore(0, Callbacks{})
			c.SetCancel(func() { atomic.AddInt32(&cancelled, 1) })
			c.SetClose(func() error { atomic.AddInt32(&closed, 1); return nil })
			c.SetDrain(func() uint64 { atomic.AddUint64(&drained, 7); return 7 })

			done := make(chan struct{}, 8)
			for i := 0; i < 8; i++ {
				go func() {
					_ = c.Stop(context.Background())
					done <- struct{}{}
				}()
			}
			for i := 0; i < 8; i++ {
				<-done
			}

			Expect(atomic.LoadInt32(&cancelled)).To(Equal(int32(1)))
			Expect(atomic.LoadInt32(&closed)).To(Equal(int32(1)))
			Expect(c.State()).To(Equal(linkstate.Closed))
			Expect(c.IsStopped()).To(BeTrue())
		})

		It("never fires a callback once stopped (I1)", func() {
			var calls int32
			c := NewCore(0, Callbacks{
				OnData:         func(MessageContext) { atomic.AddInt32(&calls, 1) },
				OnConnect:      func(ConnectionContext) { atomic.AddInt32(&calls, 1) },
				OnDisconnect:   func(ConnectionContext) { atomic.AddInt32(&calls, 1) },
				OnBackpressure: func(ClientID, uint64) { atomic.AddInt32(&calls, 1) },
			})

			Expect(c.Stop(context.Background())).To(BeNil())

			c.NotifyData([]byte("x"), "")
			c.NotifyConnect("peer")
			c.NotifyDisconnect("peer")
			c.NotifyBackpressure(10)
			Expect(c.TransitionTo(linkstate.Connecting)).To(BeFalse())

			Expect(atomic.LoadInt32(&calls)).To(BeZero())
		})

		It("still delivers the terminal Closed state exactly once", func() {
			var states []linkstate.LinkState
			c := NewCore(0, Callbacks{OnState: func(s linkstate.LinkState) {
				states = append(states, s)
			}})

			Expect(c.Stop(context.Background())).To(BeNil())
			Expect(c.Stop(context.Background())).To(BeNil())

			Expect(states).To(Equal([]linkstate.LinkState{linkstate.Closed}))
		})
	})

	Context("ErrorKind helper", func() {
		It("wraps a parent error when given one", func() {
			parent := errorkind.New(errorkind.IoError, "eof")
			e := ErrorKind(errorkind.ConnectionReset, "read failed", parent)
			Expect(e.Error()).To(ContainSubstring("read failed"))
		})

		It("omits the parent chain when none is given", func() {
			e := ErrorKind(errorkind.TimedOut, "dial timeout", nil)
			Expect(e.Error()).To(ContainSubstring("dial timeout"))
		})
	})
})
