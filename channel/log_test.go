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

	. "github.com/nabbar/golib/channel"
	"github.com/nabbar/golib/errorkind"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SetLogger", func() {
	It("never panics when no logger has been attached", func() {
		c := NewCore(0, Callbacks{})
		Expect(func() {
			c.TransitionTo(linkstate.Connecting)
			c.NotifyError(errorkind.New(errorkind.IoError, ""))
			_ = c.Stop(context.Background())
		}).ToNot(Panic())
	})

	It("accepts a real logger collaborator without altering dispatch behavior", func() {
		l := logger.New(context.Background())
		var states []linkstate.LinkState

		c := NewCore(0, Callbacks{OnState: func(s linkstate.LinkState) {
			states = append(states, s)
		}})
		c.SetLogger(func() logger.Logger { return l })

		Expect(c.TransitionTo(linkstate.Connecting)).To(BeTrue())
		Expect(c.TransitionTo(linkstate.Connected)).To(BeTrue())
		Expect(c.Stop(context.Background())).To(BeNil())

		Expect(states).To(Equal([]linkstate.LinkState{
			linkstate.Connecting, linkstate.Connected, linkstate.Closed,
		}))
	})

	It("tolerates a FuncLog that itself returns nil", func() {
		c := NewCore(0, Callbacks{})
		c.SetLogger(func() logger.Logger { return nil })

		Expect(func() {
			c.TransitionTo(linkstate.Connecting)
		}).ToNot(Panic())
	})
})
