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

package serialport_test

import (
	"context"
	"sync"
	"time"

	"github.com/nabbar/golib/channel"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/reconnect"
	. "github.com/nabbar/golib/serialport"
	"github.com/nabbar/golib/size"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func baseConfig() Config {
	return Config{
		Device:                "/dev/does-not-exist-unilink-test",
		BaudRate:              9600,
		DataBits:              8,
		StopBits:              1,
		RetryInterval:         20 * time.Millisecond,
		BackpressureThreshold: size.Size(1 << 20),
	}
}

var _ = Describe("Port", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
	})

	AfterEach(func() {
		cancel()
	})

	It("starts Idle and reports not connected before Start", func() {
		p := New(baseConfig(), channel.Callbacks{}, nil)
		Expect(p.State()).To(Equal(linkstate.Idle))
		Expect(p.IsConnected()).To(BeFalse())
	})

	It("moves to Error once a bounded reconnect policy gives up on a missing device", func() {
		cfg := baseConfig()

		var mu sync.Mutex
		var states []linkstate.LinkState

		p := New(cfg, channel.Callbacks{
			OnState: func(s linkstate.LinkState) {
				mu.Lock()
				states = append(states, s)
				mu.Unlock()
			},
		}, reconnect.Fixed(10*time.Millisecond, 1))

		Expect(p.Start(ctx)).To(Succeed())

		Eventually(func() linkstate.LinkState { return p.State() }).Should(Equal(linkstate.Closed))
		Consistently(p.IsConnected).Should(BeFalse())

		mu.Lock()
		seen := append([]linkstate.LinkState(nil), states...)
		mu.Unlock()
		Expect(seen).To(ContainElement(linkstate.Connecting))
		Expect(seen).To(ContainElement(linkstate.Error))

		Expect(p.Stop(context.Background())).To(Succeed())
	})

	It("delivers exactly one error notification even across repeated retries (I4)", func() {
		var errCount int
		var mu sync.Mutex

		p := New(baseConfig(), channel.Callbacks{
			OnError: func(channel.ErrorContext) {
				mu.Lock()
				errCount++
				mu.Unlock()
			},
		}, reconnect.Fixed(5*time.Millisecond, 3))

		Expect(p.Start(ctx)).To(Succeed())
		Eventually(func() linkstate.LinkState { return p.State() }).Should(Equal(linkstate.Closed))

		time.Sleep(50 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		Expect(errCount).To(Equal(1))

		Expect(p.Stop(context.Background())).To(Succeed())
	})

	It("reports queued bytes as zero before any write", func() {
		p := New(baseConfig(), channel.Callbacks{}, nil)
		Expect(p.QueuedBytes()).To(BeZero())
	})

	It("never panics when SetLogger is called before Start", func() {
		p := New(baseConfig(), channel.Callbacks{}, nil)
		Expect(func() { p.SetLogger(nil) }).ToNot(Panic())
	})
})
