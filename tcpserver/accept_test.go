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

package tcpserver_test

import (
	"context"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/golib/channel"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/size"
	. "github.com/nabbar/golib/tcpserver"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func baseConfig(port uint16) Config {
	return Config{
		Port:                  port,
		MaxConnections:        0,
		BackpressureThreshold: size.Size(1 << 20),
	}
}

var _ = Describe("Server", func() {
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

	It("binds, accepts a connection and delivers exactly one connect", func() {
		var connects int32
		var states []linkstate.LinkState
		var mu sync.Mutex

		srv := New(baseConfig(freePort()), channel.Callbacks{
			OnConnect: func(channel.ConnectionContext) { atomic.AddInt32(&connects, 1) },
			OnState: func(s linkstate.LinkState) {
				mu.Lock()
				states = append(states, s)
				mu.Unlock()
			},
		})

		Expect(srv.Start(ctx)).To(Succeed())
		Eventually(srv.IsListening).Should(BeTrue())

		addr := srv.Addr()
		Expect(addr).ToNot(BeNil())

		conn, err := net.Dial("tcp", addr.String())
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		Eventually(func() int32 { return atomic.LoadInt32(&connects) }).Should(Equal(int32(1)))
		Eventually(srv.SessionCount).Should(Equal(uint64(1)))

		Expect(srv.Stop(context.Background())).To(Succeed())
		Eventually(srv.SessionCount).Should(BeZero())
	})

	It("delivers data written by the peer through OnData", func() {
		received := make(chan []byte, 1)

		srv := New(baseConfig(freePort()), channel.Callbacks{
			OnData: func(m channel.MessageContext) { received <- m.Data },
		})

		Expect(srv.Start(ctx)).To(Succeed())
		Eventually(srv.IsListening).Should(BeTrue())

		conn, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		_, err = conn.Write([]byte("hello"))
		Expect(err).ToNot(HaveOccurred())

		Eventually(received).Should(Receive(Equal([]byte("hello"))))

		Expect(srv.Stop(context.Background())).To(Succeed())
	})

	It("broadcasts to every connected session", func() {
		srv := New(baseConfig(freePort()), channel.Callbacks{})
		Expect(srv.Start(ctx)).To(Succeed())
		Eventually(srv.IsListening).Should(BeTrue())

		c1, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer c1.Close()

		c2, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer c2.Close()

		Eventually(srv.SessionCount).Should(Equal(uint64(2)))

		srv.Broadcast([]byte("ping"))

		_ = c1.SetReadDeadline(time.Now().Add(2 * time.Second))
		_ = c2.SetReadDeadline(time.Now().Add(2 * time.Second))

		buf1 := make([]byte, 4)
		_, err = c1.Read(buf1)
		Expect(err).ToNot(HaveOccurred())
		Expect(buf1).To(Equal([]byte("ping")))

		buf2 := make([]byte, 4)
		_, err = c2.Read(buf2)
		Expect(err).ToNot(HaveOccurred())
		Expect(buf2).To(Equal([]byte("ping")))

		Expect(srv.Stop(context.Background())).To(Succeed())
	})

	It("rejects a second connection when MaxConnections is 1", func() {
		cfg := baseConfig(freePort())
		cfg.MaxConnections = 1

		srv := New(cfg, channel.Callbacks{})
		Expect(srv.Start(ctx)).To(Succeed())
		Eventually(srv.IsListening).Should(BeTrue())

		c1, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer c1.Close()

		Eventually(srv.SessionCount).Should(Equal(uint64(1)))

		c2, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer c2.Close()

		buf := make([]byte, 1)
		_ = c2.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, rerr := c2.Read(buf)
		Expect(rerr).To(HaveOccurred())

		Consistently(srv.SessionCount).Should(Equal(uint64(1)))

		Expect(srv.Stop(context.Background())).To(Succeed())
	})

	It("delivers exactly one disconnect when the peer closes its side", func() {
		disconnects := make(chan struct{}, 1)

		srv := New(baseConfig(freePort()), channel.Callbacks{
			OnDisconnect: func(channel.ConnectionContext) { disconnects <- struct{}{} },
		})

		Expect(srv.Start(ctx)).To(Succeed())
		Eventually(srv.IsListening).Should(BeTrue())

		conn, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())

		Eventually(srv.SessionCount).Should(Equal(uint64(1)))
		Expect(conn.Close()).To(Succeed())

		Eventually(disconnects).Should(Receive())
		Eventually(srv.SessionCount).Should(BeZero())

		Expect(srv.Stop(context.Background())).To(Succeed())
	})

	It("transitions to Error and calls stop() once bind-retry is exhausted", func() {
		port := freePort()

		held, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(int(port))))
		Expect(err).ToNot(HaveOccurred())
		defer held.Close()

		cfg := baseConfig(port)
		cfg.EnablePortRetry = true
		cfg.MaxPortRetries = 2
		cfg.PortRetryInterval = 10 * time.Millisecond

		var errs int32
		var states []linkstate.LinkState
		var mu sync.Mutex

		srv := New(cfg, channel.Callbacks{
			OnError: func(channel.ErrorContext) { atomic.AddInt32(&errs, 1) },
			OnState: func(s linkstate.LinkState) {
				mu.Lock()
				states = append(states, s)
				mu.Unlock()
			},
		})

		Expect(srv.Start(ctx)).To(Succeed())

		Eventually(func() linkstate.LinkState { return srv.State() }).Should(Equal(linkstate.Closed))
		Consistently(srv.IsListening).Should(BeFalse())
		Expect(srv.Addr()).To(BeNil())

		Eventually(func() int32 { return atomic.LoadInt32(&errs) }).Should(Equal(int32(1)))
		Consistently(func() int32 { return atomic.LoadInt32(&errs) }).Should(Equal(int32(1)))

		mu.Lock()
		seen := append([]linkstate.LinkState(nil), states...)
		mu.Unlock()
		Expect(seen).To(ContainElement(linkstate.Connecting))
		Expect(seen).To(ContainElement(linkstate.Error))

		Expect(srv.Stop(context.Background())).To(Succeed())
	})
})
