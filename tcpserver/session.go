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

package tcpserver

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/golib/channel"
	"github.com/nabbar/golib/errorkind"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/writequeue"
)

// Session is one accepted TCP connection on a Server. Its lifecycle is
// exactly one connect, zero or more data deliveries, then exactly one
// disconnect (SR2) -- no event is delivered after disconnect.
type Session struct {
	id     channel.ClientID
	server *Server
	conn   net.Conn

	core *channel.Core
	wq   *writequeue.Queue

	wmu sync.Mutex

	lastActivity atomic.Int64

	cancel context.CancelFunc
}

func newSession(id channel.ClientID, conn net.Conn, srv *Server) *Session {
	s := &Session{id: id, server: srv, conn: conn}
	s.core = channel.NewCore(id, srv.cb)

	s.wq = writequeue.New(srv.cfg.BackpressureThreshold, func(n uint64) { s.core.NotifyBackpressure(n) })
	s.core.SetDrain(func() uint64 { return s.wq.Drain() })
	s.core.SetClose(func() error { return conn.Close() })

	s.touch()

	return s
}

func (s *Session) touch() {
	s.lastActivity.Store(time.Now().UnixNano())
}

func (s *Session) idleFor() time.Duration {
	return time.Since(time.Unix(0, s.lastActivity.Load()))
}

// start begins the session's read loop under ctx (derived from the
// server's run context, so stop() cancellation reaches every session).
func (s *Session) start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.core.SetCancel(cancel)

	s.core.TransitionTo(linkstate.Connected)
	s.core.NotifyConnect(s.conn.RemoteAddr().String())

	go s.readLoop(cctx)
}

func (s *Session) readLoop(ctx context.Context) {
	buf := make([]byte, defaultReadBufferSize)

	for {
		if ctx.Err() != nil {
			break
		}

		n, err := s.conn.Read(buf)
		if n > 0 {
			s.touch()
			cp := make([]byte, n)
			copy(cp, buf[:n])
			s.core.NotifyData(cp, s.conn.RemoteAddr().String())
		}

		if err != nil {
			break
		}
	}

	_ = s.Stop(context.Background())
}

// Stop tears the session down: closes the socket, drains its write queue,
// delivers exactly one disconnect and one Closed, and removes it from the
// registry (SR3). Idempotent.
func (s *Session) Stop(ctx context.Context) error {
	if s.core.IsStopped() {
		return nil
	}

	s.core.NotifyDisconnect(s.conn.RemoteAddr().String())
	err := s.core.Stop(ctx)
	s.server.registry.Remove(s.id)
	return err
}

// reapIdle closes the session for exceeding its configured idle timeout.
func (s *Session) reapIdle() {
	s.core.NotifyError(errorkind.New(errorkind.TimedOut, "session idle timeout exceeded"))
	_ = s.Stop(context.Background())
}

// WriteCopy enqueues a defensive copy of data for this session.
func (s *Session) WriteCopy(data []byte) error { return s.enqueue(data, writequeue.ModeCopy) }

// WriteMove enqueues data by reference, taking ownership of it.
func (s *Session) WriteMove(data []byte) error { return s.enqueue(data, writequeue.ModeMove) }

// WriteShared enqueues data by reference on the understanding the caller
// will not modify it until written.
func (s *Session) WriteShared(data []byte) error { return s.enqueue(data, writequeue.ModeShared) }

func (s *Session) enqueue(data []byte, mode writequeue.Mode) error {
	if err := s.wq.Enqueue(data, mode); err != nil {
		s.core.NotifyError(err)
		go func() { _ = s.Stop(context.Background()) }()
		return err
	}

	s.pumpWrite()
	return nil
}

func (s *Session) pumpWrite() {
	buf, ok := s.wq.TryBeginWrite()
	if !ok {
		return
	}

	go s.writeOnce(buf)
}

func (s *Session) writeOnce(buf []byte) {
	s.wmu.Lock()
	n, err := s.conn.Write(buf)
	s.wmu.Unlock()

	if n > 0 {
		s.touch()
	}

	hasMore := s.wq.CompleteWrite(n)

	if err != nil {
		s.core.NotifyError(errorkind.New(errorkind.IoError, "session write failed", err))
		go func() { _ = s.Stop(context.Background()) }()
		return
	}

	if hasMore {
		s.pumpWrite()
	}
}
