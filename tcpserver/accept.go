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
	"time"

	"github.com/nabbar/golib/errorkind"
	"github.com/nabbar/golib/linkstate"
)

// run is the Server's start function, handed to startStop.New: it binds
// the listen address (retrying per EnablePortRetry), then accepts
// connections until ctx is cancelled.
func (s *Server) run(ctx context.Context) error {
	s.core.TransitionTo(linkstate.Connecting)

	ln, err := s.bindWithRetry(ctx)
	if err != nil {
		s.core.NotifyError(errorkind.New(errorkind.StartFailed, "server failed to start", err))
		go func() { _ = s.Stop(context.Background()) }()
		return nil
	}

	s.lmu.Lock()
	s.listener = ln
	s.lmu.Unlock()

	s.core.TransitionTo(linkstate.Listening)

	if iv := s.cfg.reapInterval(); iv > 0 {
		go s.reapLoop(ctx, iv)
	}

	s.acceptLoop(ctx, ln)
	return nil
}

func (s *Server) bindWithRetry(ctx context.Context) (net.Listener, error) {
	var lc net.ListenConfig
	attempt := 0

	for {
		ln, err := lc.Listen(ctx, s.cfg.network(), s.cfg.address())
		if err == nil {
			return ln, nil
		}

		if !s.cfg.EnablePortRetry || attempt >= s.cfg.MaxPortRetries {
			return nil, errorkind.New(errorkind.PortInUse, "bind failed", err)
		}

		attempt++

		t := time.NewTimer(s.cfg.PortRetryInterval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, errorkind.New(errorkind.Stopped, "bind cancelled", ctx.Err())
		case <-t.C:
		}
	}
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}

		if s.cfg.MaxConnections == 1 && s.registry.Len() >= 1 {
			_ = conn.Close()
			continue
		}

		id := s.allocateID()
		sess := newSession(id, conn, s)
		if s.logger != nil {
			sess.core.SetLogger(s.logger)
		}

		if !s.registry.TryInsert(sess) {
			_ = conn.Close()
			continue
		}

		sess.start(ctx)
	}
}

// teardown is the Server's stop function, handed to startStop.New. The
// listener itself is closed by channel.Core via SetClose.
func (s *Server) teardown(_ context.Context) error {
	return nil
}
