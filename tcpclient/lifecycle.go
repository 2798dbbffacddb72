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

package tcpclient

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/nabbar/golib/errorkind"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/reconnect"
)

// run is the Client's start function, handed to startStop.New. It cycles
// connect attempts through the reconnect policy until ctx is cancelled or
// the policy gives up.
func (c *Client) run(ctx context.Context) error {
	attempt := 0

	for {
		if ctx.Err() != nil || c.core.IsStopped() {
			return nil
		}

		c.transitionConnecting()

		conn, err := c.connectOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			decision := c.policy.Next(reconnect.LastError{Err: err, Attempt: attempt})
			attempt++

			if !decision.Retry {
				c.core.NotifyError(err)
				go func() { _ = c.Stop(context.Background()) }()
				return nil
			}

			if !c.sleep(ctx, decision.Delay) {
				return nil
			}

			continue
		}

		attempt = 0
		c.cmu.Lock()
		c.conn = conn
		c.cmu.Unlock()

		c.core.TransitionTo(linkstate.Connected)
		c.core.NotifyConnect(conn.RemoteAddr().String())

		c.readLoop(ctx, conn)

		c.cmu.Lock()
		c.conn = nil
		c.cmu.Unlock()

		if ctx.Err() != nil {
			return nil
		}

		c.core.NotifyDisconnect(c.cfg.address())
	}
}

// connectOnce resolves and dials a single endpoint, bounded by the
// configured connect timeout.
func (c *Client) connectOnce(ctx context.Context) (net.Conn, error) {
	cctx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(cctx, c.cfg.network(), c.cfg.address())
	if err != nil {
		return nil, classifyDialError(err)
	}

	return conn, nil
}

func classifyDialError(err error) error {
	return classifyNetError(err, "dial failed")
}

func classifyNetError(err error, msg string) error {
	var kind = errorkind.IoError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = errorkind.TimedOut
	case isRefused(err):
		kind = errorkind.ConnectionRefused
	case isNoSuchHost(err):
		kind = errorkind.ResolveFailed
	case isReset(err):
		kind = errorkind.ConnectionReset
	}

	return errorkind.New(kind, msg, err)
}

func isReset(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Err != nil && containsAny(opErr.Err.Error(), "connection reset")
}

func isRefused(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial" && opErrIsRefused(opErr)
}

func opErrIsRefused(opErr *net.OpError) bool {
	return opErr.Err != nil && containsAny(opErr.Err.Error(), "connection refused")
}

func isNoSuchHost(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func containsAny(s, substr string) bool {
	return len(s) >= len(substr) && indexOf(s, substr) >= 0
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// sleep blocks for d or until ctx is done, returning false in the latter
// case so the caller can unwind without retrying.
func (c *Client) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// readLoop delivers bytes to on_data until the connection fails or closes,
// or ctx is cancelled (stop() in progress).
func (c *Client) readLoop(ctx context.Context, conn net.Conn) {
	buf := make([]byte, defaultReadBufferSize)

	for {
		if ctx.Err() != nil {
			return
		}

		n, err := conn.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			c.core.NotifyData(cp, conn.RemoteAddr().String())
		}

		if err != nil {
			if ctx.Err() != nil {
				return
			}
			return
		}
	}
}

// teardown is the Client's stop function, handed to startStop.New. The
// transport handle itself is closed by channel.Core via SetClose; this only
// needs to satisfy the startStop.Func signature.
func (c *Client) teardown(_ context.Context) error {
	return nil
}
