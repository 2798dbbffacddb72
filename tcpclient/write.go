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
	"net"

	"github.com/nabbar/golib/writequeue"
)

// WriteCopy enqueues a defensive copy of data (async_write_copy): the
// caller may reuse data immediately after this call returns.
func (c *Client) WriteCopy(data []byte) error {
	return c.enqueue(data, writequeue.ModeCopy)
}

// WriteMove enqueues data by reference, taking ownership of it
// (async_write_move): the caller must not touch data again.
func (c *Client) WriteMove(data []byte) error {
	return c.enqueue(data, writequeue.ModeMove)
}

// WriteShared enqueues data by reference on the understanding that the
// caller guarantees it remains unmodified until written (async_write_shared).
func (c *Client) WriteShared(data []byte) error {
	return c.enqueue(data, writequeue.ModeShared)
}

func (c *Client) enqueue(data []byte, mode writequeue.Mode) error {
	if err := c.wq.Enqueue(data, mode); err != nil {
		c.core.NotifyError(err)
		go func() { _ = c.Stop(context.Background()) }()
		return err
	}

	c.pumpWrite()
	return nil
}

// pumpWrite drains the write queue against the live connection, honoring
// WQ1 (at most one outstanding write) by relying on writequeue.Queue's own
// in-flight flag: if a write is already running, this call is a no-op.
func (c *Client) pumpWrite() {
	c.cmu.Lock()
	conn := c.conn
	c.cmu.Unlock()

	if conn == nil {
		return
	}

	buf, ok := c.wq.TryBeginWrite()
	if !ok {
		return
	}

	go c.writeOnce(conn, buf)
}

func (c *Client) writeOnce(conn net.Conn, buf []byte) {
	n, err := conn.Write(buf)

	hasMore := c.wq.CompleteWrite(n)

	if err != nil {
		c.core.NotifyError(classifyNetError(err, "write failed"))
		go func() { _ = c.Stop(context.Background()) }()
		return
	}

	if hasMore {
		c.pumpWrite()
	}
}
