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
	"fmt"

	"github.com/nabbar/golib/channel"
	"github.com/nabbar/golib/writequeue"
)

// Broadcast enqueues a single shared buffer to every session registered at
// the moment of the call; sessions that join afterward do not receive it.
func (s *Server) Broadcast(data []byte) {
	s.registry.Range(func(_ channel.ClientID, sess *Session) bool {
		_ = sess.enqueue(data, writequeue.ModeShared)
		return true
	})
}

// SendTo enqueues data for delivery to one session, failing if id is not
// currently registered.
func (s *Server) SendTo(id channel.ClientID, data []byte) error {
	sess, ok := s.registry.Get(id)
	if !ok {
		return fmt.Errorf("tcpserver: no session registered for client %d", id)
	}

	return sess.WriteCopy(data)
}
