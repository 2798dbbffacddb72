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

package serialport

import (
	"context"

	"github.com/nabbar/golib/errorkind"
	"github.com/nabbar/golib/writequeue"
	tarmserial "github.com/tarm/serial"
)

// WriteCopy enqueues a defensive copy of data.
func (p *Port) WriteCopy(data []byte) error { return p.enqueue(data, writequeue.ModeCopy) }

// WriteMove enqueues data by reference, taking ownership of it.
func (p *Port) WriteMove(data []byte) error { return p.enqueue(data, writequeue.ModeMove) }

// WriteShared enqueues data by reference on the understanding the caller
// will not modify it until written.
func (p *Port) WriteShared(data []byte) error { return p.enqueue(data, writequeue.ModeShared) }

func (p *Port) enqueue(data []byte, mode writequeue.Mode) error {
	if err := p.wq.Enqueue(data, mode); err != nil {
		p.core.NotifyError(err)
		go func() { _ = p.Stop(context.Background()) }()
		return err
	}

	p.pumpWrite()
	return nil
}

func (p *Port) pumpWrite() {
	p.pmu.Lock()
	sp := p.sp
	p.pmu.Unlock()

	if sp == nil {
		return
	}

	buf, ok := p.wq.TryBeginWrite()
	if !ok {
		return
	}

	go p.writeOnce(sp, buf)
}

func (p *Port) writeOnce(sp *tarmserial.Port, buf []byte) {
	n, err := sp.Write(buf)

	hasMore := p.wq.CompleteWrite(n)

	if err != nil {
		p.core.NotifyError(errorkind.New(errorkind.IoError, "serial write failed", err))
		go func() { _ = p.Stop(context.Background()) }()
		return
	}

	if hasMore {
		p.pumpWrite()
	}
}
