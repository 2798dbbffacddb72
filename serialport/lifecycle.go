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
	"time"

	"github.com/nabbar/golib/errorkind"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/reconnect"
	tarmserial "github.com/tarm/serial"
)

// run is the Port's start function, handed to startStop.New. It cycles
// open attempts through the reconnect policy until ctx is cancelled or the
// policy gives up, mirroring tcpclient's connect-retry-read structure.
func (p *Port) run(ctx context.Context) error {
	attempt := 0

	for {
		if ctx.Err() != nil {
			return nil
		}

		p.core.TransitionTo(linkstate.Connecting)

		sp, err := tarmserial.OpenPort(p.cfg.toTarmConfig())
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			decision := p.policy.Next(reconnect.LastError{Err: classifyOpenError(err), Attempt: attempt})
			attempt++

			if !decision.Retry {
				p.core.NotifyError(classifyOpenError(err))
				go func() { _ = p.Stop(context.Background()) }()
				return nil
			}

			if !p.sleep(ctx, decision.Delay) {
				return nil
			}

			continue
		}

		attempt = 0
		p.pmu.Lock()
		p.sp = sp
		p.pmu.Unlock()

		p.core.TransitionTo(linkstate.Connected)
		p.core.NotifyConnect(p.cfg.Device)

		p.readLoop(ctx, sp)

		p.pmu.Lock()
		p.sp = nil
		p.pmu.Unlock()

		if ctx.Err() != nil {
			return nil
		}

		p.core.NotifyDisconnect(p.cfg.Device)

		if !p.cfg.ReopenOnError {
			p.core.NotifyError(errorkind.New(errorkind.IoError, "serial port closed"))
			go func() { _ = p.Stop(context.Background()) }()
			return nil
		}
	}
}

func classifyOpenError(err error) error {
	msg := err.Error()
	kind := errorkind.IoError

	switch {
	case containsAny(msg, "permission denied"):
		kind = errorkind.AccessDenied
	case containsAny(msg, "busy") || containsAny(msg, "in use"):
		kind = errorkind.PortInUse
	case containsAny(msg, "no such file"):
		kind = errorkind.InvalidConfiguration
	}

	return errorkind.New(kind, "open failed", err)
}

func containsAny(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func (p *Port) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// readLoop delivers bytes to on_data until the port errors or closes, or
// ctx is cancelled. A cancellation-during-read completion is not treated as
// an error (no reopen is attempted from here; run's own ctx check handles
// unwinding).
func (p *Port) readLoop(ctx context.Context, sp *tarmserial.Port) {
	buf := make([]byte, defaultReadBufferSize)

	for {
		if ctx.Err() != nil {
			return
		}

		n, err := sp.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			p.core.NotifyData(cp, p.cfg.Device)
		}

		if err != nil {
			if ctx.Err() != nil {
				return
			}
			return
		}
	}
}

// teardown is the Port's stop function, handed to startStop.New. The
// device handle itself is closed by channel.Core via SetClose.
func (p *Port) teardown(_ context.Context) error {
	return nil
}
