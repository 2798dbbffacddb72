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

// Package serialport implements the serial transport (section 4.5): open,
// configure, read loop, and reopen-on-error, mirroring the TCP client's
// connect-retry-read structure over github.com/tarm/serial instead of a
// socket.
package serialport

import (
	"context"
	"sync"
	"time"

	"github.com/nabbar/golib/channel"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/logger"
	"github.com/nabbar/golib/reconnect"
	"github.com/nabbar/golib/runner/startStop"
	"github.com/nabbar/golib/size"
	"github.com/nabbar/golib/writequeue"
	tarmserial "github.com/tarm/serial"
)

// FlowControl identifies the requested flow-control discipline. It is
// validated at build time but tarm/serial exposes no OS-level flow-control
// knob, so it is carried for documentation/compatibility only -- see
// DESIGN.md.
type FlowControl uint8

const (
	FlowNone FlowControl = iota
	FlowSoftware
	FlowHardware
)

// Parity identifies the serial parity scheme.
type Parity uint8

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

func (p Parity) tarm() tarmserial.Parity {
	switch p {
	case ParityOdd:
		return tarmserial.ParityOdd
	case ParityEven:
		return tarmserial.ParityEven
	default:
		return tarmserial.ParityNone
	}
}

const defaultReadBufferSize = 4096

// Config is the static, validated configuration of a serial channel.
type Config struct {
	Device                string        `mapstructure:"device" json:"device" yaml:"device" toml:"device" validate:"required,devicepath"`
	BaudRate              int           `mapstructure:"baudRate" json:"baudRate" yaml:"baudRate" toml:"baudRate" validate:"min=50,max=4000000"`
	DataBits              byte          `mapstructure:"dataBits" json:"dataBits" yaml:"dataBits" toml:"dataBits" validate:"min=5,max=8"`
	StopBits              uint8         `mapstructure:"stopBits" json:"stopBits" yaml:"stopBits" toml:"stopBits" validate:"min=1,max=2"`
	Parity                Parity        `mapstructure:"parity" json:"parity" yaml:"parity" toml:"parity"`
	FlowControl           FlowControl   `mapstructure:"flowControl" json:"flowControl" yaml:"flowControl" toml:"flowControl"`
	ReopenOnError         bool          `mapstructure:"reopenOnError" json:"reopenOnError" yaml:"reopenOnError" toml:"reopenOnError"`
	RetryInterval         time.Duration `mapstructure:"retryInterval" json:"retryInterval" yaml:"retryInterval" toml:"retryInterval" validate:"min=100000000,max=300000000000"`
	BackpressureThreshold size.Size     `mapstructure:"backpressureThreshold" json:"backpressureThreshold" yaml:"backpressureThreshold" toml:"backpressureThreshold" validate:"min=1024,max=104857600"`
}

func (c Config) toTarmConfig() *tarmserial.Config {
	stop := tarmserial.Stop1
	if c.StopBits == 2 {
		stop = tarmserial.Stop2
	}

	return &tarmserial.Config{
		Name:        c.Device,
		Baud:        c.BaudRate,
		Size:        c.DataBits,
		Parity:      c.Parity.tarm(),
		StopBits:    stop,
		ReadTimeout: 200 * time.Millisecond,
	}
}

// Port is a reopening serial channel.
type Port struct {
	cfg    Config
	policy reconnect.Policy

	core *channel.Core
	wq   *writequeue.Queue
	life startStop.StartStop

	pmu sync.Mutex
	sp  *tarmserial.Port
}

// New builds a Port bound to cfg, cb and policy. A nil policy falls back to
// reconnect.Fixed using cfg's retry interval with unlimited retries.
func New(cfg Config, cb channel.Callbacks, policy reconnect.Policy) *Port {
	if policy == nil {
		policy = reconnect.Fixed(cfg.RetryInterval, -1)
	}

	p := &Port{cfg: cfg, policy: policy, core: channel.NewCore(0, cb)}

	p.wq = writequeue.New(cfg.BackpressureThreshold, func(n uint64) { p.core.NotifyBackpressure(n) })
	p.core.SetDrain(func() uint64 { return p.wq.Drain() })
	p.core.SetClose(func() error {
		p.pmu.Lock()
		defer p.pmu.Unlock()
		if p.sp != nil {
			return p.sp.Close()
		}
		return nil
	})

	p.life = startStop.New(p.run, p.teardown)

	return p
}

// Start opens the device and begins the read loop. Safe to call once per
// instance.
func (p *Port) Start(ctx context.Context) error { return p.life.Start(ctx) }

// Stop executes the channel stop contract.
func (p *Port) Stop(ctx context.Context) error {
	_ = p.life.Stop(ctx)
	return p.core.Stop(ctx)
}

// State returns the current observable LinkState.
func (p *Port) State() linkstate.LinkState { return p.core.State() }

// IsConnected reports whether the device is currently open.
func (p *Port) IsConnected() bool { return p.State() == linkstate.Connected }

// QueuedBytes returns the number of bytes presently queued for write.
func (p *Port) QueuedBytes() uint64 { return p.wq.QueuedBytes() }

// SetLogger attaches a logger collaborator; diagnostic only.
func (p *Port) SetLogger(fct logger.FuncLog) { p.core.SetLogger(fct) }
