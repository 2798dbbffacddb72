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

package builder

import (
	"context"
	"time"

	"github.com/nabbar/golib/channel"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/logger"
	"github.com/nabbar/golib/metrics"
	"github.com/nabbar/golib/reconnect"
	"github.com/nabbar/golib/serialport"
	"github.com/nabbar/golib/size"
	"github.com/nabbar/golib/validator"
)

// SerialBuilder builds a reopening serial port channel.
type SerialBuilder struct {
	cfg     serialport.Config
	cb      channel.Callbacks
	policy  reconnect.Policy
	log     logger.FuncLog
	metrics *metrics.Collector
	name    string
	auto    bool
}

// NewSerial starts a serial port builder for device at baudRate, 8N1 and
// no flow control by default.
func NewSerial(device string, baudRate int) *SerialBuilder {
	return &SerialBuilder{
		cfg: serialport.Config{
			Device:                device,
			BaudRate:              baudRate,
			DataBits:              8,
			StopBits:              1,
			Parity:                serialport.ParityNone,
			FlowControl:           serialport.FlowNone,
			ReopenOnError:         true,
			RetryInterval:         defaultRetryInterval,
			BackpressureThreshold: defaultBackpressureThreshold,
		},
	}
}

func (b *SerialBuilder) WithDataBits(n byte) *SerialBuilder {
	b.cfg.DataBits = n
	return b
}

func (b *SerialBuilder) WithStopBits(n uint8) *SerialBuilder {
	b.cfg.StopBits = n
	return b
}

func (b *SerialBuilder) WithParity(p serialport.Parity) *SerialBuilder {
	b.cfg.Parity = p
	return b
}

func (b *SerialBuilder) WithFlowControl(f serialport.FlowControl) *SerialBuilder {
	b.cfg.FlowControl = f
	return b
}

func (b *SerialBuilder) WithReopenOnError(on bool) *SerialBuilder {
	b.cfg.ReopenOnError = on
	return b
}

func (b *SerialBuilder) WithRetryInterval(d time.Duration) *SerialBuilder {
	b.cfg.RetryInterval = d
	return b
}

func (b *SerialBuilder) WithBackpressureThreshold(s size.Size) *SerialBuilder {
	b.cfg.BackpressureThreshold = s
	return b
}

func (b *SerialBuilder) WithReconnectPolicy(p reconnect.Policy) *SerialBuilder {
	b.policy = p
	return b
}

func (b *SerialBuilder) OnData(fn func(channel.MessageContext)) *SerialBuilder {
	b.cb.OnData = fn
	return b
}

func (b *SerialBuilder) OnState(fn func(linkstate.LinkState)) *SerialBuilder {
	b.cb.OnState = fn
	return b
}

func (b *SerialBuilder) OnConnect(fn func(channel.ConnectionContext)) *SerialBuilder {
	b.cb.OnConnect = fn
	return b
}

func (b *SerialBuilder) OnDisconnect(fn func(channel.ConnectionContext)) *SerialBuilder {
	b.cb.OnDisconnect = fn
	return b
}

func (b *SerialBuilder) OnError(fn func(channel.ErrorContext)) *SerialBuilder {
	b.cb.OnError = fn
	return b
}

func (b *SerialBuilder) OnBackpressure(fn func(channel.ClientID, uint64)) *SerialBuilder {
	b.cb.OnBackpressure = fn
	return b
}

func (b *SerialBuilder) AutoManage(on bool) *SerialBuilder {
	b.auto = on
	return b
}

// WithLogger attaches a logger collaborator to the built port.
func (b *SerialBuilder) WithLogger(fct logger.FuncLog) *SerialBuilder {
	b.log = fct
	return b
}

// WithMetrics registers state/data/backpressure/error counters and gauges
// on m, labeled by name.
func (b *SerialBuilder) WithMetrics(m *metrics.Collector, name string) *SerialBuilder {
	b.metrics = m
	b.name = name
	return b
}

// Build validates the accumulated configuration and constructs the port.
func (b *SerialBuilder) Build(ctx context.Context) (*serialport.Port, error) {
	if err := validator.Struct(b.cfg); err != nil {
		return nil, err
	}

	p := serialport.New(b.cfg, instrument(b.cb, b.metrics, b.name), b.policy)

	if b.log != nil {
		p.SetLogger(b.log)
	}

	if b.auto {
		if err := p.Start(ctx); err != nil {
			return nil, err
		}
	}

	return p, nil
}
