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
	netproto "github.com/nabbar/golib/network/protocol"
	"github.com/nabbar/golib/size"
	"github.com/nabbar/golib/tcpserver"
	"github.com/nabbar/golib/validator"
)

// ClientLimit names the cap policy a server builder applies to concurrent
// sessions: single-connection, capped at N, or unlimited.
type ClientLimit int

const (
	ClientLimitUnlimited ClientLimit = 0
	ClientLimitSingle    ClientLimit = 1
)

// ServerBuilder builds a multi-client TCP session manager.
type ServerBuilder struct {
	cfg     tcpserver.Config
	cb      channel.Callbacks
	log     logger.FuncLog
	metrics *metrics.Collector
	name    string
}

// NewServer starts a TCP server builder bound to port on every interface.
func NewServer(port uint16) *ServerBuilder {
	return &ServerBuilder{
		cfg: tcpserver.Config{
			Network:               netproto.NetworkTCP,
			Port:                  port,
			MaxConnections:        int(ClientLimitUnlimited),
			BackpressureThreshold: defaultBackpressureThreshold,
			IdleTimeout:           defaultIdleTimeout,
		},
	}
}

func (b *ServerBuilder) WithNetwork(p netproto.NetworkProtocol) *ServerBuilder {
	b.cfg.Network = p
	return b
}

func (b *ServerBuilder) WithBindAddress(addr string) *ServerBuilder {
	b.cfg.BindAddress = addr
	return b
}

// WithClientLimit caps concurrent sessions: ClientLimitUnlimited,
// ClientLimitSingle, or any N > 1 passed as a plain int.
func (b *ServerBuilder) WithClientLimit(n int) *ServerBuilder {
	b.cfg.MaxConnections = n
	return b
}

func (b *ServerBuilder) WithBackpressureThreshold(s size.Size) *ServerBuilder {
	b.cfg.BackpressureThreshold = s
	return b
}

func (b *ServerBuilder) WithIdleTimeout(d time.Duration) *ServerBuilder {
	b.cfg.IdleTimeout = d
	return b
}

func (b *ServerBuilder) WithPortRetry(maxRetries int, interval time.Duration) *ServerBuilder {
	b.cfg.EnablePortRetry = true
	b.cfg.MaxPortRetries = maxRetries
	b.cfg.PortRetryInterval = interval
	return b
}

func (b *ServerBuilder) OnData(fn func(channel.MessageContext)) *ServerBuilder {
	b.cb.OnData = fn
	return b
}

func (b *ServerBuilder) OnState(fn func(linkstate.LinkState)) *ServerBuilder {
	b.cb.OnState = fn
	return b
}

func (b *ServerBuilder) OnConnect(fn func(channel.ConnectionContext)) *ServerBuilder {
	b.cb.OnConnect = fn
	return b
}

func (b *ServerBuilder) OnDisconnect(fn func(channel.ConnectionContext)) *ServerBuilder {
	b.cb.OnDisconnect = fn
	return b
}

func (b *ServerBuilder) OnError(fn func(channel.ErrorContext)) *ServerBuilder {
	b.cb.OnError = fn
	return b
}

func (b *ServerBuilder) OnBackpressure(fn func(channel.ClientID, uint64)) *ServerBuilder {
	b.cb.OnBackpressure = fn
	return b
}

// WithLogger attaches a logger collaborator to the server and every
// session it subsequently accepts.
func (b *ServerBuilder) WithLogger(fct logger.FuncLog) *ServerBuilder {
	b.log = fct
	return b
}

// WithMetrics registers session-count/data/backpressure/error counters and
// gauges on m, labeled by name.
func (b *ServerBuilder) WithMetrics(m *metrics.Collector, name string) *ServerBuilder {
	b.metrics = m
	b.name = name
	return b
}

// Build validates the accumulated configuration and constructs the server.
// No socket is bound until the caller invokes Start on the result; unlike
// ClientBuilder, AutoManage is not offered here since accept-loop errors
// (e.g. a port already in use) are routed through on_error rather than
// Build's own return value.
func (b *ServerBuilder) Build(_ context.Context) (*tcpserver.Server, error) {
	if err := validator.Struct(b.cfg); err != nil {
		return nil, err
	}

	cb := instrument(b.cb, b.metrics, b.name)

	if b.metrics != nil {
		cb = instrumentSessionCount(cb, b.metrics, b.name)
	}

	s := tcpserver.New(b.cfg, cb)

	if b.log != nil {
		s.SetLogger(b.log)
	}

	return s, nil
}
