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
	"github.com/nabbar/golib/reconnect"
	"github.com/nabbar/golib/size"
	"github.com/nabbar/golib/tcpclient"
	"github.com/nabbar/golib/validator"
)

// ClientBuilder collects everything a TCP client builder needs before Build
// is called: the required endpoint, optional tuning, callbacks and an
// optional reconnect policy override.
type ClientBuilder struct {
	cfg     tcpclient.Config
	cb      channel.Callbacks
	policy  reconnect.Policy
	log     logger.FuncLog
	metrics *metrics.Collector
	name    string
	auto    bool
}

// NewClient starts a TCP client builder for host:port, applying the
// package's defaults to every optional field.
func NewClient(host string, port uint16) *ClientBuilder {
	return &ClientBuilder{
		cfg: tcpclient.Config{
			Network:               netproto.NetworkTCP,
			Host:                  host,
			Port:                  port,
			ConnectTimeout:        defaultConnectTimeout,
			RetryInterval:         defaultRetryInterval,
			MaxRetries:            -1,
			BackpressureThreshold: defaultBackpressureThreshold,
		},
	}
}

func (b *ClientBuilder) WithNetwork(p netproto.NetworkProtocol) *ClientBuilder {
	b.cfg.Network = p
	return b
}

func (b *ClientBuilder) WithConnectTimeout(d time.Duration) *ClientBuilder {
	b.cfg.ConnectTimeout = d
	return b
}

func (b *ClientBuilder) WithRetryInterval(d time.Duration) *ClientBuilder {
	b.cfg.RetryInterval = d
	return b
}

func (b *ClientBuilder) WithMaxRetries(n int) *ClientBuilder {
	b.cfg.MaxRetries = n
	return b
}

func (b *ClientBuilder) WithBackpressureThreshold(s size.Size) *ClientBuilder {
	b.cfg.BackpressureThreshold = s
	return b
}

// WithReconnectPolicy overrides the Fixed policy derived from
// RetryInterval/MaxRetries with a caller-supplied Policy, e.g. an
// Exponential backoff.
func (b *ClientBuilder) WithReconnectPolicy(p reconnect.Policy) *ClientBuilder {
	b.policy = p
	return b
}

func (b *ClientBuilder) OnData(fn func(channel.MessageContext)) *ClientBuilder {
	b.cb.OnData = fn
	return b
}

func (b *ClientBuilder) OnState(fn func(linkstate.LinkState)) *ClientBuilder {
	b.cb.OnState = fn
	return b
}

func (b *ClientBuilder) OnConnect(fn func(channel.ConnectionContext)) *ClientBuilder {
	b.cb.OnConnect = fn
	return b
}

func (b *ClientBuilder) OnDisconnect(fn func(channel.ConnectionContext)) *ClientBuilder {
	b.cb.OnDisconnect = fn
	return b
}

func (b *ClientBuilder) OnError(fn func(channel.ErrorContext)) *ClientBuilder {
	b.cb.OnError = fn
	return b
}

func (b *ClientBuilder) OnBackpressure(fn func(channel.ClientID, uint64)) *ClientBuilder {
	b.cb.OnBackpressure = fn
	return b
}

// AutoManage ties the returned *tcpclient.Client's lifetime to Build: when
// on is true, Build also calls Start before returning.
func (b *ClientBuilder) AutoManage(on bool) *ClientBuilder {
	b.auto = on
	return b
}

// WithLogger attaches a logger collaborator to the built client.
func (b *ClientBuilder) WithLogger(fct logger.FuncLog) *ClientBuilder {
	b.log = fct
	return b
}

// WithMetrics registers state/data/backpressure/error counters and gauges
// on m, labeled by name, in front of whatever callbacks are already set.
func (b *ClientBuilder) WithMetrics(m *metrics.Collector, name string) *ClientBuilder {
	b.metrics = m
	b.name = name
	return b
}

// Build validates the accumulated configuration and constructs the client.
// Validation errors are returned synchronously; no I/O is issued by Build
// itself unless AutoManage(true) was set, in which case Start is also
// invoked before returning.
func (b *ClientBuilder) Build(ctx context.Context) (*tcpclient.Client, error) {
	if err := validator.Struct(b.cfg); err != nil {
		return nil, err
	}

	c := tcpclient.New(b.cfg, instrument(b.cb, b.metrics, b.name), b.policy)

	if b.log != nil {
		c.SetLogger(b.log)
	}

	if b.auto {
		if err := c.Start(ctx); err != nil {
			return nil, err
		}
	}

	return c, nil
}
