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

// Package tcpclient implements the reconnecting TCP client transport
// (section 4.3): dial, read loop, and a pluggable reconnect policy that
// governs every retry after a failed dial or a dropped connection.
package tcpclient

import (
	"context"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/golib/channel"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/logger"
	netproto "github.com/nabbar/golib/network/protocol"
	"github.com/nabbar/golib/reconnect"
	"github.com/nabbar/golib/runner/startStop"
	"github.com/nabbar/golib/size"
	"github.com/nabbar/golib/writequeue"
)

// defaultReadBufferSize is the size of the buffer armed on every successful
// connect, per section 4.3.
const defaultReadBufferSize = 4096

// debounceWindow collapses repeated Connecting notifications arriving
// within this window of each other into a single observable transition.
const debounceWindow = 10 * time.Millisecond

// Config is the static, validated configuration of a TCP client channel.
type Config struct {
	Network               netproto.NetworkProtocol `mapstructure:"network" json:"network" yaml:"network" toml:"network"`
	Host                  string                   `mapstructure:"host" json:"host" yaml:"host" toml:"host" validate:"required,max=253,hostname_rfc1123|ip"`
	Port                  uint16                   `mapstructure:"port" json:"port" yaml:"port" toml:"port" validate:"required,min=1,max=65535"`
	ConnectTimeout        time.Duration            `mapstructure:"connectTimeout" json:"connectTimeout" yaml:"connectTimeout" toml:"connectTimeout" validate:"min=100000000,max=300000000000"`
	RetryInterval         time.Duration            `mapstructure:"retryInterval" json:"retryInterval" yaml:"retryInterval" toml:"retryInterval" validate:"min=100000000,max=300000000000"`
	MaxRetries            int                      `mapstructure:"maxRetries" json:"maxRetries" yaml:"maxRetries" toml:"maxRetries" validate:"min=-1,max=1000"`
	BackpressureThreshold size.Size                `mapstructure:"backpressureThreshold" json:"backpressureThreshold" yaml:"backpressureThreshold" toml:"backpressureThreshold" validate:"min=1024,max=104857600"`
}

func (c Config) address() string {
	return net.JoinHostPort(c.Host, strconv.FormatUint(uint64(c.Port), 10))
}

func (c Config) network() string {
	if c.Network == netproto.NetworkEmpty {
		return netproto.NetworkTCP.String()
	}
	return c.Network.String()
}

// Client is a reconnecting TCP client channel.
type Client struct {
	cfg    Config
	policy reconnect.Policy

	core *channel.Core
	wq   *writequeue.Queue
	life startStop.StartStop

	cmu  sync.Mutex
	conn net.Conn

	lastConnecting atomic.Int64
}

// New builds a Client bound to cfg, cb and policy. policy governs every
// retry after a failed dial or a dropped connection; a nil policy falls
// back to reconnect.Fixed using cfg's retry interval and max retries.
func New(cfg Config, cb channel.Callbacks, policy reconnect.Policy) *Client {
	if policy == nil {
		policy = reconnect.Fixed(cfg.RetryInterval, cfg.MaxRetries)
	}

	c := &Client{
		cfg:    cfg,
		policy: policy,
		core:   channel.NewCore(0, cb),
	}

	c.wq = writequeue.New(cfg.BackpressureThreshold, func(n uint64) { c.core.NotifyBackpressure(n) })
	c.core.SetDrain(func() uint64 { return c.wq.Drain() })
	c.core.SetClose(func() error {
		c.cmu.Lock()
		defer c.cmu.Unlock()
		if c.conn != nil {
			return c.conn.Close()
		}
		return nil
	})

	c.life = startStop.New(c.run, c.teardown)

	return c
}

// Start begins the connect-retry-read loop. Safe to call once per instance.
func (c *Client) Start(ctx context.Context) error {
	return c.life.Start(ctx)
}

// Stop executes the channel stop contract. Idempotent, non-blocking,
// callback-reentrant safe.
func (c *Client) Stop(ctx context.Context) error {
	err := c.core.Stop(ctx)
	_ = c.life.Stop(ctx)
	return err
}

// State returns the current observable LinkState.
func (c *Client) State() linkstate.LinkState { return c.core.State() }

// IsConnected reports whether the client currently holds a live socket.
func (c *Client) IsConnected() bool { return c.State() == linkstate.Connected }

// QueuedBytes returns the number of bytes presently queued for write.
func (c *Client) QueuedBytes() uint64 { return c.wq.QueuedBytes() }

// SetLogger attaches a logger collaborator; diagnostic only, never gates
// any state transition or callback dispatch.
func (c *Client) SetLogger(fct logger.FuncLog) { c.core.SetLogger(fct) }

// transitionConnecting applies the debounce rule from section 4.3: repeated
// Connecting notifications within debounceWindow of one another collapse
// into a single observable transition.
func (c *Client) transitionConnecting() {
	now := time.Now().UnixNano()
	last := c.lastConnecting.Load()

	if c.State() == linkstate.Connecting && last != 0 && time.Duration(now-last) < debounceWindow {
		return
	}

	c.lastConnecting.Store(now)
	c.core.TransitionTo(linkstate.Connecting)
}
