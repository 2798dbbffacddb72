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

// Package tcpserver implements the multi-client TCP session manager
// (section 4.4): bind with retry, an accept loop enforcing a connection
// cap, per-session read/write pipelines, broadcast/targeted send, and idle
// session reaping.
package tcpserver

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/nabbar/golib/channel"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/logger"
	netproto "github.com/nabbar/golib/network/protocol"
	"github.com/nabbar/golib/runner/startStop"
	"github.com/nabbar/golib/size"
)

// defaultReadBufferSize is the per-session read buffer size.
const defaultReadBufferSize = 4096

// Config is the static, validated configuration of a TCP server channel.
type Config struct {
	Network               netproto.NetworkProtocol `mapstructure:"network" json:"network" yaml:"network" toml:"network"`
	BindAddress           string                   `mapstructure:"bindAddress" json:"bindAddress" yaml:"bindAddress" toml:"bindAddress" validate:"omitempty,max=253,hostname_rfc1123|ip"`
	Port                  uint16                   `mapstructure:"port" json:"port" yaml:"port" toml:"port" validate:"required,min=1,max=65535"`
	MaxConnections        int                      `mapstructure:"maxConnections" json:"maxConnections" yaml:"maxConnections" toml:"maxConnections" validate:"min=0"`
	BackpressureThreshold size.Size                `mapstructure:"backpressureThreshold" json:"backpressureThreshold" yaml:"backpressureThreshold" toml:"backpressureThreshold" validate:"min=1024,max=104857600"`
	EnablePortRetry       bool                     `mapstructure:"enablePortRetry" json:"enablePortRetry" yaml:"enablePortRetry" toml:"enablePortRetry"`
	MaxPortRetries        int                      `mapstructure:"maxPortRetries" json:"maxPortRetries" yaml:"maxPortRetries" toml:"maxPortRetries" validate:"min=0,max=1000"`
	PortRetryInterval     time.Duration            `mapstructure:"portRetryInterval" json:"portRetryInterval" yaml:"portRetryInterval" toml:"portRetryInterval" validate:"min=0"`
	IdleTimeout           time.Duration            `mapstructure:"idleTimeout" json:"idleTimeout" yaml:"idleTimeout" toml:"idleTimeout" validate:"min=0"`
}

func (c Config) address() string {
	return net.JoinHostPort(c.BindAddress, strconv.FormatUint(uint64(c.Port), 10))
}

func (c Config) network() string {
	if c.Network == netproto.NetworkEmpty {
		return netproto.NetworkTCP.String()
	}
	return c.Network.String()
}

// reapInterval is the idle-session sweep period: idleTimeout/4, clamped to
// [100ms, 1s]. A zero IdleTimeout disables reaping entirely.
func (c Config) reapInterval() time.Duration {
	if c.IdleTimeout <= 0 {
		return 0
	}

	iv := c.IdleTimeout / 4
	if iv < 100*time.Millisecond {
		iv = 100 * time.Millisecond
	}
	if iv > time.Second {
		iv = time.Second
	}
	return iv
}

// Server is a multi-client TCP session manager.
type Server struct {
	cfg Config
	cb  channel.Callbacks

	core     *channel.Core
	registry *Registry
	life     startStop.StartStop

	lmu      sync.Mutex
	listener net.Listener

	nextID uint64
	logger logger.FuncLog
}

// New builds a Server bound to cfg and cb. No socket is opened until Start.
func New(cfg Config, cb channel.Callbacks) *Server {
	s := &Server{
		cfg:      cfg,
		cb:       cb,
		core:     channel.NewCore(0, cb),
		registry: NewRegistry(cfg.MaxConnections),
	}

	s.core.SetClose(func() error {
		s.lmu.Lock()
		defer s.lmu.Unlock()
		if s.listener != nil {
			return s.listener.Close()
		}
		return nil
	})

	s.life = startStop.New(s.run, s.teardown)

	return s
}

// Start binds the listen address (retrying per EnablePortRetry) and begins
// accepting connections. Safe to call once per instance.
func (s *Server) Start(ctx context.Context) error {
	return s.life.Start(ctx)
}

// Stop stops accepting new connections, stops every live session
// (delivering a disconnect for each so the registry ends empty), and
// executes the channel stop contract.
func (s *Server) Stop(ctx context.Context) error {
	s.registry.Range(func(_ channel.ClientID, sess *Session) bool {
		_ = sess.Stop(ctx)
		return true
	})

	err := s.core.Stop(ctx)
	_ = s.life.Stop(ctx)
	return err
}

// State returns the current observable LinkState.
func (s *Server) State() linkstate.LinkState { return s.core.State() }

// IsListening reports whether the server currently holds a bound socket.
func (s *Server) IsListening() bool { return s.State() == linkstate.Listening }

// SessionCount returns the number of sessions currently registered.
func (s *Server) SessionCount() uint64 { return s.registry.Len() }

// Addr returns the bound listen address, or nil if the server has not
// completed a successful bind (e.g. before Start, or while disconnected).
// Useful when Config.Port is 0 and the OS assigns an ephemeral port.
func (s *Server) Addr() net.Addr {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// SetLogger attaches a logger collaborator to the server's own Core;
// diagnostic only. Sessions accepted after this call inherit it too.
func (s *Server) SetLogger(fct logger.FuncLog) {
	s.core.SetLogger(fct)
	s.logger = fct
}

func (s *Server) allocateID() channel.ClientID {
	s.nextID++
	return channel.ClientID(s.nextID)
}
