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

// Package metrics exposes channel-level counters and gauges as Prometheus
// collectors. Wiring a Collector into a Builder is optional: every method
// is a no-op on a nil *Collector, so instrumentation never becomes a hard
// dependency of a channel.
package metrics

import (
	"github.com/nabbar/golib/linkstate"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector groups the metrics emitted by a running set of channels,
// labeled by the channel name given to New.
type Collector struct {
	state          *prometheus.GaugeVec
	bytesRead      *prometheus.CounterVec
	bytesWritten   *prometheus.CounterVec
	queuedBytes    *prometheus.GaugeVec
	sessions       *prometheus.GaugeVec
	reconnects     *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
}

// New builds a Collector and registers its collectors on reg. Passing a
// fresh prometheus.NewRegistry() isolates metrics per test; passing
// prometheus.DefaultRegisterer matches typical process-wide exposition.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "unilink", Name: "link_state", Help: "Current LinkState of a channel (numeric).",
		}, []string{"channel"}),
		bytesRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unilink", Name: "bytes_read_total", Help: "Total bytes delivered via on_data.",
		}, []string{"channel"}),
		bytesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unilink", Name: "bytes_written_total", Help: "Total bytes successfully written.",
		}, []string{"channel"}),
		queuedBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "unilink", Name: "write_queue_bytes", Help: "Current bytes pending in the write queue.",
		}, []string{"channel"}),
		sessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "unilink", Name: "server_sessions", Help: "Current registered session count on a TCP server channel.",
		}, []string{"channel"}),
		reconnects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unilink", Name: "reconnects_total", Help: "Total Connecting-to-Connected transitions after the first.",
		}, []string{"channel"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unilink", Name: "errors_total", Help: "Total terminal errors, labeled by kind.",
		}, []string{"channel", "kind"}),
	}

	reg.MustRegister(c.state, c.bytesRead, c.bytesWritten, c.queuedBytes, c.sessions, c.reconnects, c.errorsTotal)

	return c
}

func (c *Collector) SetState(name string, s linkstate.LinkState) {
	if c == nil {
		return
	}
	c.state.WithLabelValues(name).Set(float64(s))
}

func (c *Collector) AddBytesRead(name string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.bytesRead.WithLabelValues(name).Add(float64(n))
}

func (c *Collector) AddBytesWritten(name string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.bytesWritten.WithLabelValues(name).Add(float64(n))
}

func (c *Collector) SetQueuedBytes(name string, n uint64) {
	if c == nil {
		return
	}
	c.queuedBytes.WithLabelValues(name).Set(float64(n))
}

func (c *Collector) SetSessions(name string, n uint64) {
	if c == nil {
		return
	}
	c.sessions.WithLabelValues(name).Set(float64(n))
}

func (c *Collector) IncReconnect(name string) {
	if c == nil {
		return
	}
	c.reconnects.WithLabelValues(name).Inc()
}

func (c *Collector) IncError(name, kind string) {
	if c == nil {
		return
	}
	c.errorsTotal.WithLabelValues(name, kind).Inc()
}
