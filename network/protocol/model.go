/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

// Package protocol defines the transport protocol enum shared by every channel
// kind (TCP client, TCP server, serial). It is kept separate from the channel
// packages so config and validation layers can depend on it without pulling in
// any transport implementation.
package protocol

import "strings"

// NetworkProtocol identifies the underlying transport family of a Channel.
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

func (n NetworkProtocol) String() string {
	switch n {
	case NetworkUnix:
		return "unix"
	case NetworkTCP:
		return "tcp"
	case NetworkTCP4:
		return "tcp4"
	case NetworkTCP6:
		return "tcp6"
	case NetworkUDP:
		return "udp"
	case NetworkUDP4:
		return "udp4"
	case NetworkUDP6:
		return "udp6"
	case NetworkIP:
		return "ip"
	case NetworkIP4:
		return "ip4"
	case NetworkIP6:
		return "ip6"
	case NetworkUnixGram:
		return "unixgram"
	default:
		return ""
	}
}

// Int, Int64, Uint and Uint64 return the numeric code of the protocol, or 0
// for NetworkEmpty and any value that names no protocol.
func (n NetworkProtocol) Int() int     { return int(n.Uint64()) }
func (n NetworkProtocol) Int64() int64 { return int64(n.Uint64()) }
func (n NetworkProtocol) Uint() uint   { return uint(n.Uint64()) }
func (n NetworkProtocol) Uint64() uint64 {
	if n.String() == "" {
		return 0
	}
	return uint64(n)
}

// IsStream reports whether the protocol is a reliable, connection-oriented stream.
func (n NetworkProtocol) IsStream() bool {
	switch n {
	case NetworkTCP, NetworkTCP4, NetworkTCP6, NetworkUnix:
		return true
	default:
		return false
	}
}

// Parse converts a protocol name (any case, trimmed, optionally quoted with
// double quotes, single quotes or backquotes) into a NetworkProtocol.
// Unknown names return NetworkEmpty.
func Parse(s string) NetworkProtocol {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`")
	s = strings.ToLower(s)

	switch s {
	case "unix":
		return NetworkUnix
	case "tcp":
		return NetworkTCP
	case "tcp4":
		return NetworkTCP4
	case "tcp6":
		return NetworkTCP6
	case "udp":
		return NetworkUDP
	case "udp4":
		return NetworkUDP4
	case "udp6":
		return NetworkUDP6
	case "ip":
		return NetworkIP
	case "ip4":
		return NetworkIP4
	case "ip6":
		return NetworkIP6
	case "unixgram":
		return NetworkUnixGram
	default:
		return NetworkEmpty
	}
}
