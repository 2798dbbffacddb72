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

// Package config loads the static configuration of a channel (tcpclient,
// tcpserver or serialport) from file, environment or defaults via viper,
// then validates it through the validator package before it ever reaches a
// Builder.
package config

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/nabbar/golib/network/protocol"
	"github.com/nabbar/golib/serialport"
	"github.com/nabbar/golib/size"
	"github.com/nabbar/golib/tcpclient"
	"github.com/nabbar/golib/tcpserver"
	"github.com/nabbar/golib/validator"
	spfvpr "github.com/spf13/viper"
)

// Root is the top-level document a caller may feed to Load: at most one of
// Client, Server or Serial is expected to be populated, selecting which
// transport a Builder wires up.
type Root struct {
	Client *tcpclient.Config  `mapstructure:"client" json:"client,omitempty" yaml:"client,omitempty" toml:"client,omitempty"`
	Server *tcpserver.Config  `mapstructure:"server" json:"server,omitempty" yaml:"server,omitempty" toml:"server,omitempty"`
	Serial *serialport.Config `mapstructure:"serial" json:"serial,omitempty" yaml:"serial,omitempty" toml:"serial,omitempty"`
}

// New returns a *spfvpr.Viper with environment variable lookups enabled
// under prefix. The decode hooks for NetworkProtocol and size.Size fields
// are applied by Load, not by New.
func New(prefix string) *spfvpr.Viper {
	v := spfvpr.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		protocol.ViperDecoderHook(),
		size.ViperDecoderHook(),
	)
}

// Load reads the configuration tree rooted at path (empty for the whole
// document) out of v, decodes it into a Root using the package's viper
// decode hooks, and validates whichever transport section is populated.
func Load(v *spfvpr.Viper, path string) (*Root, error) {
	var root Root

	decode := func(key string, out interface{}) error {
		if key == "" {
			return v.Unmarshal(out, spfvpr.DecodeHook(decodeHook()))
		}
		return v.UnmarshalKey(key, out, spfvpr.DecodeHook(decodeHook()))
	}

	if err := decode(path, &root); err != nil {
		return nil, err
	}

	if root.Client != nil {
		if err := validator.Struct(*root.Client); err != nil {
			return nil, err
		}
	}

	if root.Server != nil {
		if err := validator.Struct(*root.Server); err != nil {
			return nil, err
		}
	}

	if root.Serial != nil {
		if err := validator.Struct(*root.Serial); err != nil {
			return nil, err
		}
	}

	return &root, nil
}
