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

package protocol

import (
	"encoding/json"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

func (n NetworkProtocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

func (n *NetworkProtocol) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = Parse(s)
	return nil
}

func (n NetworkProtocol) MarshalYAML() (interface{}, error) {
	return n.String(), nil
}

func (n *NetworkProtocol) UnmarshalYAML(node *yaml.Node) error {
	*n = Parse(node.Value)
	return nil
}

var protocolType = reflect.TypeOf(NetworkProtocol(0))

// ViperDecoderHook returns a mapstructure-compatible decode hook that converts
// raw config values (string names or numeric codes) into NetworkProtocol,
// for use with viper.DecoderConfigOption(viper.DecodeHook(...)).
func ViperDecoderHook() func(reflect.Type, reflect.Type, interface{}) (interface{}, error) {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if to != protocolType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return Parse(v), nil
		case int, int8, int16, int32, int64:
			return NetworkProtocol(reflect.ValueOf(v).Int()), nil
		case uint, uint8, uint16, uint32, uint64:
			return NetworkProtocol(reflect.ValueOf(v).Uint()), nil
		default:
			return data, nil
		}
	}
}

func (n NetworkProtocol) GoString() string {
	return fmt.Sprintf("protocol.%s", n.String())
}
