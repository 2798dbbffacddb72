/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package protocol

import (
	"fmt"
	"math"
	"reflect"
)

var protocolType = reflect.TypeOf(NetworkEmpty)

const minProtocol = NetworkUnix
const maxProtocol = NetworkUnixGram

func fromInt64(v int64) (interface{}, error) {
	if v < int64(minProtocol) || v > int64(maxProtocol) {
		return nil, fmt.Errorf("protocol: invalid value %d for NetworkProtocol", v)
	}
	return NetworkProtocol(v), nil
}

func fromUint64(v uint64) (interface{}, error) {
	if v > math.MaxUint16 {
		return nil, fmt.Errorf("protocol: invalid value %d for NetworkProtocol", v)
	}
	return fromInt64(int64(v))
}

// ViperDecoderHook returns a mapstructure-compatible decode hook that converts
// raw config values (protocol names or numeric codes) into NetworkProtocol,
// for use with viper.DecoderConfigOption(viper.DecodeHook(...)).
func ViperDecoderHook() func(reflect.Type, reflect.Type, interface{}) (interface{}, error) {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if to != protocolType {
			return data, nil
		}

		switch from.Kind() {
		case reflect.String:
			if v, ok := data.(string); ok {
				return Parse(v), nil
			}
		case reflect.Int:
			if v, ok := data.(int); ok {
				return fromInt64(int64(v))
			}
		case reflect.Int8:
			if v, ok := data.(int8); ok {
				return fromInt64(int64(v))
			}
		case reflect.Int16:
			if v, ok := data.(int16); ok {
				return fromInt64(int64(v))
			}
		case reflect.Int32:
			if v, ok := data.(int32); ok {
				return fromInt64(int64(v))
			}
		case reflect.Int64:
			if v, ok := data.(int64); ok {
				return fromInt64(v)
			}
		case reflect.Uint:
			if v, ok := data.(uint); ok {
				return fromUint64(uint64(v))
			}
		case reflect.Uint8:
			if v, ok := data.(uint8); ok {
				return fromUint64(uint64(v))
			}
		case reflect.Uint16:
			if v, ok := data.(uint16); ok {
				return fromUint64(uint64(v))
			}
		case reflect.Uint32:
			if v, ok := data.(uint32); ok {
				return fromUint64(uint64(v))
			}
		case reflect.Uint64:
			if v, ok := data.(uint64); ok {
				return fromUint64(v)
			}
		}

		return data, nil
	}
}
