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

package size

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Size) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	v, err := Parse(str)
	if err != nil {
		return err
	}

	*s = v
	return nil
}

func (s Size) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	v, err := Parse(node.Value)
	if err != nil {
		return err
	}

	*s = v
	return nil
}

func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Size) UnmarshalText(data []byte) error {
	v, err := ParseByte(data)
	if err != nil {
		return err
	}

	*s = v
	return nil
}

// MarshalTOML implements the github.com/pelletier/go-toml/v2 Marshaler interface.
func (s Size) MarshalTOML() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", s.String())), nil
}

// UnmarshalTOML implements the github.com/pelletier/go-toml/v2 Unmarshaler interface.
func (s *Size) UnmarshalTOML(v interface{}) error {
	var (
		str string
	)

	switch t := v.(type) {
	case string:
		str = t
	case []byte:
		str = string(t)
	default:
		return fmt.Errorf("size: value not in valid format for toml: %T", v)
	}

	val, err := Parse(str)
	if err != nil {
		return err
	}

	*s = val
	return nil
}

// MarshalCBOR implements the github.com/fxamacker/cbor/v2 Marshaler interface.
func (s Size) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.String())
}

// UnmarshalCBOR implements the github.com/fxamacker/cbor/v2 Unmarshaler interface.
func (s *Size) UnmarshalCBOR(data []byte) error {
	var str string
	if err := cbor.Unmarshal(data, &str); err != nil {
		return err
	}

	v, err := Parse(str)
	if err != nil {
		return err
	}

	*s = v
	return nil
}

func (s Size) MarshalBinary() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Size) UnmarshalBinary(data []byte) error {
	return s.UnmarshalText(data)
}
