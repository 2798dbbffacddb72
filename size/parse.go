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
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var reSize = regexp.MustCompile(`(?i)^([0-9]+(?:\.[0-9]+)?)\s*(b|k|kb|m|mb|g|gb|t|tb|p|pb|e|eb)$`)

var sizeUnits = map[string]Size{
	"b":  SizeUnit,
	"k":  SizeKilo,
	"kb": SizeKilo,
	"m":  SizeMega,
	"mb": SizeMega,
	"g":  SizeGiga,
	"gb": SizeGiga,
	"t":  SizeTera,
	"tb": SizeTera,
	"p":  SizePeta,
	"pb": SizePeta,
	"e":  SizeExa,
	"eb": SizeExa,
}

// Parse converts a human-readable size ("5MB", "1.5 GB", "0B") into a Size.
func Parse(s string) (Size, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)

	if s == "" {
		return SizeNul, fmt.Errorf("size: invalid size: empty input")
	}

	if strings.HasPrefix(s, "-") {
		return SizeNul, fmt.Errorf("size: negative sizes are not allowed: %q", s)
	}

	s = strings.TrimPrefix(s, "+")

	m := reSize.FindStringSubmatch(s)
	if m == nil {
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return SizeNul, fmt.Errorf("size: missing unit in %q", s)
		}
		return SizeNul, fmt.Errorf("size: unknown unit in %q", s)
	}

	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return SizeNul, fmt.Errorf("size: invalid size: %q", s)
	}

	unit, ok := sizeUnits[strings.ToLower(m[2])]
	if !ok {
		return SizeNul, fmt.Errorf("size: unknown unit in %q", s)
	}

	product := num * float64(unit)

	if product > float64(math.MaxUint64) {
		return SizeNul, fmt.Errorf("size: overflow parsing %q", s)
	}

	return Size(math.Round(product)), nil
}

// ParseByte is Parse applied to a byte slice.
func ParseByte(b []byte) (Size, error) {
	return Parse(string(b))
}

// ParseSize is a deprecated alias of Parse.
func ParseSize(s string) (Size, error) {
	return Parse(s)
}

// ParseByteAsSize is a deprecated alias of ParseByte.
func ParseByteAsSize(b []byte) (Size, error) {
	return ParseByte(b)
}

// GetSize is a deprecated alias of Parse that reports success as a bool
// instead of an error.
func GetSize(s string) (Size, bool) {
	v, err := Parse(s)
	if err != nil {
		return SizeNul, false
	}
	return v, true
}
