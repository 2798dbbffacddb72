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

import "math"

func (s Size) Uint64() uint64 {
	return uint64(s)
}

func (s Size) Uint32() uint32 {
	if uint64(s) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(s)
}

func (s Size) Uint() uint {
	return uint(s)
}

func (s Size) Int64() int64 {
	if uint64(s) > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(s)
}

func (s Size) Int32() int32 {
	if uint64(s) > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(s)
}

func (s Size) Int() int {
	if uint64(s) > uint64(math.MaxInt) {
		return math.MaxInt
	}
	return int(s)
}

func (s Size) Float64() float64 {
	return float64(s)
}

func (s Size) Float32() float32 {
	if uint64(s) > math.MaxUint32 {
		return math.MaxFloat32
	}
	return float32(s)
}

// ParseInt64 converts a signed integer into a Size, taking the absolute value.
func ParseInt64(v int64) Size {
	if v == math.MinInt64 {
		return Size(uint64(math.MaxInt64) + 1)
	}
	if v < 0 {
		v = -v
	}
	return Size(v)
}

// SizeFromInt64 is an alias of ParseInt64.
func SizeFromInt64(v int64) Size {
	return ParseInt64(v)
}

// ParseUint64 converts an unsigned integer into a Size.
func ParseUint64(v uint64) Size {
	return Size(v)
}

// ParseFloat64 converts a float into a Size, taking the absolute, floored value.
func ParseFloat64(v float64) Size {
	if math.IsNaN(v) {
		return SizeNul
	}

	v = math.Abs(math.Floor(v))

	if v > float64(math.MaxUint64) {
		return Size(math.MaxUint64)
	}

	return Size(v)
}

// SizeFromFloat64 is an alias of ParseFloat64.
func SizeFromFloat64(v float64) Size {
	return ParseFloat64(v)
}
