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

// Package size defines a byte-size type used across config and backpressure
// thresholds (write queue high/low watermarks, frame max length, serial read
// buffers). Sizes parse from human strings ("5MB") and marshal back the same
// way in every supported encoding.
package size

import "sync/atomic"

// Size is a count of bytes, stored as a binary (1024-based) quantity.
type Size uint64

const (
	SizeNul  Size = 0
	SizeUnit Size = 1
	SizeKilo Size = SizeUnit << 10
	SizeMega Size = SizeKilo << 10
	SizeGiga Size = SizeMega << 10
	SizeTera Size = SizeGiga << 10
	SizePeta Size = SizeTera << 10
	SizeExa  Size = SizePeta << 10
)

const (
	FormatRound0 = "%.0f"
	FormatRound1 = "%.1f"
	FormatRound2 = "%.2f"
	FormatRound3 = "%.3f"
)

var defaultUnit atomic.Uint32

func init() {
	defaultUnit.Store(uint32('B'))
}

// SetDefaultUnit changes the rune appended after the binary-prefix letter
// (K, M, G, ...) by Unit/Code/String when no explicit rune is given. A zero
// rune resets it to 'B'.
func SetDefaultUnit(r rune) {
	if r == 0 {
		r = 'B'
	}
	defaultUnit.Store(uint32(r))
}

func currentDefaultUnit() rune {
	return rune(defaultUnit.Load())
}
