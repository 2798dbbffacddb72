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
)

// Mul multiplies the size in place by f, rounding to the nearest byte and
// capping at the maximum representable size on overflow. A negative f is
// treated as zero.
func (s *Size) Mul(f float64) {
	_ = s.MulErr(f)
}

// MulErr behaves like Mul but reports an overflow as an error.
func (s *Size) MulErr(f float64) error {
	if f < 0 {
		f = 0
	}

	product := float64(*s) * f

	if math.IsInf(product, 0) || product > float64(math.MaxUint64) {
		*s = Size(math.MaxUint64)
		return fmt.Errorf("size: multiplication overflow")
	}

	*s = Size(math.Round(product))
	return nil
}

// Div divides the size in place by f, rounding to the nearest byte. A
// non-positive divisor leaves the size unchanged.
func (s *Size) Div(f float64) {
	_ = s.DivErr(f)
}

// DivErr behaves like Div but reports a non-positive divisor as an error.
func (s *Size) DivErr(f float64) error {
	if f <= 0 {
		return fmt.Errorf("size: invalid diviser: %v", f)
	}

	*s = Size(math.Round(float64(*s) / f))
	return nil
}

// Add increases the size in place by v, capping at the maximum representable size.
func (s *Size) Add(v uint64) {
	_ = s.AddErr(v)
}

// AddErr behaves like Add but reports an overflow as an error.
func (s *Size) AddErr(v uint64) error {
	if v > math.MaxUint64-uint64(*s) {
		*s = Size(math.MaxUint64)
		return fmt.Errorf("size: addition overflow")
	}

	*s += Size(v)
	return nil
}

// Sub decreases the size in place by v, capping at zero.
func (s *Size) Sub(v uint64) {
	_ = s.SubErr(v)
}

// SubErr behaves like Sub but reports an underflow as an error.
func (s *Size) SubErr(v uint64) error {
	if v > uint64(*s) {
		*s = SizeNul
		return fmt.Errorf("size: invalid substractor: %d", v)
	}

	*s -= Size(v)
	return nil
}
