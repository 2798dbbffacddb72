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

import "fmt"

// letterAndDivisor returns the binary-prefix letter (empty for plain bytes)
// and the divisor to express s in that unit.
func (s Size) letterAndDivisor() (string, Size) {
	switch {
	case s >= SizeExa:
		return "E", SizeExa
	case s >= SizePeta:
		return "P", SizePeta
	case s >= SizeTera:
		return "T", SizeTera
	case s >= SizeGiga:
		return "G", SizeGiga
	case s >= SizeMega:
		return "M", SizeMega
	case s >= SizeKilo:
		return "K", SizeKilo
	default:
		return "", SizeUnit
	}
}

// Format renders s in its natural binary unit using the given fmt pattern
// (e.g. FormatRound2).
func (s Size) Format(pattern string) string {
	_, div := s.letterAndDivisor()
	return fmt.Sprintf(pattern, float64(s)/float64(div))
}

// Unit returns the binary-prefix letter followed by r (or the package
// default unit rune when r is zero).
func (s Size) Unit(r rune) string {
	letter, _ := s.letterAndDivisor()

	if r == 0 {
		r = currentDefaultUnit()
	}

	return letter + string(r)
}

// Code is an alias of Unit, kept for values read directly from the Size constants.
func (s Size) Code(r rune) string {
	return s.Unit(r)
}

// String formats s with two decimal digits followed by its unit, e.g. "5.50MB".
func (s Size) String() string {
	return s.Format(FormatRound2) + s.Unit(0)
}

func (s Size) KiloBytes() uint64 {
	return uint64(s) / uint64(SizeKilo)
}

func (s Size) MegaBytes() uint64 {
	return uint64(s) / uint64(SizeMega)
}

func (s Size) GigaBytes() uint64 {
	return uint64(s) / uint64(SizeGiga)
}

func (s Size) TeraBytes() uint64 {
	return uint64(s) / uint64(SizeTera)
}

func (s Size) PetaBytes() uint64 {
	return uint64(s) / uint64(SizePeta)
}

func (s Size) ExaBytes() uint64 {
	return uint64(s) / uint64(SizeExa)
}
