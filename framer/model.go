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

// Package framer declares the collaborator interface for turning a raw byte
// stream into discrete messages. No concrete framer (line, length-prefixed,
// delimited) is implemented here, and no builder or channel in this module
// accepts or calls a Framer: channels deliver raw chunks through OnData.
package framer

// Framer turns a byte stream into zero or more discrete messages. Feed takes
// the next chunk of the stream, in order, and returns the messages that
// chunk completed, retaining any partial trailing bytes internally for the
// next call. Reset discards any retained partial state.
type Framer interface {
	Feed(chunk []byte) ([][]byte, error)
	Reset()
}

// Func adapts a stateless feed function (one with no notion of partial
// frames) into a Framer whose Reset is a no-op.
type Func func(chunk []byte) ([][]byte, error)

func (f Func) Feed(chunk []byte) ([][]byte, error) { return f(chunk) }
func (f Func) Reset()                              {}
