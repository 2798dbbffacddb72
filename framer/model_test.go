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

package framer_test

import (
	"bytes"

	. "github.com/nabbar/golib/framer"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// lineFramer is a minimal newline-delimited Framer used only to exercise
// the interface contract; no concrete framer ships in this package.
type lineFramer struct {
	buf []byte
}

func (f *lineFramer) Feed(chunk []byte) ([][]byte, error) {
	f.buf = append(f.buf, chunk...)

	var out [][]byte
	for {
		i := bytes.IndexByte(f.buf, '\n')
		if i < 0 {
			break
		}
		out = append(out, append([]byte(nil), f.buf[:i]...))
		f.buf = f.buf[i+1:]
	}
	return out, nil
}

func (f *lineFramer) Reset() { f.buf = nil }

var _ Framer = (*lineFramer)(nil)

var _ = Describe("Func", func() {
	It("adapts a stateless feed function into a Framer with a no-op Reset", func() {
		var f Framer = Func(func(chunk []byte) ([][]byte, error) {
			return [][]byte{chunk}, nil
		})

		msgs, err := f.Feed([]byte("abc"))
		Expect(err).ToNot(HaveOccurred())
		Expect(msgs).To(Equal([][]byte{[]byte("abc")}))

		Expect(func() { f.Reset() }).ToNot(Panic())
	})
})

var _ = Describe("Framer contract", func() {
	It("retains partial frames across Feed calls and emits completed ones in order", func() {
		f := &lineFramer{}

		msgs, err := f.Feed([]byte("hel"))
		Expect(err).ToNot(HaveOccurred())
		Expect(msgs).To(BeEmpty())

		msgs, err = f.Feed([]byte("lo\nworld\npartial"))
		Expect(err).ToNot(HaveOccurred())
		Expect(msgs).To(Equal([][]byte{[]byte("hello"), []byte("world")}))

		msgs, err = f.Feed([]byte(" rest\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(msgs).To(Equal([][]byte{[]byte("partial rest")}))
	})

	It("discards retained partial state on Reset", func() {
		f := &lineFramer{}

		_, err := f.Feed([]byte("partial-no-newline"))
		Expect(err).ToNot(HaveOccurred())

		f.Reset()

		msgs, err := f.Feed([]byte("fresh\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(msgs).To(Equal([][]byte{[]byte("fresh")}))
	})
})
