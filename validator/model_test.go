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

package validator_test

import (
	. "github.com/nabbar/golib/validator"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type sample struct {
	Host string `validate:"required,hostname_rfc1123|ip"`
	Port uint16 `validate:"required"`
}

type devicePathSample struct {
	Device string `validate:"required,devicepath"`
}

type paritySample struct {
	Parity string `validate:"required,parityenum"`
}

var _ = Describe("Get", func() {
	It("returns the same process-wide instance on every call", func() {
		Expect(Get()).To(BeIdenticalTo(Get()))
	})
})

var _ = Describe("Struct", func() {
	It("returns nil for a valid struct", func() {
		Expect(Struct(sample{Host: "localhost", Port: 9000})).To(BeNil())
	})

	It("aggregates every violated constraint into one error", func() {
		err := Struct(sample{})
		Expect(err).ToNot(BeNil())
		Expect(err.Error()).ToNot(BeEmpty())
	})

	Context("devicepath", func() {
		It("accepts a unix device path", func() {
			Expect(Struct(devicePathSample{Device: "/dev/ttyUSB0"})).To(BeNil())
		})

		It("accepts a COM port name", func() {
			Expect(Struct(devicePathSample{Device: "COM3"})).To(BeNil())
		})

		It("rejects an empty or malformed path", func() {
			Expect(Struct(devicePathSample{Device: ""})).ToNot(BeNil())
			Expect(Struct(devicePathSample{Device: "not a path"})).ToNot(BeNil())
		})
	})

	Context("parityenum", func() {
		It("accepts none, odd and even case-insensitively", func() {
			Expect(Struct(paritySample{Parity: "None"})).To(BeNil())
			Expect(Struct(paritySample{Parity: "odd"})).To(BeNil())
			Expect(Struct(paritySample{Parity: "EVEN"})).To(BeNil())
		})

		It("rejects anything else", func() {
			Expect(Struct(paritySample{Parity: "mark"})).ToNot(BeNil())
		})
	})
})
