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

package builder_test

import (
	"context"

	. "github.com/nabbar/golib/builder"
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/serialport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SerialBuilder", func() {
	It("builds a port in Idle state without opening the device when AutoManage is unset", func() {
		p, err := NewSerial("/dev/ttyUSB0", 115200).Build(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(p).ToNot(BeNil())
		Expect(p.State()).To(Equal(linkstate.Idle))
		Expect(p.IsConnected()).To(BeFalse())
	})

	It("rejects a device path that fails the devicepath rule", func() {
		_, err := NewSerial("not a device", 115200).Build(context.Background())
		Expect(err).To(HaveOccurred())
	})

	It("accepts an overridden parity and flow control", func() {
		p, err := NewSerial("/dev/ttyUSB1", 9600).
			WithParity(serialport.ParityEven).
			WithFlowControl(serialport.FlowHardware).
			Build(context.Background())

		Expect(err).ToNot(HaveOccurred())
		Expect(p).ToNot(BeNil())
	})
})
