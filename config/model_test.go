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

package config_test

import (
	. "github.com/nabbar/golib/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("New", func() {
	It("builds a viper instance with the environment prefix wired in", func() {
		v := New("UNILINK")
		Expect(v).ToNot(BeNil())
	})
})

var _ = Describe("Load", func() {
	It("loads and validates a populated client section", func() {
		v := New("UNILINK")
		v.Set("client.host", "example.org")
		v.Set("client.port", 9000)
		v.Set("client.connectTimeout", "10s")
		v.Set("client.retryInterval", "2s")
		v.Set("client.maxRetries", 5)
		v.Set("client.backpressureThreshold", "4MB")

		root, err := Load(v, "")
		Expect(err).ToNot(HaveOccurred())
		Expect(root).ToNot(BeNil())
		Expect(root.Client).ToNot(BeNil())
		Expect(root.Client.Host).To(Equal("example.org"))
		Expect(root.Client.Port).To(Equal(uint16(9000)))
	})

	It("returns a validation error for an incomplete client section", func() {
		v := New("UNILINK")
		v.Set("client.port", 9000)

		_, err := Load(v, "")
		Expect(err).To(HaveOccurred())
	})

	It("tolerates an entirely empty document", func() {
		v := New("UNILINK")
		root, err := Load(v, "")
		Expect(err).ToNot(HaveOccurred())
		Expect(root).ToNot(BeNil())
		Expect(root.Client).To(BeNil())
		Expect(root.Server).To(BeNil())
		Expect(root.Serial).To(BeNil())
	})

	It("can load a single Root section nested under an arbitrary key path", func() {
		v := New("UNILINK")
		v.Set("channels.primary.client.host", "10.0.0.1")
		v.Set("channels.primary.client.port", 7000)
		v.Set("channels.primary.client.connectTimeout", "5s")
		v.Set("channels.primary.client.retryInterval", "1s")
		v.Set("channels.primary.client.maxRetries", 3)
		v.Set("channels.primary.client.backpressureThreshold", "1MB")

		root, err := Load(v, "channels.primary")
		Expect(err).ToNot(HaveOccurred())
		Expect(root).ToNot(BeNil())
		Expect(root.Client).ToNot(BeNil())
		Expect(root.Client.Host).To(Equal("10.0.0.1"))
	})
})
