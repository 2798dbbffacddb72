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

// Package validator holds the struct-tag validation rules applied to every
// builder configuration before a Channel is constructed (section 4.6): host,
// port, serial device path, baud rate, data/stop bits, parity, and the
// various timeout/retry/backpressure ranges. All validation happens
// synchronously at build time -- a Channel is never constructed from an
// invalid configuration.
package validator

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	libval "github.com/go-playground/validator/v10"
	liberr "github.com/nabbar/golib/errors"
	"github.com/nabbar/golib/errorkind"
)

var (
	once     sync.Once
	instance *libval.Validate
)

var deviceUnixRe = regexp.MustCompile(`^/dev/[A-Za-z0-9_/\-]+$`)
var reservedWindowsNames = map[string]bool{
	"NUL": true, "CON": true, "PRN": true, "AUX": true,
	"LPT1": true, "LPT2": true, "LPT3": true,
}
var comPortRe = regexp.MustCompile(`^COM([1-9][0-9]{0,2})$`)

// Get returns the process-wide validator instance, registering this
// package's custom rules on first use.
func Get() *libval.Validate {
	once.Do(func() {
		instance = libval.New()
		_ = instance.RegisterValidation("devicepath", validateDevicePath)
		_ = instance.RegisterValidation("parityenum", validateParity)
	})
	return instance
}

func validateDevicePath(fl libval.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" {
		return false
	}

	if deviceUnixRe.MatchString(v) {
		return true
	}

	upper := strings.ToUpper(v)
	if reservedWindowsNames[upper] {
		return true
	}

	if m := comPortRe.FindStringSubmatch(upper); m != nil {
		return true
	}

	return false
}

func validateParity(fl libval.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "none", "odd", "even":
		return true
	default:
		return false
	}
}

// Struct validates cfg against its `validate` struct tags, returning a
// single InvalidConfiguration error aggregating every violated constraint,
// or nil if cfg is valid.
func Struct(cfg interface{}) liberr.Error {
	if er := Get().Struct(cfg); er != nil {
		err := errorkind.New(errorkind.InvalidConfiguration, "invalid configuration")

		if ive, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(ive)
			return err
		}

		for _, e := range er.(libval.ValidationErrors) {
			//nolint goerr113
			err.Add(fmt.Errorf("field '%s' fails constraint '%s'", e.StructNamespace(), e.ActualTag()))
		}

		return err
	}

	return nil
}
