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

package channel

import (
	"github.com/nabbar/golib/linkstate"
	"github.com/nabbar/golib/logger"
	loglvl "github.com/nabbar/golib/logger/level"
)

// SetLogger registers the logger collaborator. A nil fct (the default)
// leaves the Core silent; logging is diagnostic only and never gates any
// state transition or callback dispatch.
func (c *Core) SetLogger(fct logger.FuncLog) {
	c.log.Store(fct)
}

func (c *Core) logger() logger.Logger {
	v := c.log.Load()
	if v == nil {
		return nil
	}

	fct, ok := v.(logger.FuncLog)
	if !ok || fct == nil {
		return nil
	}

	return fct()
}

func (c *Core) logState(next linkstate.LinkState) {
	if l := c.logger(); l != nil {
		l.Entry(loglvl.DebugLevel, "channel state transition").FieldAdd("client_id", c.id).FieldAdd("state", next.String()).Log()
	}
}

func (c *Core) logError(err error) {
	if l := c.logger(); l != nil {
		l.Entry(loglvl.ErrorLevel, "channel error").FieldAdd("client_id", c.id).ErrorAdd(true, err).Log()
	}
}
