/*
 * Copyright (c) 2013-2016 Dave Collins <dave@davec.name>
 * Copyright (c) 2021 Anner van Hardenbroek
 *
 * Permission to use, copy, modify, and distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package inspect

import (
	"reflect"
	"strconv"
	"time"
)

// render dispatches on the category of the node's value.  Every category
// but strings and other scalars is prefixed with the type annotation.
func (n *node) render() (string, error) {
	c, v := classify(n.value)
	switch c {
	case StringValue, Other:
		return renderLeaf(c, v, n.opts), nil
	}

	typ := n.opts.Type.Format.Apply(n.value)
	switch c {
	case ObjectValue:
		s, err := n.renderObject()
		if err != nil {
			return "", err
		}
		return typ + s, nil
	default:
		return typ + renderLeaf(c, v, n.opts), nil
	}
}

// renderRoot renders a top-level node.  A panic escaping the walk, such as
// one raised by a Reflector method, is returned as an error.
func (n *node) renderRoot() (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = "", panicError(r)
		}
	}()
	return n.render()
}

// renderLeaf renders a value of any category but ObjectValue.
func renderLeaf(c Category, v any, opts *Options) string {
	switch c {
	case Null:
		return opts.Format.Apply("nil")
	case StringValue:
		return opts.Format.Apply(strconv.Quote(reflect.ValueOf(v).String()))
	case Date:
		t, ok := v.(time.Time)
		if !ok {
			t = *v.(*time.Time)
		}
		return opts.Format.Apply(t.Format(time.RFC3339Nano))
	case ErrorValue:
		return opts.Error.Format.Apply(errorText(v.(error)))
	case Function:
		return opts.Format.Apply(funcName(v))
	case SymbolValue:
		return renderSymbol(v.(Symbol), opts.Style)
	}
	return opts.Format.Apply(printScalar(v))
}

// keyText renders a property key.  Keys are never type annotated.
func keyText(key any, opts *Options) string {
	c, v := classify(key)
	if c == ObjectValue {
		return opts.Format.Apply(printScalar(key))
	}
	return renderLeaf(c, v, opts)
}

// keySegment is the route segment of a property key.
func keySegment(key any, opts *Options) string {
	switch k := key.(type) {
	case string:
		return k
	case Symbol:
		return renderSymbol(k, opts.Style)
	}
	return printScalar(key)
}
