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
	"strconv"
	"strings"
)

// renderArray renders the items of an array receiver.  Arrays shorter than
// NewlineLimitArray list one item per line one level deeper; longer ones
// list every item on the same line.  When all items share a type the count
// is prefixed with it.
func (n *node) renderArray() (string, error) {
	opts := n.opts
	recv := n.recv()
	n.refs.record(n.value, n.route())

	length, _ := arrayLength(recv)
	items := make([]any, length)
	r, _ := asReflector(recv)
	for i := range items {
		items[i] = readProperty(r, i, recv).value
	}

	var itemType string
	if len(items) > 0 {
		first := StrType(items[0])
		itemType = first + ": "
		for _, item := range items[1:] {
			if StrType(item) != first {
				itemType = ""
				break
			}
		}
	}

	var body string
	if len(items) > 0 {
		current, previous := n.indent.Resolve()
		prefix, tail, indent := " ", " ", n.indent
		if len(items) < opts.NewlineLimitArray {
			prefix, tail, indent = current, ","+previous, n.indent.Next(opts.Indent)
		}
		parts := make([]string, len(items))
		for i, item := range items {
			name := n.moniker + "[" + strconv.Itoa(i) + "]"
			s, err := n.child(item, name, indent).render()
			if err != nil {
				return "", err
			}
			parts[i] = prefix + s
		}
		body = strings.Join(parts, ",") + tail
	}

	var origin string
	if opts.OriginProperty {
		origin = opts.Origin.Format.Apply(n.route())
	}
	return "(" + itemType + strconv.Itoa(len(items)) + ")" + opts.Format.Apply(body) + origin, nil
}
