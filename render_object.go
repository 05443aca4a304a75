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

	"github.com/cockroachdb/errors"
)

// Object body tokens.
const (
	filteredText = "is-filtered"
	copyOfText   = "is-copy-of-( "
	protoKey     = "__proto__"
)

// renderObject renders a structured value as its grouped own properties
// followed by its prototype.
//
// Excluded values, and key-less objects inheriting from an excluded
// prototype, render as {is-filtered}.  A value expanded before, and a
// key-less object whose prototype was expanded before, render as a
// reference to the route of that first expansion.  Arrays without extra
// keys are handed to renderArray.
func (n *node) renderObject() (string, error) {
	opts := n.opts
	r, ok := asReflector(n.value)
	if !ok {
		return opts.Format.Apply(printScalar(n.value)), nil
	}
	keys, err := r.OwnKeys()
	if err != nil {
		return "", errors.Wrapf(err, "listing keys of %s", n.route())
	}
	proto, err := r.Prototype()
	if err != nil {
		return "", errors.Wrapf(err, "reading prototype of %s", n.route())
	}
	count := len(keys)

	if opts.excluded(n.value) || (count == 0 && opts.excluded(proto)) {
		return opts.Object.Format.Apply(filteredText), nil
	}
	if e, ok := n.refs.lookup(n.value); ok {
		return n.copyOf(e), nil
	}
	if count == 0 {
		if e, ok := n.refs.lookup(proto); ok {
			return n.copyOf(e), nil
		}
	}
	if isArrayOnly(n.recv(), count) {
		return n.renderArray()
	}

	n.refs.record(n.value, n.route())

	props := make([]property, len(keys))
	for i, key := range keys {
		props[i] = readProperty(r, key, n.recv())
	}
	sortProperties(props)

	gs := newGroups(n)
	for i := range props {
		gs.route(&props[i])
	}
	expanded, err := gs.expand(proto)
	if err != nil {
		return "", err
	}

	var prefix, suffix, origin string
	if strings.Contains(expanded, "\n") {
		prefix, suffix = n.indent.Resolve()
		if opts.OriginProperty {
			origin = opts.Origin.Format.Apply(n.originName())
		}
	}
	return "(" + strconv.Itoa(count) + ")" +
		opts.Object.Format.Apply(prefix+expanded+suffix) + origin, nil
}

// copyOf renders a reference to the first route e was expanded at and
// remembers the route of n as another way to reach it.
func (n *node) copyOf(e *refEntry) string {
	e.routes = append(e.routes, n.route())
	current, previous := n.indent.Resolve()
	return n.opts.Object.Format.Apply(current + copyOfText + e.routes[0] + " )" + previous)
}

// originName is the origin annotation of an expanded object: its route,
// or its name when it is a prototype expanded for another object.
func (n *node) originName() string {
	if !n.hasReceiver || sameValue(n.receiver, n.value) {
		return n.route()
	}
	return n.moniker
}
