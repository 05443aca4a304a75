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
	"slices"
	"strings"

	"github.com/cockroachdb/swiss"
)

// refKey is the identity of a value that can be shared within a graph.
type refKey struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

// identity returns the reference identity of v.  Only values reached
// through a pointer, map, channel or non-empty slice have one.
func identity(v any) (refKey, bool) {
	if isNil(v) {
		return refKey{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return refKey{typ: rv.Type(), ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return refKey{}, false
		}
		return refKey{typ: rv.Type(), ptr: rv.Pointer(), n: rv.Len()}, true
	}
	return refKey{}, false
}

// sameValue reports whether a and b are the same value: identical
// references, or equal comparable values of the same type.
func sameValue(a, b any) bool {
	ka, aok := identity(a)
	kb, bok := identity(b)
	if aok || bok {
		return aok && bok && ka == kb
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	defer func() { _ = recover() }()
	return a == b
}

// refEntry lists the routes a shared value was reached by, the first one
// being the route it was expanded at.
type refEntry struct {
	routes []string
}

// refTable records every expanded object of one rendering.
type refTable struct {
	m swiss.Map[refKey, *refEntry]
}

func newRefTable() *refTable {
	t := &refTable{}
	t.m.Init(16)
	return t
}

func (t *refTable) lookup(v any) (*refEntry, bool) {
	k, ok := identity(v)
	if !ok {
		return nil, false
	}
	return t.m.Get(k)
}

func (t *refTable) record(v any, route string) {
	k, ok := identity(v)
	if !ok {
		return
	}
	if e, ok := t.m.Get(k); ok {
		e.routes = append(e.routes, route)
		return
	}
	t.m.Put(k, &refEntry{routes: []string{route}})
}

// node is the traversal state of one value being rendered.
type node struct {
	value   any
	moniker string
	path    []string
	opts    *Options
	indent  Indentation
	refs    *refTable

	// receiver is the object property reads run against.  It differs
	// from value while a prototype is expanded on behalf of an object.
	receiver    any
	hasReceiver bool
}

// newRootNode returns the traversal state of a top-level value named
// name, or by its type name when name is empty.
func newRootNode(v any, name string, opts *Options, refs *refTable) *node {
	if name == "" {
		name = StrType(v)
	}
	return &node{
		value:   v,
		moniker: name,
		path:    []string{name},
		opts:    opts,
		indent:  NewIndentation().Next(opts.Indent),
		refs:    refs,
	}
}

// child returns the state of value reached from n by segment.
func (n *node) child(value any, segment string, indent Indentation) *node {
	return &node{
		value:   value,
		moniker: segment,
		path:    append(slices.Clip(n.path), segment),
		opts:    n.opts,
		indent:  indent,
		refs:    n.refs,
	}
}

// recv returns the object property reads run against.
func (n *node) recv() any {
	if n.hasReceiver {
		return n.receiver
	}
	return n.value
}

// route returns the dotted path from the root to n.
func (n *node) route() string {
	return strings.Join(n.path, ".")
}
