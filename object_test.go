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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayObject(t *testing.T) {
	a := NewArray("x", "y")
	a.Set("extra", true)
	keys, err := a.OwnKeys()
	require.NoError(t, err)
	require.Equal(t, []any{0, 1, "length", "extra"}, keys)

	n, ok := arrayLength(a)
	require.True(t, ok)
	require.Equal(t, 2, n)

	d, ok := a.Descriptor("length")
	require.True(t, ok)
	require.Equal(t, "EC", descriptorFlags(d))

	a.Set(4, "z")
	n, _ = arrayLength(a)
	require.Equal(t, 5, n)
	v, err := a.Get(3, a)
	require.NoError(t, err)
	require.Equal(t, Undefined, v)

	require.True(t, a.IsArray())
	require.True(t, isArray(a))
	keys, _ = a.OwnKeys()
	require.False(t, isArrayOnly(a, len(keys)))
	require.True(t, isArrayOnly(NewArray(1), 2))
}

func TestObjectPrototypeChain(t *testing.T) {
	proto := NewPlainObject().Set("inherited", 1)
	proto.DefineGetter("self", func(receiver any) (any, error) { return receiver, nil })
	o := NewObject(proto).Set("own", 2)

	v, err := o.Get("inherited", o)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	v, err = o.Get("self", o)
	require.NoError(t, err)
	require.Same(t, o, v)

	v, err = o.Get("missing", o)
	require.NoError(t, err)
	require.Equal(t, Undefined, v)

	_, ok := o.Descriptor("inherited")
	require.False(t, ok)

	p, err := o.Prototype()
	require.NoError(t, err)
	require.Same(t, proto, p)
}

func TestObjectSetAndDelete(t *testing.T) {
	o := NewPlainObject().Set("a", 1).Set("b", 2).Set("a", 3)
	keys, _ := o.OwnKeys()
	require.Equal(t, []any{"a", "b"}, keys)
	v, _ := o.Get("a", o)
	require.Equal(t, 3, v)

	o.Delete("a").Delete("missing")
	keys, _ = o.OwnKeys()
	require.Equal(t, []any{"b"}, keys)

	// Setting a property defined by an accessor replaces it.
	o.DefineGetter("g", func(any) (any, error) { return 1, nil })
	o.Set("g", 2)
	d, ok := o.Descriptor("g")
	require.True(t, ok)
	require.False(t, d.IsAccessor())
	require.Equal(t, 2, d.Value)

	// A setter without a getter reads as undefined.
	o.DefineProperty("w", Descriptor{Set: func(any, any) error { return nil }})
	v, err := o.Get("w", o)
	require.NoError(t, err)
	require.Equal(t, Undefined, v)
}

func TestObjectTag(t *testing.T) {
	require.Equal(t, "Object", NewPlainObject().Tag())
	require.Equal(t, "Object", NewObject(nil).Tag())
	require.Equal(t, "Array", NewArray().Tag())
	require.Equal(t, "Map", NewPlainObject().SetTag("Map").Tag())
	require.Equal(t, "Iterator", IteratorPrototype.Tag())

	proto := NewPlainObject().Set(SymbolToStringTag, "Custom")
	require.Equal(t, "Custom", NewObject(proto).Tag())
	require.Equal(t, "Custom", StrType(NewObject(proto)))
}

func TestArrayValues(t *testing.T) {
	a := NewArray(1, "two", 3)
	fn, err := a.Get(SymbolIterator, a)
	require.NoError(t, err)
	it, ok := fn.(IteratorFunc)
	require.True(t, ok)

	var got []any
	for v := range it(a) {
		got = append(got, v)
	}
	require.Equal(t, []any{1, "two", 3}, got)

	// Iteration stops when asked to.
	got = got[:0]
	for v := range it(a) {
		got = append(got, v)
		break
	}
	require.Equal(t, []any{1}, got)
}

func TestSymbols(t *testing.T) {
	a, b := NewSymbol("same"), NewSymbol("same")
	require.False(t, a == b)
	require.Len(t, map[Symbol]int{a: 1, b: 2}, 2)

	desc, ok := a.Description()
	require.True(t, ok)
	require.Equal(t, "same", desc)
	require.Equal(t, "Symbol(same)", a.String())

	_, ok = NewAnonymousSymbol().Description()
	require.False(t, ok)
	require.True(t, SymbolIterator.IsWellKnown())
	require.False(t, a.IsWellKnown())

	require.Equal(t, `Symbol("same")`, symbolText(a))
	require.Equal(t, "Symbol()", symbolText(NewAnonymousSymbol()))
	require.Equal(t, "Symbol()", symbolText(NewSymbol("")))
	require.Equal(t, "asyncIterator", symbolText(SymbolAsyncIterator))
	require.Equal(t, "hasInstance", symbolText(SymbolHasInstance))
}
