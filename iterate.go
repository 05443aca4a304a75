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
	"iter"
	"reflect"
)

// iterable is an object that can produce a sequence of items.
type iterable struct {
	// fn is the function producing the sequence, shown as [iterator].
	fn any

	// seq is the sequence itself.
	seq any

	// size is the number of items to pull, or -1 when unknown.
	size int

	// each feeds the items to add until add returns false.
	each func(add func(any) bool)
}

// pull collects up to limit items.  A panic raised by the sequence stops
// the iteration and is kept as the last item.
func (it iterable) pull(limit int) (items []any) {
	defer func() {
		if r := recover(); r != nil {
			items = append(items, panicError(r))
		}
	}()
	if limit <= 0 {
		return nil
	}
	it.each(func(v any) bool {
		items = append(items, v)
		return len(items) < limit
	})
	return items
}

// iterableOf returns the iteration protocol of receiver: a method
// All() returning a range function, or an IteratorFunc stored under
// SymbolIterator.  A protocol that panics while being set up makes the
// receiver not iterable.
func iterableOf(receiver any) (it iterable, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			it, ok = iterable{}, false
		}
	}()
	if isNil(receiver) {
		return iterable{}, false
	}
	if it, ok := nativeIterable(receiver); ok {
		return it, true
	}
	r, ok := asReflector(receiver)
	if !ok {
		return iterable{}, false
	}
	v, err := safeGet(r, SymbolIterator, receiver)
	if err != nil {
		return iterable{}, false
	}
	var fn func(any) iter.Seq[any]
	switch f := v.(type) {
	case IteratorFunc:
		fn = f
	case func(any) iter.Seq[any]:
		fn = f
	default:
		return iterable{}, false
	}
	seq := fn(receiver)
	it = iterable{fn: v, seq: seq, size: -1}
	it.each = func(add func(any) bool) {
		if seq == nil {
			return
		}
		for item := range seq {
			if !add(item) {
				return
			}
		}
	}
	for _, key := range []string{"size", "length"} {
		if v, err := safeGet(r, key, receiver); err == nil {
			if n, ok := toInt(v); ok && n >= 0 {
				it.size = n
				break
			}
		}
	}
	return it, true
}

// isRangeFunc reports whether t is func(func(V) bool) or
// func(func(K, V) bool).
func isRangeFunc(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	y := t.In(0)
	return y.Kind() == reflect.Func &&
		(y.NumIn() == 1 || y.NumIn() == 2) &&
		y.NumOut() == 1 && y.Out(0).Kind() == reflect.Bool
}

// nativeIterable returns the iteration protocol of a Go value with an All
// method returning a range function.  A Len method gives its size.
func nativeIterable(receiver any) (it iterable, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			it, ok = iterable{}, false
		}
	}()
	rv := reflect.ValueOf(receiver)
	m, ok := rv.Type().MethodByName("All")
	if !ok {
		return iterable{}, false
	}
	all := rv.Method(m.Index)
	t := all.Type()
	if t.NumIn() != 0 || t.NumOut() != 1 || !isRangeFunc(t.Out(0)) {
		return iterable{}, false
	}
	seq := all.Call(nil)[0]
	// The method expression keeps the method's name; a bound method value
	// taken through reflect does not.
	it = iterable{fn: m.Func.Interface(), seq: seq.Interface(), size: -1}
	if l := rv.MethodByName("Len"); l.IsValid() {
		lt := l.Type()
		if lt.NumIn() == 0 && lt.NumOut() == 1 && lt.Out(0).Kind() == reflect.Int {
			it.size = int(l.Call(nil)[0].Int())
		}
	}
	it.each = func(add func(any) bool) {
		eachSeq(seq, add)
	}
	return it, true
}

// eachSeq runs a range function of any element type, handing each item
// to add.  Pairs yielded by a two-value sequence become two-item arrays.
func eachSeq(seq reflect.Value, add func(any) bool) {
	if seq.IsNil() {
		return
	}
	yield := reflect.MakeFunc(seq.Type().In(0), func(args []reflect.Value) []reflect.Value {
		var more bool
		if len(args) == 2 {
			more = add(NewArray(valueOf(args[0]), valueOf(args[1])))
		} else {
			more = add(valueOf(args[0]))
		}
		return []reflect.Value{reflect.ValueOf(more)}
	})
	seq.Call([]reflect.Value{yield})
}

func valueOf(v reflect.Value) any {
	if v = unsafeReflectValue(v); !v.IsValid() {
		return Undefined
	}
	return v.Interface()
}
