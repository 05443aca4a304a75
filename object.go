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
	"slices"
)

// undefinedValue is the type of Undefined.
type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Undefined is the value of a missing property.  It renders as
// [undefined] and is distinct from nil, which renders as [nil].
var Undefined any = undefinedValue{}

// IteratorFunc produces the items of receiver.  A Reflector exposes one
// under the SymbolIterator key to be rendered as iterable.
type IteratorFunc func(receiver any) iter.Seq[any]

// Object is a dynamic object: an ordered set of own properties plus a
// prototype link.  Property keys are strings, ints or Symbols.
//
// The zero value is not usable; create objects with NewObject,
// NewPlainObject or NewArray.
type Object struct {
	tag   string
	array bool
	proto any
	keys  []any
	props map[any]*Descriptor
}

// NewObject returns an empty object whose prototype is proto.  A nil
// proto gives an object without prototype.
func NewObject(proto any) *Object {
	return &Object{proto: proto, props: make(map[any]*Descriptor)}
}

// NewPlainObject returns an empty object inheriting from ObjectPrototype.
func NewPlainObject() *Object {
	return NewObject(ObjectPrototype)
}

// NewArray returns an array object holding items.  Its own keys are the
// item indices followed by a hidden, non-configurable length.
func NewArray(items ...any) *Object {
	o := NewObject(ArrayPrototype)
	o.array = true
	o.DefineProperty("length", Descriptor{Value: 0, Writable: true})
	for i, item := range items {
		o.Set(i, item)
	}
	return o
}

// Built-in prototypes.  They are excluded from expansion by default.
var (
	ObjectPrototype   = &Object{tag: "Object", props: make(map[any]*Descriptor)}
	IteratorPrototype = &Object{tag: "Iterator", proto: ObjectPrototype, props: make(map[any]*Descriptor)}
	ArrayPrototype    = &Object{tag: "Array", proto: ObjectPrototype, props: make(map[any]*Descriptor)}
)

func init() {
	ArrayPrototype.DefineProperty(SymbolIterator, Descriptor{
		Value:        IteratorFunc(values),
		Writable:     true,
		Configurable: true,
	})
}

// values iterates the index properties of an array-like receiver.
func values(receiver any) iter.Seq[any] {
	return func(yield func(any) bool) {
		n, ok := arrayLength(receiver)
		if !ok {
			return
		}
		for i := range n {
			v, err := getProperty(receiver, i, receiver)
			if err != nil {
				v = err
			}
			if !yield(v) {
				return
			}
		}
	}
}

// SetTag overrides the tag reported by Tag.
func (o *Object) SetTag(tag string) *Object {
	o.tag = tag
	return o
}

// Tag returns the object's type tag: the tag set with SetTag, a string
// inherited under SymbolToStringTag, or Array or Object.
func (o *Object) Tag() string {
	if o.tag != "" {
		return o.tag
	}
	if v, err := safeGet(o, SymbolToStringTag, o); err == nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if o.array {
		return "Array"
	}
	return "Object"
}

// IsArray reports whether o was created by NewArray.
func (o *Object) IsArray() bool {
	return o.array
}

// Set assigns v to the own data property key, creating it as writable,
// enumerable and configurable when absent.  Setting an index of an array
// grows its length.
func (o *Object) Set(key, v any) *Object {
	if d, ok := o.props[key]; ok && !d.IsAccessor() {
		d.Value = v
	} else {
		o.DefineProperty(key, DataDescriptor(v))
	}
	if o.array {
		if i, ok := key.(int); ok && i >= 0 {
			if n, _ := toInt(o.props["length"].Value); i >= n {
				o.props["length"].Value = i + 1
			}
		}
	}
	return o
}

// DefineProperty creates or replaces the own property key.
func (o *Object) DefineProperty(key any, d Descriptor) *Object {
	if _, ok := o.props[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.props[key] = &d
	return o
}

// DefineGetter defines an enumerable, configurable accessor property.
func (o *Object) DefineGetter(key any, get Getter) *Object {
	return o.DefineProperty(key, Descriptor{Get: get, Enumerable: true, Configurable: true})
}

// Delete removes the own property key.
func (o *Object) Delete(key any) *Object {
	if _, ok := o.props[key]; !ok {
		return o
	}
	delete(o.props, key)
	o.keys = slices.DeleteFunc(o.keys, func(k any) bool { return k == key })
	return o
}

// OwnKeys returns the own property keys in definition order.  An array
// lists its indices in ascending order ahead of the other keys.
func (o *Object) OwnKeys() ([]any, error) {
	keys := slices.Clone(o.keys)
	if o.array {
		slices.SortStableFunc(keys, func(a, b any) int {
			ai, aok := a.(int)
			bi, bok := b.(int)
			switch {
			case aok && bok:
				return ai - bi
			case aok:
				return -1
			case bok:
				return 1
			}
			return 0
		})
	}
	return keys, nil
}

// Descriptor returns the descriptor of the own property key.
func (o *Object) Descriptor(key any) (Descriptor, bool) {
	d, ok := o.props[key]
	if !ok {
		return Descriptor{}, false
	}
	return *d, true
}

// Get returns the property key, searching the prototype chain.  Getters
// run against receiver.  A missing property yields Undefined.
func (o *Object) Get(key, receiver any) (any, error) {
	if d, ok := o.props[key]; ok {
		if d.Get != nil {
			return d.Get(receiver)
		}
		if d.Set != nil {
			return Undefined, nil
		}
		return d.Value, nil
	}
	if o.proto == nil {
		return Undefined, nil
	}
	return getProperty(o.proto, key, receiver)
}

// Prototype returns the prototype link, nil when there is none.
func (o *Object) Prototype() (any, error) {
	return o.proto, nil
}
