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
	"sync"
)

// Reflector is implemented by values that describe their own structure.
// Every object the renderer expands is seen through a Reflector: *Object
// implements it, and ordinary Go structs, maps, slices and arrays are
// adapted to it.
//
// Errors returned by OwnKeys and Prototype abort the rendering.  Errors
// returned (or panics raised) by Get are rendered in place of the value.
type Reflector interface {
	// OwnKeys lists the own property keys.
	OwnKeys() ([]any, error)

	// Get reads property key, running accessors against receiver.
	Get(key, receiver any) (any, error)

	// Descriptor describes the own property key.
	Descriptor(key any) (Descriptor, bool)

	// Prototype returns the object inherited from, or nil.
	Prototype() (any, error)
}

// Tagger is implemented by values that name their own type.
type Tagger interface {
	Tag() string
}

// asReflector returns the Reflector view of v.
func asReflector(v any) (Reflector, bool) {
	if isNil(v) {
		return nil, false
	}
	if r, ok := v.(Reflector); ok {
		return r, true
	}
	if o, ok := newNativeObject(v); ok {
		return o, true
	}
	return nil, false
}

// getProperty reads key off target through its Reflector view.
func getProperty(target, key, receiver any) (any, error) {
	r, ok := asReflector(target)
	if !ok {
		return Undefined, nil
	}
	return r.Get(key, receiver)
}

// safeGet reads key off r through receiver, turning a panic raised by an
// accessor into an error.
func safeGet(r Reflector, key, receiver any) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v, err = nil, panicError(rec)
		}
	}()
	return r.Get(key, receiver)
}

// arrayLength returns the length property of v when it is a non-negative
// integer.
func arrayLength(v any) (int, bool) {
	r, ok := asReflector(v)
	if !ok {
		return 0, false
	}
	l, err := safeGet(r, "length", v)
	if err != nil {
		return 0, false
	}
	n, ok := toInt(l)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

// isArray reports whether v is an array instance: a Go slice or array, or
// an *Object created by NewArray.
func isArray(v any) bool {
	r, ok := asReflector(v)
	if !ok {
		return false
	}
	a, ok := r.(interface{ IsArray() bool })
	return ok && a.IsArray()
}

// nativeObject adapts a Go struct, map, slice or array to Reflector.
type nativeObject struct {
	orig any
	v    reflect.Value
}

func newNativeObject(orig any) (*nativeObject, bool) {
	v := reflect.ValueOf(orig)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct, reflect.Array:
		v = addressable(v)
	case reflect.Map, reflect.Slice:
	default:
		return nil, false
	}
	return &nativeObject{orig: orig, v: v}, true
}

func (o *nativeObject) IsArray() bool {
	k := o.v.Kind()
	return k == reflect.Slice || k == reflect.Array
}

func (o *nativeObject) Tag() string {
	return StrType(o.orig)
}

func (o *nativeObject) OwnKeys() ([]any, error) {
	switch o.v.Kind() {
	case reflect.Struct:
		t := o.v.Type()
		keys := make([]any, 0, t.NumField())
		for i := range t.NumField() {
			if name := t.Field(i).Name; name != "_" {
				keys = append(keys, name)
			}
		}
		return keys, nil
	case reflect.Map:
		mk := o.v.MapKeys()
		sortValues(mk)
		keys := make([]any, 0, len(mk))
		for _, k := range mk {
			if k = unsafeReflectValue(k); k.IsValid() {
				keys = append(keys, k.Interface())
			}
		}
		return keys, nil
	}
	n := o.v.Len()
	keys := make([]any, 0, n+1)
	for i := range n {
		keys = append(keys, i)
	}
	return append(keys, "length"), nil
}

// own returns the own property key.
func (o *nativeObject) own(key any) (reflect.Value, bool) {
	switch o.v.Kind() {
	case reflect.Struct:
		name, ok := key.(string)
		if !ok {
			return reflect.Value{}, false
		}
		if f, ok := o.v.Type().FieldByName(name); ok && len(f.Index) == 1 {
			return unsafeReflectValue(o.v.Field(f.Index[0])), true
		}
	case reflect.Map:
		kv := reflect.ValueOf(key)
		if !kv.IsValid() || !kv.Type().AssignableTo(o.v.Type().Key()) {
			return reflect.Value{}, false
		}
		if mv := o.v.MapIndex(kv); mv.IsValid() {
			return unsafeReflectValue(mv), true
		}
	default:
		if key == "length" {
			return reflect.ValueOf(o.v.Len()), true
		}
		if i, ok := key.(int); ok && i >= 0 && i < o.v.Len() {
			return unsafeReflectValue(o.v.Index(i)), true
		}
	}
	return reflect.Value{}, false
}

func (o *nativeObject) Get(key, receiver any) (any, error) {
	if v, ok := o.own(key); ok {
		if !v.IsValid() {
			return Undefined, nil
		}
		return v.Interface(), nil
	}
	proto, _ := o.Prototype()
	return getProperty(proto, key, receiver)
}

func (o *nativeObject) Descriptor(key any) (Descriptor, bool) {
	v, ok := o.own(key)
	if !ok {
		return Descriptor{}, false
	}
	var val any = Undefined
	if v.IsValid() {
		val = v.Interface()
	}
	switch o.v.Kind() {
	case reflect.Struct:
		if f, _ := o.v.Type().FieldByName(key.(string)); !f.IsExported() {
			return Descriptor{Value: val, Configurable: true}, true
		}
	case reflect.Slice, reflect.Array:
		if key == "length" {
			return Descriptor{Value: val, Writable: o.v.Kind() == reflect.Slice}, true
		}
	}
	return DataDescriptor(val), true
}

func (o *nativeObject) Prototype() (any, error) {
	base := ObjectPrototype
	if o.IsArray() {
		base = ArrayPrototype
	}
	if t := reflect.TypeOf(o.orig); t.NumMethod() > 0 {
		return methodSetPrototype(t, base), nil
	}
	return base, nil
}

// methodSets caches one prototype per Go type with methods.
var methodSets sync.Map // map[reflect.Type]*Object

// methodSetPrototype returns an object, tagged with the type's name, whose
// hidden properties are the exported methods of t.
func methodSetPrototype(t reflect.Type, base *Object) *Object {
	if p, ok := methodSets.Load(t); ok {
		return p.(*Object)
	}
	p := NewObject(base).SetTag(t.String())
	for i := range t.NumMethod() {
		m := t.Method(i)
		p.DefineProperty(m.Name, Descriptor{
			Value:        m.Func.Interface(),
			Writable:     true,
			Configurable: true,
		})
	}
	actual, _ := methodSets.LoadOrStore(t, p)
	return actual.(*Object)
}
