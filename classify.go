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
	"regexp"
	"runtime"
	"strings"
	"time"
)

// Category is the rendering category of a value.
type Category int

// Categories, in the order they are tested.
const (
	Null Category = iota
	Date
	ErrorValue
	Function
	StringValue
	SymbolValue
	ObjectValue
	Other
)

var categoryNames = [...]string{
	Null:        "null",
	Date:        "date",
	ErrorValue:  "error",
	Function:    "function",
	StringValue: "string",
	SymbolValue: "symbol",
	ObjectValue: "object",
	Other:       "other",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// isNil reports whether v is nil or a typed nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// Classify returns the category of v.  The first match wins: nil, time,
// error, func, string, Symbol, then structured values.  Pointers to
// anything but structured values are classified by what they point to.
func Classify(v any) Category {
	c, _ := classify(v)
	return c
}

// classify returns the category of v and the value to render for it,
// which differs from v when a pointer to a scalar was followed.
func classify(v any) (Category, any) {
	seen := map[uintptr]struct{}{}
	for {
		if isNil(v) {
			return Null, nil
		}
		switch v.(type) {
		case undefinedValue:
			return Other, v
		case time.Time, *time.Time:
			return Date, v
		case error:
			return ErrorValue, v
		case Symbol:
			return SymbolValue, v
		case Reflector:
			return ObjectValue, v
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Func:
			return Function, v
		case reflect.String:
			return StringValue, v
		case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
			return ObjectValue, v
		case reflect.Pointer:
			switch rv.Elem().Kind() {
			case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
				return ObjectValue, v
			}
			if _, ok := seen[rv.Pointer()]; ok {
				return Other, v
			}
			seen[rv.Pointer()] = struct{}{}
			e := unsafeReflectValue(rv.Elem())
			if !e.IsValid() {
				return Other, v
			}
			v = e.Interface()
			continue
		}
		return Other, v
	}
}

// isObject reports whether v is a non-nil object: a date, an error or a
// structured value.
func isObject(v any) bool {
	switch Classify(v) {
	case Date, ErrorValue, ObjectValue:
		return true
	}
	return false
}

// isArrayLike reports whether v is an object with a non-negative integer
// length.
func isArrayLike(v any) bool {
	if Classify(v) != ObjectValue {
		return false
	}
	_, ok := arrayLength(v)
	return ok
}

// isArrayOnly reports whether v is an array whose own keys are exactly its
// indices plus length.
func isArrayOnly(v any, ownKeys int) bool {
	if !isArray(v) {
		return false
	}
	n, ok := arrayLength(v)
	return ok && n == ownKeys-1
}

// typeOf returns the coarse type of v used for ordering properties.
func typeOf(v any) string {
	c, d := classify(v)
	switch c {
	case Null, Date, ErrorValue, ObjectValue:
		return "object"
	case Function:
		return "function"
	case StringValue:
		return "string"
	case SymbolValue:
		return "symbol"
	}
	if _, ok := d.(undefinedValue); ok {
		return "undefined"
	}
	return reflect.TypeOf(d).Kind().String()
}

// StrType returns the type name of v: the tag of objects that carry one,
// the Go type of other structured values and the kind of everything else.
func StrType(v any) string {
	c, d := classify(v)
	switch c {
	case Null:
		return "nil"
	case Function:
		return "func"
	case StringValue:
		return "string"
	case SymbolValue:
		return "symbol"
	case Other:
		if _, ok := d.(undefinedValue); ok {
			return "undefined"
		}
		return reflect.TypeOf(d).Kind().String()
	}
	if t, ok := d.(Tagger); ok {
		return t.Tag()
	}
	rt := reflect.TypeOf(d)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt.String()
}

var anonymousFunc = regexp.MustCompile(`^(func)?\d+$`)

// funcName returns the short name of the function v, or the empty string
// for function literals.
func funcName(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return ""
	}
	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return ""
	}
	name := strings.TrimSuffix(fn.Name(), "-fm")
	if i := strings.IndexByte(name, '['); i >= 0 {
		if j := strings.LastIndexByte(name, ']'); j > i {
			name = name[:i] + name[j+1:]
		}
	}
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if anonymousFunc.MatchString(name) {
		return ""
	}
	return name
}
