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
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
)

// Some constants in the form of bytes to avoid string overhead.  This mirrors
// the technique used in the fmt package.
var (
	panicBytes      = []byte("(PANIC=")
	plusBytes       = []byte("+")
	iBytes          = []byte("i")
	trueBytes       = []byte("true")
	falseBytes      = []byte("false")
	openParenBytes  = []byte("(")
	closeParenBytes = []byte(")")
	nilBytes        = []byte("nil")
)

// hexDigits is used to map a decimal value to a hex digit.
const hexDigits = "0123456789abcdef"

// catchPanic handles any panics that might occur during the handleMethods
// calls.
func catchPanic(w io.Writer) {
	if err := recover(); err != nil {
		w.Write(panicBytes)
		fmt.Fprintf(w, "%v", err)
		w.Write(closeParenBytes)
	}
}

// panicError converts a recovered panic into an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return errors.Wrap(err, "panic")
	}
	return errors.Newf("panic: %v", r)
}

// handleMethods attempts to call the Error and String methods on the
// underlying type the passed reflect.Value represents and outputs the result
// to Writer w.
//
// It handles panics in any called methods by catching and displaying the error
// as the formatted value.
func handleMethods(w io.Writer, v reflect.Value) (handled bool) {
	if v = unsafeReflectValue(v); !v.IsValid() {
		return false
	}
	switch iface := v.Interface().(type) {
	case error:
		defer catchPanic(w)
		io.WriteString(w, iface.Error())
		return true

	case fmt.Stringer:
		defer catchPanic(w)
		io.WriteString(w, iface.String())
		return true
	}
	return false
}

// errorText returns the verbose form of err, including any stack trace
// recorded by the errors package.
func errorText(err error) string {
	buf := bytesBufferGet()
	defer bytesBufferPut(buf)
	func() {
		defer catchPanic(buf)
		fmt.Fprintf(buf, "%+v", err)
	}()
	return buf.String()
}

// printScalar returns the text of a value without structure: booleans,
// numbers, channels and anything with a String method.
func printScalar(v any) string {
	buf := bytesBufferGet()
	defer bytesBufferPut(buf)

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		buf.Write(nilBytes)
		return buf.String()
	}
	if handleMethods(buf, rv) {
		return buf.String()
	}
	switch rv.Kind() {
	case reflect.Bool:
		printBool(buf, rv.Bool())

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		printInt(buf, rv.Int(), 10)

	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		printUint(buf, rv.Uint(), 10)

	case reflect.Uintptr:
		printHexPtr(buf, uintptr(rv.Uint()))

	case reflect.Float32:
		printFloat(buf, rv.Float(), 32)

	case reflect.Float64:
		printFloat(buf, rv.Float(), 64)

	case reflect.Complex64:
		printComplex(buf, rv.Complex(), 32)

	case reflect.Complex128:
		printComplex(buf, rv.Complex(), 64)

	case reflect.Chan, reflect.UnsafePointer, reflect.Pointer:
		printHexPtr(buf, rv.Pointer())

	default:
		fmt.Fprint(buf, v)
	}
	return buf.String()
}

// printBool outputs a boolean value as true or false to Writer w.
func printBool(w io.Writer, val bool) {
	if val {
		w.Write(trueBytes)
	} else {
		w.Write(falseBytes)
	}
}

// printInt outputs a signed integer value to Writer w.
func printInt(w io.Writer, val int64, base int) {
	pv, buf := strconvBufPoolGet()
	defer strconvBufPool.Put(pv)
	w.Write(strconv.AppendInt(buf, val, base))
}

// printUint outputs an unsigned integer value to Writer w.
func printUint(w io.Writer, val uint64, base int) {
	pv, buf := strconvBufPoolGet()
	defer strconvBufPool.Put(pv)
	w.Write(strconv.AppendUint(buf, val, base))
}

// printFloat outputs a floating point value using the specified precision,
// which is expected to be 32 or 64bit, to Writer w.
func printFloat(w io.Writer, val float64, precision int) {
	pv, buf := strconvBufPoolGet()
	defer strconvBufPool.Put(pv)
	w.Write(strconv.AppendFloat(buf, val, 'g', -1, precision))
}

// printComplex outputs a complex value using the specified float precision
// for the real and imaginary parts to Writer w.
func printComplex(w io.Writer, c complex128, floatPrecision int) {
	pv, buf := strconvBufPoolGet()
	defer strconvBufPool.Put(pv)
	w.Write(openParenBytes)
	w.Write(strconv.AppendFloat(buf, real(c), 'g', -1, floatPrecision))
	i := imag(c)
	if i >= 0 {
		w.Write(plusBytes)
	}
	w.Write(strconv.AppendFloat(buf[:0], i, 'g', -1, floatPrecision))
	w.Write(iBytes)
	w.Write(closeParenBytes)
}

var strconvBufPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 64)
	},
}

func strconvBufPoolGet() (interface{}, []byte) {
	pv := strconvBufPool.Get()
	buf := pv.([]byte)
	buf = buf[:0]
	return pv, buf
}

// printHexPtr outputs a uintptr formatted as hexadecimal with a leading '0x'
// prefix to Writer w.
func printHexPtr(w io.Writer, p uintptr) {
	num := uint64(p)
	if num == 0 {
		w.Write(nilBytes)
		return
	}

	// Max uint64 is 16 bytes in hex + 2 bytes for '0x' prefix
	buf := printHexPtrBufPool.Get().(*[18]byte)
	defer printHexPtrBufPool.Put(buf)

	// It's simpler to construct the hex string right to left.
	i := len(buf) - 1
	for num >= 16 {
		buf[i] = hexDigits[num%16]
		num /= 16
		i--
	}
	buf[i] = hexDigits[num]

	i--
	buf[i] = 'x'
	i--
	buf[i] = '0'
	w.Write(buf[i:])
}

var printHexPtrBufPool = sync.Pool{
	New: func() interface{} {
		return new([18]byte)
	},
}

// valuesSorter implements sort.Interface to allow a slice of reflect.Value
// elements to be sorted.  It orders map keys before they are turned into
// property keys.
type valuesSorter struct {
	values  []reflect.Value
	strings []string // either nil or same len as values
}

// newValuesSorter initializes a valuesSorter instance, which holds a set of
// surrogate keys on which the data should be sorted.
func newValuesSorter(values []reflect.Value) sort.Interface {
	vs := &valuesSorter{values: values}
	if canSortSimply(vs.values[0].Kind()) {
		return vs
	}
	vs.strings = make([]string, len(values))
	for i := range vs.values {
		var b bytes.Buffer
		if !handleMethods(&b, vs.values[i]) {
			fmt.Fprintf(&b, "%#v", unsafeReflectValue(vs.values[i]))
		}
		vs.strings[i] = b.String()
	}
	return vs
}

// canSortSimply tests whether a reflect.Kind is a primitive that can be sorted
// directly, or whether it should be considered for sorting by surrogate keys.
func canSortSimply(kind reflect.Kind) bool {
	// This switch parallels valueSortLess, except for the default case.
	switch kind {
	case reflect.Bool:
		return true
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return true
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return true
	case reflect.Float32, reflect.Float64:
		return true
	case reflect.String:
		return true
	case reflect.Uintptr:
		return true
	case reflect.Array:
		return true
	}
	return false
}

func (s *valuesSorter) Len() int {
	return len(s.values)
}

func (s *valuesSorter) Swap(i, j int) {
	s.values[i], s.values[j] = s.values[j], s.values[i]
	if s.strings != nil {
		s.strings[i], s.strings[j] = s.strings[j], s.strings[i]
	}
}

// valueSortLess returns whether the first value should sort before the second
// value.
func valueSortLess(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Bool:
		return !a.Bool() && b.Bool()
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return a.Int() < b.Int()
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return a.Uint() < b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	case reflect.String:
		return a.String() < b.String()
	case reflect.Uintptr:
		return a.Uint() < b.Uint()
	case reflect.Array:
		// Compare the contents of both arrays.
		l := a.Len()
		for i := 0; i < l; i++ {
			av := a.Index(i)
			bv := b.Index(i)
			if av.Equal(bv) {
				continue
			}
			return valueSortLess(av, bv)
		}
	}
	return a.String() < b.String()
}

func (s *valuesSorter) Less(i, j int) bool {
	if s.strings == nil {
		return valueSortLess(s.values[i], s.values[j])
	}
	return s.strings[i] < s.strings[j]
}

// sortValues is a sort function that handles both native types and any type
// that can be converted to error or Stringer.  Other inputs are sorted
// according to their Go syntax representation to ensure display stability.
func sortValues(values []reflect.Value) {
	if len(values) == 0 {
		return
	}
	sort.Sort(newValuesSorter(values))
}

// property is the record of one own key of an object.
type property struct {
	key     any
	value   any
	desc    Descriptor
	hasDesc bool
}

// readProperty reads key off r through receiver.  A failing or panicking
// read yields the error as value and no descriptor.
func readProperty(r Reflector, key, receiver any) (p property) {
	p.key = key
	defer func() {
		if rec := recover(); rec != nil {
			p = property{key: key, value: panicError(rec)}
		}
	}()
	v, err := r.Get(key, receiver)
	if err != nil {
		return property{key: key, value: err}
	}
	p.value = v
	p.desc, p.hasDesc = r.Descriptor(key)
	return p
}

// propertySorter implements sort.Interface over property records using
// surrogate keys computed once per record: the key's type, whether the value
// is an object, the value's type and the key's text.  Numeric keys of any
// kind share one key type and order by value before text.
type propertySorter struct {
	props    []property
	keyTypes []string
	isObj    []bool
	valTypes []string
	keyNums  []float64
	isNum    []bool
	keyTexts []string
}

// numericKey returns the value of a numeric key as a float64.
func numericKey(key any) (float64, bool) {
	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func newPropertySorter(props []property) *propertySorter {
	ps := &propertySorter{
		props:    props,
		keyTypes: make([]string, len(props)),
		isObj:    make([]bool, len(props)),
		valTypes: make([]string, len(props)),
		keyNums:  make([]float64, len(props)),
		isNum:    make([]bool, len(props)),
		keyTexts: make([]string, len(props)),
	}
	for i, p := range props {
		ps.keyTypes[i] = typeOf(p.key)
		if f, ok := numericKey(p.key); ok {
			ps.keyTypes[i] = "number"
			ps.keyNums[i], ps.isNum[i] = f, true
		}
		ps.isObj[i] = isObject(p.value)
		ps.valTypes[i] = typeOf(p.value)
		ps.keyTexts[i] = keyString(p.key)
	}
	return ps
}

func (s *propertySorter) Len() int {
	return len(s.props)
}

func (s *propertySorter) Swap(i, j int) {
	s.props[i], s.props[j] = s.props[j], s.props[i]
	s.keyTypes[i], s.keyTypes[j] = s.keyTypes[j], s.keyTypes[i]
	s.isObj[i], s.isObj[j] = s.isObj[j], s.isObj[i]
	s.valTypes[i], s.valTypes[j] = s.valTypes[j], s.valTypes[i]
	s.keyNums[i], s.keyNums[j] = s.keyNums[j], s.keyNums[i]
	s.isNum[i], s.isNum[j] = s.isNum[j], s.isNum[i]
	s.keyTexts[i], s.keyTexts[j] = s.keyTexts[j], s.keyTexts[i]
}

func (s *propertySorter) Less(i, j int) bool {
	if s.keyTypes[i] != s.keyTypes[j] {
		return s.keyTypes[i] < s.keyTypes[j]
	}
	if s.isObj[i] != s.isObj[j] {
		return !s.isObj[i]
	}
	if s.valTypes[i] != s.valTypes[j] {
		return s.valTypes[i] < s.valTypes[j]
	}
	if s.isNum[i] && s.isNum[j] {
		a, b := s.keyNums[i], s.keyNums[j]
		switch {
		case a < b:
			return true
		case a > b:
			return false
		case math.IsNaN(a) != math.IsNaN(b):
			// NaN after every number.
			return math.IsNaN(b)
		}
	}
	return s.keyTexts[i] < s.keyTexts[j]
}

// sortProperties orders props deterministically.  Records equal on every
// surrogate keep their relative order.
func sortProperties(props []property) {
	if len(props) < 2 {
		return
	}
	sort.Stable(newPropertySorter(props))
}

// keyString returns the text a key is ordered by.
func keyString(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case Symbol:
		return k.String()
	}
	return printScalar(key)
}

var bytesBufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

func bytesBufferPut(b *bytes.Buffer) { bytesBufferPool.Put(b) }
func bytesBufferGet() *bytes.Buffer {
	b := bytesBufferPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}
