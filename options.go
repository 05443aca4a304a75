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
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format wraps a rendered token in category specific brackets.
type Format struct {
	// Prefix is written before the value.
	Prefix string

	// Suffix is written after the value.
	Suffix string

	// Modify, when set, converts the value to the text placed between
	// Prefix and Suffix.  Without it the value is stringified.
	Modify func(any) string

	// Ignore suppresses the token entirely.
	Ignore bool
}

// Apply returns Prefix + Modify(v) + Suffix, or the empty string when the
// format is ignored.
func (f Format) Apply(v any) string {
	if f.Ignore {
		return ""
	}
	var s string
	switch {
	case f.Modify != nil:
		s = f.Modify(v)
	default:
		if str, ok := v.(string); ok {
			s = str
		} else {
			s = fmt.Sprint(v)
		}
	}
	return f.Prefix + s + f.Suffix
}

// Indent describes one indentation step: Base padded with Fill to Size.
type Indent struct {
	Base string
	Fill string
	Size int
}

// Style is the format and indentation of one rendering category.
type Style struct {
	Format Format
	Indent Indent
}

// PrototypeStyle is the style of prototype annotations.  Values listed in
// Exclude are never expanded.
type PrototypeStyle struct {
	Style
	Exclude []any
}

// Options controls rendering.  Options handed to the renderer must not be
// modified afterwards; use Clone to derive a variant.
//
// The embedded Style is the generic format used for scalars and the
// indentation step used for ordinary nesting.
type Options struct {
	Style

	// NewlineLimitArray is the item count below which arrays render one
	// item per line.  Arrays at or above it render on a single line.
	NewlineLimitArray int

	// NewlineLimitGroup is the entry count below which key-only groups
	// render one key per line.  Larger groups are comma joined.
	NewlineLimitGroup int

	// OriginProperty appends the route of multi-line blocks.
	OriginProperty bool

	// IteratorLimit caps the items pulled from an iterable whose size
	// is unknown.
	IteratorLimit int

	Object     Style
	Descriptor Style
	Origin     Style
	Header     Style
	Prtype     PrototypeStyle
	Type       Style
	Error      Style
}

// Clone returns a copy of o that can be modified independently.
func (o *Options) Clone() *Options {
	c := *o
	c.Prtype.Exclude = slices.Clone(o.Prtype.Exclude)
	return &c
}

func (o *Options) excluded(v any) bool {
	for _, ex := range o.Prtype.Exclude {
		if sameValue(ex, v) {
			return true
		}
	}
	return false
}

// defaultTree returns the raw option tree that user trees are merged over.
func defaultTree() map[string]any {
	format := func(prefix, suffix string, modify func(any) string, ignore bool) map[string]any {
		m := map[string]any{"prefix": prefix, "suffix": suffix, "ignore": ignore}
		if modify != nil {
			m["modify"] = modify
		}
		return m
	}
	indent := func(base, fill string, size int) map[string]any {
		return map[string]any{"base": base, "fill": fill, "size": size}
	}
	return map[string]any{
		"newlineLimitGroup": 40,
		"newlineLimitArray": 40,
		"originProperty":    true,
		"iteratorLimit":     20,
		"format":            format("[", "]", nil, false),
		"indent":            indent("|", " ", 8),
		"object": map[string]any{
			"format": format("{", "}", nil, false),
		},
		"descriptor": map[string]any{
			"format": format("'", "", nil, false),
		},
		"origin": map[string]any{
			"format": format("( ", " )", nil, false),
		},
		"header": map[string]any{
			"format": format(`\ `, "", nil, false),
			"indent": indent("|", "¨", 8),
		},
		"prtype": map[string]any{
			"format":  format("[[", "]]", StrType, false),
			"indent":  indent("|", "-", 4),
			"exclude": []any{ObjectPrototype, ArrayPrototype, IteratorPrototype},
		},
		"type": map[string]any{
			"format": format("<", ">", StrType, true),
		},
		"error": map[string]any{
			"format": format("<ERROR>\n", "\n</ERROR>", nil, false),
		},
	}
}

var (
	defaultOptionTree = defaultTree()

	// Default is the canonical resolved configuration.
	Default = mustDecodeOptions(defaultOptionTree)

	// resolvedOptions memoizes Normalize by the identity of the raw tree.
	resolvedOptions sync.Map // map[uintptr]*resolvedEntry
)

type resolvedEntry struct {
	raw  map[string]any // keeps the key's address from being reused
	opts *Options
}

func mustDecodeOptions(tree map[string]any) *Options {
	opts, err := decodeOptions(tree)
	if err != nil {
		panic(err)
	}
	return opts
}

// Normalize resolves raw options against the defaults.
//
// A nil or non-tree raw value yields Default, an *Options is returned as
// is, and a map[string]any tree is deep merged over the default tree (see
// MergeTrees).  Resolving the same tree twice returns the same *Options.
//
// Resolved trees stay cached, and reachable, for the life of the process.
// Build a tree once and keep it, or keep the returned *Options, rather than
// passing a fresh tree on every call.
func Normalize(raw any) (*Options, error) {
	switch r := raw.(type) {
	case *Options:
		if r == nil {
			return Default, nil
		}
		return r, nil
	case map[string]any:
		if r == nil {
			return Default, nil
		}
		key := reflect.ValueOf(r).Pointer()
		if e, ok := resolvedOptions.Load(key); ok {
			return e.(*resolvedEntry).opts, nil
		}
		merged, err := MergeTrees(r, defaultOptionTree)
		if err != nil {
			return nil, errors.Wrap(err, "normalizing options")
		}
		opts, err := decodeOptions(merged.(map[string]any))
		if err != nil {
			return nil, err
		}
		e, _ := resolvedOptions.LoadOrStore(key, &resolvedEntry{raw: r, opts: opts})
		return e.(*resolvedEntry).opts, nil
	}
	return Default, nil
}

// ReadOptionTree decodes a YAML (or JSON) document into a raw option tree.
func ReadOptionTree(r io.Reader) (map[string]any, error) {
	var tree map[string]any
	if err := yaml.NewDecoder(r).Decode(&tree); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, errors.Wrap(err, "decoding options")
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}

// LoadOptions reads a YAML option tree from r and resolves it.
func LoadOptions(r io.Reader) (*Options, error) {
	tree, err := ReadOptionTree(r)
	if err != nil {
		return nil, err
	}
	return Normalize(tree)
}

// optionDecoder converts a merged tree into Options, remembering the first
// type mismatch.
type optionDecoder struct {
	err error
}

func (d *optionDecoder) fail(path, want string, got any) {
	if d.err == nil {
		d.err = errors.Newf("option %q: expected %s, got %T", path, want, got)
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func (d *optionDecoder) tree(m map[string]any, path, key string) map[string]any {
	switch v := m[key].(type) {
	case nil:
		return nil
	case map[string]any:
		return v
	default:
		d.fail(joinPath(path, key), "a mapping", v)
		return nil
	}
}

func (d *optionDecoder) int(m map[string]any, path, key string) int {
	v := m[key]
	if v == nil {
		return 0
	}
	if n, ok := toInt(v); ok {
		return n
	}
	d.fail(joinPath(path, key), "an integer", v)
	return 0
}

func (d *optionDecoder) bool(m map[string]any, path, key string) bool {
	switch v := m[key].(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		d.fail(joinPath(path, key), "a boolean", v)
		return false
	}
}

func (d *optionDecoder) string(m map[string]any, path, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		d.fail(joinPath(path, key), "a string", v)
		return ""
	}
}

func (d *optionDecoder) format(m map[string]any, path string) Format {
	path = joinPath(path, "format")
	f := d.tree(m, "", "format")
	var out Format
	out.Prefix = d.string(f, path, "prefix")
	out.Suffix = d.string(f, path, "suffix")
	out.Ignore = d.bool(f, path, "ignore")
	switch v := f["modify"].(type) {
	case nil:
	case func(any) string:
		out.Modify = v
	default:
		d.fail(joinPath(path, "modify"), "a func(any) string", v)
	}
	return out
}

func (d *optionDecoder) indent(m map[string]any, path string) Indent {
	path = joinPath(path, "indent")
	in := d.tree(m, "", "indent")
	return Indent{
		Base: d.string(in, path, "base"),
		Fill: d.string(in, path, "fill"),
		Size: d.int(in, path, "size"),
	}
}

func (d *optionDecoder) style(m map[string]any, path string) Style {
	return Style{Format: d.format(m, path), Indent: d.indent(m, path)}
}

func (d *optionDecoder) category(m map[string]any, key string) Style {
	return d.style(d.tree(m, "", key), key)
}

func decodeOptions(tree map[string]any) (*Options, error) {
	var d optionDecoder
	opts := &Options{
		Style:             d.style(tree, ""),
		NewlineLimitArray: d.int(tree, "", "newlineLimitArray"),
		NewlineLimitGroup: d.int(tree, "", "newlineLimitGroup"),
		OriginProperty:    d.bool(tree, "", "originProperty"),
		IteratorLimit:     d.int(tree, "", "iteratorLimit"),
		Object:            d.category(tree, "object"),
		Descriptor:        d.category(tree, "descriptor"),
		Origin:            d.category(tree, "origin"),
		Header:            d.category(tree, "header"),
		Type:              d.category(tree, "type"),
		Error:             d.category(tree, "error"),
	}
	prtype := d.tree(tree, "", "prtype")
	opts.Prtype.Style = d.style(prtype, "prtype")
	switch ex := prtype["exclude"].(type) {
	case nil:
	case []any:
		opts.Prtype.Exclude = slices.Clone(ex)
	default:
		d.fail("prtype.exclude", "a sequence", ex)
	}
	if d.err != nil {
		return nil, d.err
	}
	return opts, nil
}

// toInt converts integral numbers of any kind to int.
func toInt(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int(f), true
		}
	}
	return 0, false
}
