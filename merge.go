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
	"strconv"

	"github.com/cockroachdb/errors"
)

// ErrCircularOptions is returned when an option tree refers to itself.
var ErrCircularOptions = errors.New("circular reference in options")

// treeRef identifies a container of an option tree.
type treeRef struct {
	kind reflect.Kind
	ptr  uintptr
	n    int
}

// treeVisit holds the containers on the current path of one side.
type treeVisit map[treeRef]struct{}

func (tv treeVisit) enter(v any) (treeRef, bool) {
	var ref treeRef
	switch c := v.(type) {
	case map[string]any:
		if c == nil {
			return ref, true
		}
		ref = treeRef{kind: reflect.Map, ptr: reflect.ValueOf(c).Pointer()}
	case []any:
		if len(c) == 0 {
			return ref, true
		}
		ref = treeRef{kind: reflect.Slice, ptr: reflect.ValueOf(c).Pointer(), n: len(c)}
	default:
		return ref, true
	}
	if _, ok := tv[ref]; ok {
		return ref, false
	}
	tv[ref] = struct{}{}
	return ref, true
}

// MergeTrees deep merges priority over fallback and returns a new tree.
//
// Mappings (map[string]any) are merged key by key, the priority winning.
// A sequence ([]any) keeps the priority's items and is extended with the
// fallback's items beyond its length.  Every other value is a leaf and
// is returned as is, so prototype objects and functions are never copied.
// A nil priority yields the fallback.  Either tree referring to itself
// fails with an error wrapping ErrCircularOptions.
func MergeTrees(priority, fallback any) (any, error) {
	m := merger{left: treeVisit{}, right: treeVisit{}}
	return m.merge(priority, fallback, "")
}

type merger struct {
	left, right treeVisit
}

func isNilTree(v any) bool {
	switch c := v.(type) {
	case nil:
		return true
	case map[string]any:
		return c == nil
	case []any:
		return c == nil
	}
	return false
}

func (m *merger) merge(priority, fallback any, path string) (any, error) {
	if isNilTree(priority) {
		priority = fallback
		fallback = nil
	}
	pm, pIsMap := priority.(map[string]any)
	ps, pIsSeq := priority.([]any)
	if !pIsMap && !pIsSeq {
		return priority, nil
	}

	lref, ok := m.left.enter(priority)
	if !ok {
		return nil, errors.Wrapf(ErrCircularOptions, "at %q", displayPath(path))
	}
	defer delete(m.left, lref)
	rref, ok := m.right.enter(fallback)
	if !ok {
		return nil, errors.Wrapf(ErrCircularOptions, "at %q", displayPath(path))
	}
	defer delete(m.right, rref)

	if pIsMap {
		fm, _ := fallback.(map[string]any)
		out := make(map[string]any, len(pm)+len(fm))
		for k, pv := range pm {
			var fv any
			if fm != nil {
				fv = fm[k]
			}
			v, err := m.merge(pv, fv, joinPath(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		for k, fv := range fm {
			if _, ok := pm[k]; ok {
				continue
			}
			v, err := m.merge(fv, nil, joinPath(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}

	fs, _ := fallback.([]any)
	n := max(len(ps), len(fs))
	out := make([]any, n)
	for i := range n {
		// Items are copied, never merged index by index.
		var item any
		if i < len(ps) {
			item = ps[i]
		} else {
			item = fs[i]
		}
		v, err := m.merge(item, nil, joinPath(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func displayPath(path string) string {
	if path == "" {
		return "."
	}
	return path
}
