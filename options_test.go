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
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := Default
	require.Equal(t, 40, o.NewlineLimitArray)
	require.Equal(t, 40, o.NewlineLimitGroup)
	require.True(t, o.OriginProperty)
	require.Equal(t, 20, o.IteratorLimit)
	require.Equal(t, Indent{Base: "|", Fill: " ", Size: 8}, o.Indent)
	require.Equal(t, "[", o.Format.Prefix)
	require.Equal(t, "]", o.Format.Suffix)
	require.Equal(t, "{", o.Object.Format.Prefix)
	require.Equal(t, "'", o.Descriptor.Format.Prefix)
	require.Equal(t, "( ", o.Origin.Format.Prefix)
	require.Equal(t, `\ `, o.Header.Format.Prefix)
	require.Equal(t, Indent{Base: "|", Fill: "¨", Size: 8}, o.Header.Indent)
	require.Equal(t, Indent{Base: "|", Fill: "-", Size: 4}, o.Prtype.Indent)
	require.True(t, o.Type.Format.Ignore)
	require.Equal(t, "<ERROR>\n", o.Error.Format.Prefix)

	require.Len(t, o.Prtype.Exclude, 3)
	require.True(t, o.excluded(ObjectPrototype))
	require.True(t, o.excluded(ArrayPrototype))
	require.True(t, o.excluded(IteratorPrototype))
	require.False(t, o.excluded(NewPlainObject()))
	require.False(t, o.excluded(nil))
}

func TestFormatApply(t *testing.T) {
	require.Equal(t, "[x]", Format{Prefix: "[", Suffix: "]"}.Apply("x"))
	require.Equal(t, "[42]", Format{Prefix: "[", Suffix: "]"}.Apply(42))
	require.Equal(t, "", Format{Prefix: "[", Suffix: "]", Ignore: true}.Apply("x"))
	require.Equal(t, "[[Array]]", Default.Prtype.Format.Apply(NewArray()))
	require.Equal(t, "<X>", Format{Prefix: "<", Suffix: ">", Modify: func(v any) string {
		return strings.ToUpper(v.(string))
	}}.Apply("x"))
}

func TestNormalizeFallsBackToDefault(t *testing.T) {
	for _, raw := range []any{nil, 42, "options", []any{1}, (*Options)(nil), map[string]any(nil)} {
		opts, err := Normalize(raw)
		require.NoError(t, err)
		require.Same(t, Default, opts, "%#v", raw)
	}
	opts, err := Normalize(Default)
	require.NoError(t, err)
	require.Same(t, Default, opts)
}

func TestNormalizeMergesOverDefaults(t *testing.T) {
	raw := map[string]any{
		"newlineLimitArray": 5,
		"header": map[string]any{
			"indent": map[string]any{"fill": "="},
		},
		"prtype": map[string]any{
			"format": map[string]any{"ignore": true},
		},
	}
	opts, err := Normalize(raw)
	require.NoError(t, err)
	require.Equal(t, 5, opts.NewlineLimitArray)
	require.Equal(t, 40, opts.NewlineLimitGroup)
	require.Equal(t, Indent{Base: "|", Fill: "=", Size: 8}, opts.Header.Indent)
	require.True(t, opts.Prtype.Format.Ignore)
	require.Equal(t, "[[", opts.Prtype.Format.Prefix)
	require.NotNil(t, opts.Prtype.Format.Modify)
	require.Len(t, opts.Prtype.Exclude, 3)
	require.Equal(t, "{", opts.Object.Format.Prefix)

	// The same tree resolves to the same options.
	again, err := Normalize(raw)
	require.NoError(t, err)
	require.Same(t, opts, again)

	// The defaults are untouched.
	require.Equal(t, 40, Default.NewlineLimitArray)
	require.False(t, Default.Prtype.Format.Ignore)
}

func TestNormalizeTypeMismatch(t *testing.T) {
	_, err := Normalize(map[string]any{"newlineLimitArray": "many"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "newlineLimitArray")

	_, err = Normalize(map[string]any{"object": map[string]any{"format": map[string]any{"prefix": 1}}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "object.format.prefix")

	_, err = Normalize(map[string]any{"origin": "none"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "origin")
}

func TestNormalizeCircular(t *testing.T) {
	raw := map[string]any{}
	raw["self"] = raw
	_, err := Normalize(raw)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrCircularOptions))
}

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions(strings.NewReader(`
newlineLimitArray: 3
originProperty: false
prtype:
  format:
    ignore: true
indent:
  fill: "."
`))
	require.NoError(t, err)
	require.Equal(t, 3, opts.NewlineLimitArray)
	require.False(t, opts.OriginProperty)
	require.True(t, opts.Prtype.Format.Ignore)
	require.Equal(t, Indent{Base: "|", Fill: ".", Size: 8}, opts.Indent)

	opts, err = LoadOptions(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default.NewlineLimitArray, opts.NewlineLimitArray)

	_, err = LoadOptions(strings.NewReader("originProperty: maybe\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "originProperty")

	_, err = LoadOptions(strings.NewReader("[unterminated"))
	require.Error(t, err)
}

func TestOptionsClone(t *testing.T) {
	c := Default.Clone()
	require.NotSame(t, Default, c)
	c.NewlineLimitArray = 1
	c.Prtype.Exclude[0] = nil
	require.Equal(t, 40, Default.NewlineLimitArray)
	require.Same(t, ObjectPrototype, Default.Prtype.Exclude[0])
}
