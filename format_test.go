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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatter(t *testing.T) {
	arr := NewArray(1)
	want := mustRender(t, arr)
	require.Equal(t, want, fmt.Sprintf("%v", NewFormatter(arr)))
	require.Equal(t, want, Sprintf("%v", arr))

	obj := NewPlainObject().Set("a", 1)
	s := Sprintf("%+v", obj)
	require.True(t, strings.HasPrefix(s, "<Object>(1){"), s)
	// The defaults keep type annotations off.
	require.True(t, strings.HasPrefix(Sprintf("%v", obj), "(1){"))
}

func TestFormatterDefersToFmt(t *testing.T) {
	tests := []struct {
		format string
		arg    any
		want   string
	}{
		{"%d", 42, "42"},
		{"%5d", 42, "   42"},
		{"%-4d|", 7, "7   |"},
		{"%q", "x", `"x"`},
		{"%x", 255, "ff"},
		{"%#v", []int{1}, "[]int{1}"},
		{"%.2f", 1.5, "1.50"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Sprintf(tt.format, tt.arg), tt.format)
	}
}

func TestFormatterRenderError(t *testing.T) {
	s := Sprintf("%v", hostile{})
	require.True(t, strings.HasPrefix(s, "<ERROR>\nlisting keys of inspect.hostile"), s)
}

func TestPrintfWrappers(t *testing.T) {
	var buf bytes.Buffer
	n, err := Fprintf(&buf, "v=%v", 3)
	require.NoError(t, err)
	require.Equal(t, "v=[3]", buf.String())
	require.Equal(t, 5, n)

	err = Errorf("bad %v", "input")
	require.Contains(t, err.Error(), `["input"]`)

	opts := Default.Clone()
	opts.Format = Format{Prefix: "<", Suffix: ">"}
	require.Equal(t, "<3>", opts.Sprintf("%v", 3))
	require.Equal(t, "<3>", fmt.Sprint(opts.NewFormatter(3)))
}

func TestSdump(t *testing.T) {
	require.Equal(t, "[1]\n[\"a\"]", Sdump(1, "a"))
	s := Sdump(hostile{}, 2)
	require.True(t, strings.HasPrefix(s, "<ERROR>\n"), s)
	require.True(t, strings.HasSuffix(s, "\n[2]"), s)
}
