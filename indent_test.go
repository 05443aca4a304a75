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
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestStep(t *testing.T) {
	tests := []struct {
		in   Indent
		want string
	}{
		{Indent{Base: "|", Fill: " ", Size: 8}, "|       "},
		{Indent{Base: "|", Fill: "-", Size: 4}, "|---"},
		{Indent{Base: "|", Fill: "¨", Size: 8}, "|¨¨¨¨¨¨¨"},
		{Indent{Base: "ab", Fill: "xy", Size: 7}, "abxyxyx"},
		{Indent{Base: "long", Fill: "-", Size: 2}, "long"},
		{Indent{Base: "|", Fill: "", Size: 8}, "|"},
		{Indent{}, ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Step(tt.in), "%+v", tt.in)
		// Cached results are identical.
		require.Equal(t, tt.want, Step(tt.in))
	}
	require.Equal(t, 8, utf8.RuneCountInString(Step(Default.Header.Indent)))
}

func TestIndentation(t *testing.T) {
	root := NewIndentation()
	cur, prev := root.Resolve()
	require.Equal(t, "\n", cur)
	require.Equal(t, "", prev)
	require.Equal(t, 1, root.Depth())

	one := root.Next(Default.Indent)
	cur, prev = one.Resolve()
	require.Equal(t, "\n|       ", cur)
	require.Equal(t, "\n", prev)

	two := one.Next(Default.Indent)
	cur, prev = two.Resolve()
	require.Equal(t, "\n|       |       ", cur)
	require.Equal(t, "\n|       ", prev)
	require.Equal(t, 3, two.Depth())

	header := two.WithLast(Default.Header.Indent)
	require.Equal(t, "\n|       |¨¨¨¨¨¨¨", header.Current())
	require.Equal(t, 3, header.Depth())

	// Deriving never changes the receiver.
	require.Equal(t, "\n|       |       ", two.Current())
	require.Equal(t, "\n|       ", one.Current())
}

func TestIndentationWithLastOnEmpty(t *testing.T) {
	var in Indentation
	require.Equal(t, "|---", in.WithLast(Default.Prtype.Indent).Current())
}
