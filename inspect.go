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
	"strings"

	"github.com/cockroachdb/errors"
)

// Render returns the rendering of v with the Default options.
//
// Errors reported by a Reflector while listing keys or reading its
// prototype abort the rendering and are returned.
func Render(v any) (string, error) {
	return Default.Render(v)
}

// RenderWith returns the rendering of v with opts, or with Default when
// opts is nil.
func RenderWith(opts *Options, v any) (string, error) {
	if opts == nil {
		opts = Default
	}
	return opts.Render(v)
}

// Render returns the rendering of v.  The value is named by its type.  A
// panic raised while walking v is returned as an error.
func (o *Options) Render(v any) (string, error) {
	return newRootNode(v, "", o, newRefTable()).renderRoot()
}

// Sdump returns the renderings of the passed arguments, one per line.  An
// argument that fails to render is replaced by its error.
func (o *Options) Sdump(a ...any) string {
	lines := make([]string, len(a))
	for i, arg := range a {
		s, err := o.Render(arg)
		if err != nil {
			s, _ = o.Render(err)
		}
		lines[i] = s
	}
	return strings.Join(lines, "\n")
}

// Sprintf is a wrapper for fmt.Sprintf that treats each argument as if it
// were passed with a Formatter using o.
func (o *Options) Sprintf(format string, a ...any) string {
	return fmt.Sprintf(format, convertArgs(o, a)...)
}

// Fprintf is a wrapper for fmt.Fprintf that treats each argument as if it
// were passed with a Formatter using o.
func (o *Options) Fprintf(w io.Writer, format string, a ...any) (n int, err error) {
	return fmt.Fprintf(w, format, convertArgs(o, a)...)
}

// Errorf is a wrapper for errors.Newf that treats each argument as if it
// were passed with a Formatter using o.
func (o *Options) Errorf(format string, a ...any) error {
	return errors.Newf(format, convertArgs(o, a)...)
}

// NewFormatter returns a fmt.Formatter rendering v with o.
func (o *Options) NewFormatter(v any) fmt.Formatter {
	return newFormatter(o, v)
}

// Sdump returns the renderings of the passed arguments with the Default
// options, one per line.
func Sdump(a ...any) string {
	return Default.Sdump(a...)
}

// Sprintf is a wrapper for fmt.Sprintf that treats each argument as if it
// were passed with a default Formatter interface returned by NewFormatter.
//
// This function is shorthand for the following syntax:
//
//	fmt.Sprintf(format, inspect.NewFormatter(a), inspect.NewFormatter(b))
func Sprintf(format string, a ...any) string {
	return Default.Sprintf(format, a...)
}

// Fprintf is a wrapper for fmt.Fprintf that treats each argument as if it
// were passed with a default Formatter interface returned by NewFormatter.
// It returns the number of bytes written and any write error encountered.
func Fprintf(w io.Writer, format string, a ...any) (n int, err error) {
	return Default.Fprintf(w, format, a...)
}

// Errorf is a wrapper for errors.Newf that treats each argument as if it
// were passed with a default Formatter interface returned by NewFormatter.
//
// This function is shorthand for the following syntax:
//
//	errors.Newf(format, inspect.NewFormatter(a), inspect.NewFormatter(b))
func Errorf(format string, a ...any) error {
	return Default.Errorf(format, a...)
}
