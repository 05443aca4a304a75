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
	"strconv"
	"sync"
)

// supportedFlags is a list of all the character flags supported by fmt package.
const supportedFlags = "0-+# "

// formatState implements the fmt.Formatter interface and contains information
// about the state of a formatting operation.  The NewFormatter function can
// be used to get a new Formatter which can be used directly as arguments
// in standard fmt package printing calls.
type formatState struct {
	value any
	opts  *Options
}

// typedOptions returns opts with type annotations enabled.
var typedOptions sync.Map // map[*Options]*Options

func withTypes(opts *Options) *Options {
	if !opts.Type.Format.Ignore {
		return opts
	}
	if t, ok := typedOptions.Load(opts); ok {
		return t.(*Options)
	}
	t := opts.Clone()
	t.Type.Format.Ignore = false
	actual, _ := typedOptions.LoadOrStore(opts, t)
	return actual.(*Options)
}

// constructOrigFormat recreates the original format string including precision
// and width information to pass along to the standard fmt package.  This allows
// automatic deferral of all format strings this package doesn't support.
func constructOrigFormat(fs fmt.State, verb rune) string {
	buf := bytesBufferGet()
	defer bytesBufferPut(buf)
	buf.WriteByte('%')

	for _, flag := range supportedFlags {
		if fs.Flag(int(flag)) {
			buf.WriteRune(flag)
		}
	}

	if width, ok := fs.Width(); ok {
		buf.WriteString(strconv.Itoa(width))
	}

	if precision, ok := fs.Precision(); ok {
		buf.WriteByte('.')
		buf.WriteString(strconv.Itoa(precision))
	}

	buf.WriteRune(verb)
	return buf.String()
}

// Format satisfies the fmt.Formatter interface.  The %v verb renders the
// value and %+v renders it with type annotations.  Every other verb, and
// any flag but '+', is handed to the standard fmt package.
func (f *formatState) Format(fs fmt.State, verb rune) {
	if verb != 'v' || fs.Flag('#') || fs.Flag('-') || fs.Flag('0') || fs.Flag(' ') {
		fmt.Fprintf(fs, constructOrigFormat(fs, verb), f.value)
		return
	}
	opts := f.opts
	if fs.Flag('+') {
		opts = withTypes(opts)
	}
	s, err := opts.Render(f.value)
	if err != nil {
		s, _ = opts.Render(err)
	}
	io.WriteString(fs, s)
}

// newFormatter is a helper function to consolidate the logic from the various
// public methods which take varying options.
func newFormatter(opts *Options, v any) fmt.Formatter {
	return &formatState{value: v, opts: opts}
}

/*
NewFormatter returns a custom formatter that satisfies the fmt.Formatter
interface.  As a result, it integrates cleanly with standard fmt package
printing functions.

The custom formatter only responds to the %v (rendering) and %+v (rendering
with type annotations) verb combinations.  Any other verbs such as %x and %q
will be sent to the standard fmt package for formatting.

Typically this function shouldn't be called directly.  It is much easier to make
use of the custom formatter by calling one of the convenience functions such as
Sprintf or Errorf.
*/
func NewFormatter(v any) fmt.Formatter {
	return newFormatter(Default, v)
}

// convertArgs accepts a slice of arguments and returns a slice of the same
// length with each argument converted to a formatter using opts.
func convertArgs(opts *Options, args []any) []any {
	formatters := make([]any, len(args))
	for i, arg := range args {
		formatters[i] = newFormatter(opts, arg)
	}
	return formatters
}
