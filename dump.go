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
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// slotSeparator precedes every rendered argument of a log call.
var slotSeparator = "\n\n" + strings.Repeat("-", 31) + "\n\n"

// logOptions enables type annotations for Log.
var logOptions = map[string]any{
	"type": map[string]any{
		"format": map[string]any{"ignore": false},
	},
}

// dumpState contains information about the state of a multi-value log.
// Values logged together share one reference table, so a value logged
// twice renders as a copy the second time.
type dumpState struct {
	opts *Options
	refs *refTable
}

// slot renders one logged argument.  A mapping holding a single object is
// treated as a capture, rendering the object under the mapping's key.
func (d *dumpState) slot(arg any) string {
	var prepend, name string
	data := arg
	if key, v, ok := captured(arg); ok {
		prepend = keyText(key, d.opts) + " = "
		name, data = key, v
	}
	s, err := newRootNode(data, name, d.opts, d.refs).renderRoot()
	if err != nil {
		s, _ = newRootNode(err, "", d.opts, newRefTable()).renderRoot()
		return s
	}
	return prepend + s
}

// captured reports whether arg is a one-entry mapping from a name to an
// object, as in map[string]any{"user": user}.
func captured(arg any) (string, any, bool) {
	switch m := arg.(type) {
	case map[string]any:
		if len(m) != 1 {
			return "", nil, false
		}
		for k, v := range m {
			return k, v, isObject(v)
		}
	case *Object:
		if m == nil || m.Tag() != "Object" || len(m.keys) != 1 {
			return "", nil, false
		}
		k, ok := m.keys[0].(string)
		if !ok {
			return "", nil, false
		}
		v, err := safeGet(m, k, m)
		return k, v, err == nil && isObject(v)
	}
	return "", nil, false
}

// callerFile returns the base name of the source file calldepth frames
// above its caller.
func callerFile(calldepth int) string {
	_, file, _, ok := runtime.Caller(calldepth + 1)
	if !ok {
		return "???"
	}
	return filepath.Base(file)
}

// fdump renders the arguments into one message: a header naming the
// calling file, then each argument after a separator and its index.
func fdump(opts *Options, calldepth int, a ...any) string {
	d := &dumpState{opts: opts, refs: newRefTable()}
	buf := bytesBufferGet()
	defer bytesBufferPut(buf)

	buf.WriteString("[" + callerFile(calldepth+1) + "]")
	for i, arg := range a {
		buf.WriteString(slotSeparator)
		buf.WriteString("[" + strconv.Itoa(i) + "]: ")
		buf.WriteString(d.slot(arg))
	}
	return buf.String()
}

// LogCustom renders the arguments with options and hands the message to
// sink, or to standard out when sink is nil.  Options are resolved by
// Normalize.  Arguments that fail to render are replaced by their error;
// only an options error is returned.
func LogCustom(options any, sink Sink, a ...any) error {
	opts, err := Normalize(options)
	if err != nil {
		return err
	}
	if sink == nil {
		sink = StdoutSink
	}
	sink(fdump(opts, 1, a...))
	return nil
}

// Log renders the arguments with type annotations to standard out.
func Log(a ...any) {
	opts, err := Normalize(logOptions)
	if err != nil {
		opts = Default
	}
	StdoutSink(fdump(opts, 1, a...))
}

// Fdump renders the arguments to w the same way as Log, without type
// annotations.
func Fdump(w io.Writer, a ...any) {
	WriterSink(w)(fdump(Default, 1, a...))
}

// Dump renders the arguments to standard out the same way as Fdump.
func Dump(a ...any) {
	WriterSink(os.Stdout)(fdump(Default, 1, a...))
}
