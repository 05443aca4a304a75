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

	"github.com/kataras/golog"
)

// Sink receives one complete rendered message.
type Sink func(msg string)

// WriterSink returns a Sink writing each message, followed by a newline,
// to w.  Write errors are dropped.
func WriterSink(w io.Writer) Sink {
	return func(msg string) {
		io.WriteString(w, msg+"\n")
	}
}

// StdoutSink writes messages to standard out.
func StdoutSink(msg string) {
	WriterSink(os.Stdout)(msg)
}

// GologSink returns a Sink logging each message at debug level.
func GologSink(l *golog.Logger) Sink {
	if l == nil {
		l = golog.Default
	}
	return func(msg string) {
		l.Debug(msg)
	}
}
