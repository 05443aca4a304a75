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
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
)

// TestLeaves renders single-line values: scalars, symbols, functions,
// descriptor flags, indent steps and compact arrays.
func TestLeaves(t *testing.T) {
	datadriven.RunTest(t, "testdata/leaves", func(t *testing.T, td *datadriven.TestData) string {
		render := func(opts *Options, v any) string {
			s, err := RenderWith(opts, v)
			if err != nil {
				return err.Error()
			}
			return s
		}

		switch td.Cmd {
		case "string":
			return render(nil, strings.TrimSuffix(td.Input, "\n"))

		case "int":
			var n int
			td.ScanArgs(t, "value", &n)
			return render(nil, n)

		case "uint8":
			var n int
			td.ScanArgs(t, "value", &n)
			return render(nil, uint8(n))

		case "float":
			var s string
			td.ScanArgs(t, "value", &s)
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				td.Fatalf(t, "%v", err)
			}
			return render(nil, f)

		case "complex":
			return render(nil, complex(1, -2))

		case "bool":
			return render(nil, td.HasArg("true"))

		case "nil":
			return render(nil, nil)

		case "undefined":
			return render(nil, Undefined)

		case "pointer":
			n := 7
			return render(nil, &n)

		case "symbol":
			switch {
			case td.HasArg("iterator"):
				return render(nil, SymbolIterator)
			case td.HasArg("anonymous"):
				return render(nil, NewAnonymousSymbol())
			}
			var desc string
			td.ScanArgs(t, "desc", &desc)
			return render(nil, NewSymbol(desc))

		case "func":
			var name string
			td.ScanArgs(t, "name", &name)
			switch name {
			case "named":
				return render(nil, strings.ToUpper)
			case "literal":
				return render(nil, func() {})
			case "method":
				return render(nil, celsius{}.String)
			}
			td.Fatalf(t, "unknown func %q", name)

		case "descriptor":
			d := Descriptor{
				Writable:     td.HasArg("writable"),
				Enumerable:   td.HasArg("enumerable"),
				Configurable: td.HasArg("configurable"),
			}
			if td.HasArg("get") {
				d.Get = func(any) (any, error) { return nil, nil }
			}
			if td.HasArg("set") {
				d.Set = func(any, any) error { return nil }
			}
			return renderDescriptor(d, Default.Descriptor)

		case "step":
			var in Indent
			td.ScanArgs(t, "base", &in.Base)
			td.ScanArgs(t, "fill", &in.Fill)
			td.ScanArgs(t, "size", &in.Size)
			return Step(in)

		case "array":
			opts := Default.Clone()
			td.MaybeScanArgs(t, "limit", &opts.NewlineLimitArray)
			opts.OriginProperty = !td.HasArg("no-origin")
			arr := NewArray()
			for _, arg := range td.CmdArgs {
				if arg.Key != "items" {
					continue
				}
				for i, s := range arg.Vals {
					if n, err := strconv.Atoi(s); err == nil {
						arr.Set(i, n)
					} else {
						arr.Set(i, s)
					}
				}
			}
			return render(opts, arr)

		default:
			td.Fatalf(t, "unknown command: %s", td.Cmd)
		}
		return ""
	})
}
