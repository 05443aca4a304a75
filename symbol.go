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

// Symbol is a unique property key.  Two symbols are equal only when they
// were returned by the same call, so a Symbol can be used as a map key or
// as an Object property key without colliding with any string key.
type Symbol struct {
	s *symbol
}

type symbol struct {
	desc    string
	hasDesc bool
	known   bool
}

// NewSymbol returns a new symbol carrying the description desc.
func NewSymbol(desc string) Symbol {
	return Symbol{&symbol{desc: desc, hasDesc: true}}
}

// NewAnonymousSymbol returns a new symbol without a description.
func NewAnonymousSymbol() Symbol {
	return Symbol{&symbol{}}
}

func wellKnownSymbol(name string) Symbol {
	return Symbol{&symbol{desc: name, hasDesc: true, known: true}}
}

// Well-known symbols.  They render as their bare name.
var (
	SymbolIterator      = wellKnownSymbol("iterator")
	SymbolAsyncIterator = wellKnownSymbol("asyncIterator")
	SymbolHasInstance   = wellKnownSymbol("hasInstance")
	SymbolToStringTag   = wellKnownSymbol("toStringTag")
)

// Description returns the description of s and whether it has one.
func (s Symbol) Description() (string, bool) {
	if s.s == nil {
		return "", false
	}
	return s.s.desc, s.s.hasDesc
}

// IsWellKnown reports whether s is one of the package's well-known symbols.
func (s Symbol) IsWellKnown() bool {
	return s.s != nil && s.s.known
}

// String returns Symbol(desc), the form used when ordering symbol keys.
func (s Symbol) String() string {
	desc, _ := s.Description()
	return "Symbol(" + desc + ")"
}

// symbolText is the body of a rendered symbol: the bare name for
// well-known symbols, Symbol("desc") or Symbol() otherwise.
func symbolText(s Symbol) string {
	if s.IsWellKnown() {
		return s.s.desc
	}
	if desc, ok := s.Description(); ok && desc != "" {
		return `Symbol("` + desc + `")`
	}
	return "Symbol()"
}

// renderSymbol renders s through the format of style.
func renderSymbol(s Symbol, style Style) string {
	return style.Format.Apply(symbolText(s))
}
