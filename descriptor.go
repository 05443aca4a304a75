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

import "strings"

// Getter computes an accessor property for receiver.
type Getter func(receiver any) (any, error)

// Setter stores an accessor property on receiver.
type Setter func(receiver, value any) error

// Descriptor describes one own property.  A descriptor with a Get or Set
// function is an accessor property; otherwise it is a data property
// holding Value.
type Descriptor struct {
	Value        any
	Get          Getter
	Set          Setter
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// IsAccessor reports whether d describes an accessor property.
func (d Descriptor) IsAccessor() bool {
	return d.Get != nil || d.Set != nil
}

// DataDescriptor returns the descriptor of an ordinary writable,
// enumerable and configurable data property.
func DataDescriptor(v any) Descriptor {
	return Descriptor{Value: v, Writable: true, Enumerable: true, Configurable: true}
}

// descriptorFlags lists the notable flags of d: W for a read-only data
// property, E for a hidden property, C for a locked property, G and S for
// present accessor functions.
func descriptorFlags(d Descriptor) string {
	var b strings.Builder
	if !d.IsAccessor() && !d.Writable {
		b.WriteByte('W')
	}
	if !d.Enumerable {
		b.WriteByte('E')
	}
	if !d.Configurable {
		b.WriteByte('C')
	}
	if d.Get != nil {
		b.WriteByte('G')
	}
	if d.Set != nil {
		b.WriteByte('S')
	}
	return b.String()
}

// renderDescriptor returns the flag annotation of d, or the empty string
// when no flag is set.
func renderDescriptor(d Descriptor, style Style) string {
	flags := descriptorFlags(d)
	if flags == "" {
		return ""
	}
	return style.Format.Apply(flags)
}
