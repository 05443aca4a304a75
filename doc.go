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

/*
Package inspect renders arbitrary object graphs as deterministic, deeply
indented text for debug logging.

A quick overview of the output:

  - Scalars are bracketed: [1], ["text"], [nil], [undefined].
  - Objects list their own properties in groups (primitive, getter,
    iterator, object, array, function, null, undefined) followed by their
    prototype, and are prefixed with their property count: (2){...}.
  - Arrays list their items, prefixed with the shared item type and
    count: (int: 3)[...].
  - Multi-line blocks end with their route from the root: ( Object.child ).
  - Values reached twice render as {is-copy-of-( route )}, so cycles and
    shared structure never expand twice.

Go structs, maps, slices and arrays are rendered through reflection,
including unexported fields.  Types with exported methods get a
prototype listing them.  For explicit control over properties, accessors
and prototypes, build an *Object or implement Reflector.

Rendering is controlled by Options.  Start from Default and Clone it, or
pass a partial option tree to Normalize (or LoadOptions for YAML):

	opts, err := inspect.Normalize(map[string]any{
		"newlineLimitArray": 10,
		"prtype": map[string]any{"format": map[string]any{"ignore": true}},
	})

Log and LogCustom render several values at once under a header naming the
calling file:

	inspect.Log(map[string]any{"user": user}, request)

See NewFormatter for integrating with the fmt package.
*/
package inspect
