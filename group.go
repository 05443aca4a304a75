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
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// group collects the properties of one kind.  Bare groups list keys only;
// the others list key = value entries.
type group struct {
	header string
	bare   bool
	match  func(p *property) bool
	props  []*property
}

// groups routes the properties of one object and renders them.
type groups struct {
	n *node

	primitive, getter, object, array *group
	function, null, undefined        *group

	// routing lists the groups in the order their predicates are tried.
	routing []*group
}

func newGroups(n *node) *groups {
	gs := &groups{
		n:         n,
		primitive: &group{header: "primitive"},
		getter: &group{header: "getter", match: func(p *property) bool {
			return !isNil(p.value) && p.value != Undefined && p.hasDesc && p.desc.Get != nil
		}},
		object: &group{header: "object", match: func(p *property) bool {
			return isObject(p.value) && !isArrayLike(p.value)
		}},
		array: &group{header: "array", match: func(p *property) bool {
			return isArrayLike(p.value)
		}},
		function: &group{header: "function", bare: true, match: func(p *property) bool {
			return Classify(p.value) == Function
		}},
		null: &group{header: "null", bare: true, match: func(p *property) bool {
			return Classify(p.value) == Null
		}},
		undefined: &group{header: "undefined", bare: true, match: func(p *property) bool {
			return p.value == Undefined
		}},
	}
	gs.routing = []*group{gs.getter, gs.object, gs.array, gs.function, gs.null, gs.undefined}
	return gs
}

// route adds p to the first group whose predicate holds, or to the
// primitive group.
func (gs *groups) route(p *property) {
	for _, g := range gs.routing {
		if g.match(p) {
			g.props = append(g.props, p)
			return
		}
	}
	gs.primitive.props = append(gs.primitive.props, p)
}

// expand renders every non-empty group, the iterator group and the
// prototype of the object.
func (gs *groups) expand(proto any) (string, error) {
	var b strings.Builder
	write := func(g *group) error {
		if len(g.props) == 0 {
			return nil
		}
		s, err := gs.render(g)
		if err != nil {
			return err
		}
		b.WriteString(s)
		return nil
	}
	for _, g := range []*group{gs.primitive, gs.getter} {
		if err := write(g); err != nil {
			return "", err
		}
	}
	it, err := gs.iterator()
	if err != nil {
		return "", err
	}
	b.WriteString(it)
	for _, g := range []*group{gs.object, gs.array, gs.function, gs.null, gs.undefined} {
		if err := write(g); err != nil {
			return "", err
		}
	}
	p, err := gs.prototype(proto)
	if err != nil {
		return "", err
	}
	b.WriteString(p)
	return b.String(), nil
}

// wrap places a group body under its header.
func (gs *groups) wrap(header, count, body string) string {
	n := gs.n
	current := n.indent.Current()
	return n.indent.WithLast(n.opts.Header.Indent).Current() +
		n.opts.Header.Format.Apply(header) + count + current + body + current
}

func (gs *groups) render(g *group) (string, error) {
	count := "(" + strconv.Itoa(len(g.props)) + ")"
	if g.bare {
		return gs.wrap(g.header, count, gs.keys(g.props)), nil
	}
	body, err := gs.entries(g.props)
	if err != nil {
		return "", err
	}
	return gs.wrap(g.header, count, body), nil
}

func (gs *groups) descriptor(p *property) string {
	if !p.hasDesc {
		return ""
	}
	return renderDescriptor(p.desc, gs.n.opts.Descriptor)
}

// keys renders bare keys, one per line below NewlineLimitGroup and comma
// separated otherwise.
func (gs *groups) keys(props []*property) string {
	opts := gs.n.opts
	sep := gs.n.indent.Current()
	if len(props) >= opts.NewlineLimitGroup {
		sep = ","
	}
	texts := make([]string, len(props))
	for i, p := range props {
		texts[i] = keyText(p.key, opts) + gs.descriptor(p)
	}
	return strings.Join(texts, sep)
}

// entries renders key = value lines.  Keys of single-line entries are
// padded to the widest key; multi-line entries are followed by a blank
// line unless last.
func (gs *groups) entries(props []*property) (string, error) {
	n := gs.n
	opts := n.opts
	current := n.indent.Current()
	next := n.indent.Next(opts.Indent)

	keys := make([]string, len(props))
	width := 0
	for i, p := range props {
		keys[i] = keyText(p.key, opts)
		width = max(width, runewidth.StringWidth(keys[i]))
	}
	lines := make([]string, len(props))
	for i, p := range props {
		expanded, err := n.child(p.value, keySegment(p.key, opts), next).render()
		if err != nil {
			return "", err
		}
		key, spacer := keys[i], ""
		if strings.Contains(expanded, "\n") {
			if i < len(props)-1 {
				spacer = current
			}
		} else {
			key = runewidth.FillRight(key, width)
		}
		lines[i] = key + " = " + expanded + gs.descriptor(p) + spacer
	}
	return strings.Join(lines, current), nil
}

// iterator renders the iteration protocol of the object itself, pulling
// up to its size, or IteratorLimit, items.  Prototypes expanded on behalf
// of an object do not repeat it.
func (gs *groups) iterator() (string, error) {
	n := gs.n
	if n.hasReceiver {
		return "", nil
	}
	it, ok := iterableOf(n.value)
	if !ok {
		return "", nil
	}
	opts := n.opts
	accessed := renderSymbol(SymbolIterator, opts.Style)
	next := n.indent.Next(opts.Indent)

	fn, err := n.child(it.fn, accessed, next).render()
	if err != nil {
		return "", err
	}
	limit := it.size
	if limit < 0 {
		limit = opts.IteratorLimit
	}
	itemOpts := opts.Clone()
	itemOpts.OriginProperty = false
	items := n.child(pullItems(it, limit), accessed, next)
	items.opts = itemOpts
	entries, err := items.render()
	if err != nil {
		return "", err
	}
	// A Go sequence has no prototype chain of its own.  The chain shown is
	// its type, its kind and the shared IteratorPrototype.
	invoked := opts.Format.Apply("invoked-( " +
		opts.Type.Format.Apply(it.seq) + "." +
		opts.Prtype.Format.Apply(it.seq) + "." +
		opts.Prtype.Format.Apply(IteratorPrototype) + " )")
	body := accessed + " = " + fn + " ->" + n.indent.Current() + invoked + " = " + entries
	return gs.wrap("iterator", "", body), nil
}

// pullItems materializes the items of it as an array value.
func pullItems(it iterable, limit int) []any {
	if items := it.pull(limit); items != nil {
		return items
	}
	return []any{}
}

// prototype renders the __proto__ line.
func (gs *groups) prototype(proto any) (string, error) {
	n := gs.n
	opts := n.opts
	if opts.Prtype.Format.Ignore {
		return "", nil
	}
	protoIndent := n.indent.WithLast(opts.Prtype.Indent)
	routed := opts.Prtype.Format.Apply(proto)
	pn := &node{
		value:       proto,
		moniker:     n.moniker + "." + routed,
		path:        append(slices.Clip(n.path), routed),
		opts:        opts,
		indent:      protoIndent.Next(opts.Indent),
		refs:        n.refs,
		receiver:    n.recv(),
		hasReceiver: true,
	}
	expanded, err := pn.render()
	if err != nil {
		return "", err
	}
	return protoIndent.Current() + opts.Format.Apply(protoKey) + " = " + expanded + n.indent.Current(), nil
}
