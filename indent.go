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
	"strings"
	"sync"
	"unicode/utf8"
)

// stepCache caches indent steps by their configuration.
var stepCache sync.Map // map[Indent]string

// Step returns the literal string of one indentation step: in.Base padded
// with in.Fill up to in.Size runes.
func Step(in Indent) string {
	if cv, ok := stepCache.Load(in); ok {
		return cv.(string)
	}
	n := utf8.RuneCountInString(in.Base)
	fill := []rune(in.Fill)
	var b strings.Builder
	b.WriteString(in.Base)
	for i := 0; n < in.Size && len(fill) > 0; i++ {
		b.WriteRune(fill[i%len(fill)])
		n++
	}
	step := b.String()
	stepCache.Store(in, step)
	return step
}

// Indentation is an immutable stack of indent steps, one per nesting depth.
// The first step is always a newline, so joining the steps yields the
// separator that starts a line at the current depth.
type Indentation struct {
	steps    []string
	current  string
	previous string
}

// NewIndentation returns the root indentation, holding only the newline step.
func NewIndentation() Indentation {
	return newIndentation([]string{"\n"})
}

func newIndentation(steps []string) Indentation {
	in := Indentation{steps: steps}
	in.current = strings.Join(steps, "")
	if len(steps) > 0 {
		in.previous = strings.Join(steps[:len(steps)-1], "")
	}
	return in
}

// Next returns an indentation one level deeper, using the step described by in.
func (i Indentation) Next(in Indent) Indentation {
	steps := make([]string, len(i.steps), len(i.steps)+1)
	copy(steps, i.steps)
	return newIndentation(append(steps, Step(in)))
}

// WithLast returns an indentation at the same depth whose last step is
// replaced by the step described by in.
func (i Indentation) WithLast(in Indent) Indentation {
	if len(i.steps) == 0 {
		return newIndentation([]string{Step(in)})
	}
	steps := make([]string, len(i.steps))
	copy(steps, i.steps)
	steps[len(steps)-1] = Step(in)
	return newIndentation(steps)
}

// Resolve returns every step joined (current) and every step but the last
// joined (previous).
func (i Indentation) Resolve() (current, previous string) {
	return i.current, i.previous
}

// Current returns every step joined.
func (i Indentation) Current() string {
	return i.current
}

// Depth returns the number of steps.
func (i Indentation) Depth() int {
	return len(i.steps)
}
