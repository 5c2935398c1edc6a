// Package cursor implements a reversible code-point cursor over an
// immutable input string, shared by the URL parser and the HTML tokenizer.
package cursor

import "unicode/utf8"

// State discriminates where the cursor sits relative to the input.
type State int

const (
	// Before means next() has not yet been called; there is no current
	// code point.
	Before State = iota
	// At means the cursor sits on a valid code point, returned by current().
	At
	// AfterEnd means the cursor has advanced past the last code point.
	// It is a distinct sentinel so consumers can detect EOF deterministically,
	// rather than overloading a rune value.
	AfterEnd
)

// EOF is returned by Current when the cursor is Before or AfterEnd.
const EOF rune = -1

// Cursor walks an input string one Unicode code point at a time, with
// unlimited backward movement. It never panics on out-of-range operations:
// GoBack at the start is a no-op, and Next past the last code point moves
// to AfterEnd.
type Cursor struct {
	input  string
	// offsets[i] is the byte offset of the i-th code point; the last element,
	// offsets[len(offsets)-1] (== len(input)), is the one-past-the-end offset.
	offsets []int
	// pos indexes into offsets: -1 means Before, len(offsets)-1 (or beyond)
	// means AfterEnd, otherwise pos is the index of the current code point.
	pos int
}

// New builds a Cursor over input. Input is assumed to be valid UTF-8;
// invalid sequences decode as U+FFFD (utf8.RuneError), one byte at a time,
// matching utf8.DecodeRuneInString's behavior.
func New(input string) *Cursor {
	offsets := make([]int, 0, len(input)+1)
	for i := 0; i < len(input); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRuneInString(input[i:])
		i += size
	}
	offsets = append(offsets, len(input))
	return &Cursor{input: input, offsets: offsets, pos: -1}
}

// State reports whether the cursor is Before, At a code point, or AfterEnd.
func (c *Cursor) State() State {
	switch {
	case c.pos < 0:
		return Before
	case c.pos >= len(c.offsets)-1:
		return AfterEnd
	default:
		return At
	}
}

// Current returns the code point the cursor sits on, or EOF if Before or AfterEnd.
func (c *Cursor) Current() rune {
	switch c.State() {
	case At:
		r, _ := utf8.DecodeRuneInString(c.input[c.offsets[c.pos]:])
		return r
	default:
		return EOF
	}
}

// Next advances the cursor by one code point and returns the new current
// code point (or EOF if the cursor has moved to AfterEnd).
func (c *Cursor) Next() rune {
	if c.pos < len(c.offsets)-1 {
		c.pos++
	}
	return c.Current()
}

// GoBack moves the cursor back one code point. A no-op at the start.
func (c *Cursor) GoBack() {
	if c.pos > -1 {
		c.pos--
	}
}

// GoBackN moves the cursor back n code points, clamped at the start.
func (c *Cursor) GoBackN(n int) {
	for i := 0; i < n; i++ {
		c.GoBack()
	}
}

// Position returns the byte offset of the current code point. If the
// cursor is Before, this is 0; if AfterEnd, this is len(input).
func (c *Cursor) Position() int {
	switch c.State() {
	case Before:
		return 0
	case AfterEnd:
		return len(c.input)
	default:
		return c.offsets[c.pos]
	}
}

// SetPosition repositions the cursor so that Current() returns the code
// point starting at the given byte offset. offset must be a code-point
// boundary produced by this cursor (e.g. from Position); passing len(input)
// moves to AfterEnd.
func (c *Cursor) SetPosition(offset int) {
	if offset >= len(c.input) {
		c.pos = len(c.offsets) - 1
		return
	}
	for i, o := range c.offsets {
		if o == offset {
			c.pos = i
			return
		}
		if o > offset {
			c.pos = i - 1
			return
		}
	}
}

// Remaining returns the input slice from the current position (inclusive)
// to the end.
func (c *Cursor) Remaining() string {
	return c.input[c.Position():]
}

// Input returns the full, original input string.
func (c *Cursor) Input() string {
	return c.input
}

// Reset returns the cursor to its Before state.
func (c *Cursor) Reset() {
	c.pos = -1
}
