package asm

// A cursor is a string that remembers how much of itself has already
// been consumed, so that successive scans can walk a line left to right
// without re-slicing by hand at every call site.
//
// Adapted from the fstring cursor idiom: unlike a multi-file assembler,
// this assembler processes one file at a time and tracks the current
// line number in a *diag.Reporter, so a cursor only needs to remember its
// own remaining text.
type cursor struct {
	str string
}

func newCursor(s string) cursor {
	return cursor{s}
}

func (c cursor) String() string {
	return c.str
}

func (c cursor) isEmpty() bool {
	return len(c.str) == 0
}

func (c cursor) startsWith(fn func(b byte) bool) bool {
	return len(c.str) > 0 && fn(c.str[0])
}

func (c cursor) startsWithChar(b byte) bool {
	return len(c.str) > 0 && c.str[0] == b
}

func (c cursor) startsWithString(s string) bool {
	return len(c.str) >= len(s) && c.str[:len(s)] == s
}

func (c cursor) consume(n int) cursor {
	return cursor{c.str[n:]}
}

func (c cursor) trunc(n int) cursor {
	return cursor{c.str[:n]}
}

func (c cursor) consumeWhitespace() cursor {
	return c.consume(c.scanWhile(whitespace))
}

// consumeWhitespaceAndCommas skips whitespace and comma characters,
// returning the number of commas encountered and the remaining cursor.
func (c cursor) consumeWhitespaceAndCommas() (commas int, rest cursor) {
	rest = c
	for {
		n := rest.scanWhile(whitespace)
		rest = rest.consume(n)
		if rest.startsWithChar(',') {
			commas++
			rest = rest.consume(1)
			continue
		}
		break
	}
	return
}

func (c cursor) scanWhile(fn func(b byte) bool) int {
	i := 0
	for ; i < len(c.str) && fn(c.str[i]); i++ {
	}
	return i
}

func (c cursor) scanUntil(fn func(b byte) bool) int {
	i := 0
	for ; i < len(c.str) && !fn(c.str[i]); i++ {
	}
	return i
}

func (c cursor) scanUntilChar(b byte) int {
	i := 0
	for ; i < len(c.str) && c.str[i] != b; i++ {
	}
	return i
}

func (c cursor) consumeWhile(fn func(b byte) bool) (consumed, remain cursor) {
	i := c.scanWhile(fn)
	return c.trunc(i), c.consume(i)
}

func (c cursor) consumeUntil(fn func(b byte) bool) (consumed, remain cursor) {
	i := c.scanUntil(fn)
	return c.trunc(i), c.consume(i)
}

func (c cursor) consumeUntilChar(b byte) (consumed, remain cursor) {
	i := c.scanUntilChar(b)
	return c.trunc(i), c.consume(i)
}

// field consumes one whitespace/comma-delimited field: a run of
// wordChar bytes up to the next whitespace, comma, or end of string.
func (c cursor) field() (word, remain cursor) {
	i := c.scanUntil(func(b byte) bool { return whitespace(b) || b == ',' })
	return c.trunc(i), c.consume(i)
}

//
// character helper functions
//

func whitespace(b byte) bool {
	return b == ' ' || b == '\t'
}

func wordChar(b byte) bool {
	return !whitespace(b) && b != ',' && b != '\n'
}

func alpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func decimal(b byte) bool {
	return b >= '0' && b <= '9'
}

func alnum(b byte) bool {
	return alpha(b) || decimal(b)
}

func comment(b byte) bool {
	return b == ';'
}

func isASCII(b byte) bool {
	return b <= 127
}
