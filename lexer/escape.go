// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer

import (
	"github.com/dlexlang/dlex/internal/classify"
	"github.com/dlexlang/dlex/internal/entity"
	"github.com/dlexlang/dlex/token"
)

var simpleEscapes = map[byte]rune{
	'\'': '\'',
	'"':  '"',
	'?':  '?',
	'\\': '\\',
	'0':  0,
	'a':  7,
	'b':  8,
	'f':  12,
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  11,
}

// scanEscapeSequence decodes one escape sequence, with the cursor
// positioned just past the leading backslash, per spec.md §4.6: the named
// C-style escapes, \xHH, 1-3 digit octal, \uXXXX, \UXXXXXXXX, and the
// \&name; HTML5 named character reference (internal/entity collaborator).
// Invalid forms are reported through the diagnostic sink and scanning
// continues: an undefined escape or one cut off by end of input decodes as
// U+FFFD, an unknown or unterminated \&name; as a space, a \x/\u/\U escape
// with too few hex digits as the digits read so far, and an octal escape
// above \377 as its full value.
//
// The second result is the character-literal Kind this escape form forces
// regardless of the decoded value (spec.md §4.5: \u selects WCHARV, \U and
// \&name; select DCHARV); forced is false for every other escape form, and
// the caller falls back to deriving the Kind from the value's magnitude.
func (l *Lexer) scanEscapeSequence(loc token.Position) (v rune, forcedKind token.Kind, forced bool) {
	if l.atEOF() {
		l.errorf(loc, "unterminated escape sequence")
		return 0xFFFD, 0, false
	}
	b := l.buf[l.p]

	if r, ok := simpleEscapes[b]; ok && b != '0' {
		l.p++
		return r, 0, false
	}
	if b == '0' && !classify.IsOctalDigit(l.byteAt(1)) {
		l.p++
		return 0, 0, false
	}

	switch {
	case classify.IsOctalDigit(b):
		v := rune(0)
		n := 0
		for n < 3 && classify.IsOctalDigit(l.buf[l.p]) {
			v = v*8 + rune(l.buf[l.p]-'0')
			l.p++
			n++
		}
		if v > 0xFF {
			l.errorf(loc, "octal escape \\%o exceeds \\377", v)
		}
		return v, 0, false

	case b == 'x':
		l.p++
		return l.scanFixedHexEscape(loc, 2), 0, false

	case b == 'u':
		l.p++
		return l.scanFixedHexEscape(loc, 4), token.WCHARV, true

	case b == 'U':
		l.p++
		return l.scanFixedHexEscape(loc, 8), token.DCHARV, true

	case b == '&':
		l.p++
		return l.scanNamedEntityEscape(loc), token.DCHARV, true
	}

	l.errorf(loc, "undefined escape sequence \\%c", b)
	l.p++
	return 0xFFFD, 0, false
}

func (l *Lexer) scanFixedHexEscape(loc token.Position, n int) rune {
	v := rune(0)
	for i := 0; i < n; i++ {
		b := l.buf[l.p]
		if !classify.IsHexDigit(b) {
			l.errorf(loc, "escape hex sequence has %d hex digits instead of %d", i, n)
			return v
		}
		v = v*16 + rune(hexVal(b))
		l.p++
	}
	return v
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

// scanNamedEntityEscape decodes \&name; via the named entity table
// collaborator (internal/entity, spec.md §6).
func (l *Lexer) scanNamedEntityEscape(loc token.Position) rune {
	start := l.p
	for !l.atEOF() && l.buf[l.p] != ';' {
		l.p++
	}
	name := string(l.buf[start:l.p])
	if l.atEOF() {
		l.errorf(loc, "unterminated named entity escape \\&%s", name)
		return ' '
	}
	l.p++ // consume ';'

	r, ok := entity.Lookup(name)
	if !ok {
		l.errorf(loc, "undefined HTML entity reference \\&%s;", name)
		return ' '
	}
	return r
}
