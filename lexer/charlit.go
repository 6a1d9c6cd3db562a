// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer

import (
	"github.com/dlexlang/dlex/internal/utf8dec"
	"github.com/dlexlang/dlex/token"
)

// scanCharLiteral scans a character literal body, with the cursor
// positioned just past the opening quote (spec.md §4.6). A bare backslash
// immediately followed by end of input is reported and treated as an
// unterminated literal rather than read past the sentinel byte.
func (l *Lexer) scanCharLiteral(tok *token.Token, loc token.Position, startP int) {
	var v rune
	var forcedKind token.Kind
	var forced bool

	switch {
	case l.atEOF():
		l.errorf(loc, "unterminated character literal")
		*tok = token.Token{Kind: token.CHARV, Loc: loc, Ptr: startP, Len: l.p - startP}
		return

	case l.buf[l.p] == '\\':
		l.p++
		if l.atEOF() {
			l.errorf(loc, "unterminated character literal: end of file after '\\'")
			*tok = token.Token{Kind: token.CHARV, Loc: loc, Ptr: startP, Len: l.p - startP, IntValue: uint64('\\')}
			return
		}
		v, forcedKind, forced = l.scanEscapeSequence(loc)

	case l.buf[l.p] == '\'':
		l.errorf(loc, "empty character literal")
		l.p++
		*tok = token.Token{Kind: token.CHARV, Loc: loc, Ptr: startP, Len: l.p - startP}
		return

	case l.buf[l.p] >= 0x80:
		r, size, msg := utf8dec.Decode(l.buf, l.p)
		if msg != "" {
			l.errorf(loc, "%s", msg)
		}
		v = r
		l.p += size

	default:
		v = rune(l.buf[l.p])
		l.p++
	}

	if l.atEOF() {
		l.errorf(loc, "unterminated character literal")
	} else if l.buf[l.p] != '\'' {
		l.errorf(loc, "unterminated character literal: expected closing '\\''")
	} else {
		l.p++
	}

	kind := token.CHARV
	switch {
	case forced:
		kind = forcedKind
	case v > 0xFFFF:
		kind = token.DCHARV
	case v > 0xFF:
		kind = token.WCHARV
	}

	*tok = token.Token{
		Kind:     kind,
		Loc:      loc,
		Ptr:      startP,
		Len:      l.p - startP,
		IntValue: uint64(v),
	}
}
