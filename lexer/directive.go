// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer

import (
	"strconv"

	"github.com/dlexlang/dlex/internal/classify"
	"github.com/dlexlang/dlex/token"
)

// scanPound handles a '#' that isn't part of a shebang: either a
// "#line <n> [\"filespec\"]" directive (or its "#line __LINE__ __FILE__"
// no-op form) that rewrites the position reported for every following line
// (spec.md §4.10), or a lone '#' token. Returns true if tok was populated
// with a real token the caller should return; false means a directive was
// consumed and the caller should keep scanning for the next real token.
func (l *Lexer) scanPound(tok *token.Token, loc token.Position, startP int) bool {
	save := l.p
	l.p++ // consume '#'
	l.skipHSpace()

	if !l.matchWord("line") {
		l.p = save + 1
		*tok = token.Token{Kind: token.POUND, Loc: loc, Ptr: startP, Len: 1}
		return true
	}

	l.skipHSpace()
	var n int
	if l.matchWord("__LINE__") {
		n = l.linnum + 1
	} else {
		numStart := l.p
		for classify.IsDigit(l.buf[l.p]) {
			l.p++
		}
		if l.p == numStart {
			l.errorf(loc, "#line directive requires a decimal line number or __LINE__")
			l.skipToEOL()
			return false
		}
		parsed, err := strconv.Atoi(string(l.buf[numStart:l.p]))
		if err != nil {
			l.errorf(loc, "#line directive line number is out of range")
			parsed = l.linnum
		}
		n = parsed
	}

	l.skipHSpace()
	if l.buf[l.p] == '"' {
		l.p++
		fnStart := l.p
		for !l.atEOF() && l.buf[l.p] != '"' && l.buf[l.p] != '\r' && l.buf[l.p] != '\n' {
			l.p++
		}
		l.filename = string(l.buf[fnStart:l.p])
		if l.buf[l.p] == '"' {
			l.p++
		}
	} else {
		l.matchWord("__FILE__") // filename unchanged
	}
	l.skipToEOL()
	if !l.atEOF() && (l.buf[l.p] == '\r' || l.buf[l.p] == '\n') {
		var discard []byte
		l.scanStringNewline(&discard)
	}

	// The directive itself describes the *next* physical line's reported
	// number; scanStringNewline already moved lineStart to the new line's
	// first byte, so only linnum needs overriding.
	l.linnum = n
	return false
}

func (l *Lexer) skipHSpace() {
	for l.buf[l.p] == ' ' || l.buf[l.p] == '\t' {
		l.p++
	}
}

func (l *Lexer) skipToEOL() {
	for !l.atEOF() && l.buf[l.p] != '\r' && l.buf[l.p] != '\n' {
		l.p++
	}
}

func (l *Lexer) matchWord(word string) bool {
	if l.p+len(word) > len(l.buf) {
		return false
	}
	if string(l.buf[l.p:l.p+len(word)]) != word {
		return false
	}
	if l.p+len(word) < len(l.buf) && classify.IsIdentCont(l.buf[l.p+len(word)]) {
		return false
	}
	l.p += len(word)
	return true
}
