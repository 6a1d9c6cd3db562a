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
	"strings"
	"sync"
	"time"

	"github.com/dlexlang/dlex/internal/classify"
	"github.com/dlexlang/dlex/internal/utf8dec"
	"github.com/dlexlang/dlex/token"
)

// specialDateTime memoizes __DATE__/__TIME__/__TIMESTAMP__ for the whole
// process: spec.md §4.3 requires all three to report the same instant
// everywhere they appear, not a fresh clock reading per occurrence.
var specialDateTime struct {
	once      sync.Once
	date      string
	timeOfDay string
	timestamp string
}

func loadSpecialDateTime() {
	specialDateTime.once.Do(func() {
		now := time.Now()
		specialDateTime.date = now.Format("Jan  2 2006")
		specialDateTime.timeOfDay = now.Format("15:04:05")
		specialDateTime.timestamp = now.Format("Mon Jan  2 15:04:05 2006")
	})
}

// scanIdentifier scans an identifier or Unicode-letter-led identifier
// starting at startP, then resolves it: a keyword kind, one of the
// special __DATE__-family substitutions (spec.md §4.3), __EOF__ (which
// ends lexing immediately), or an ordinary interned IDENTIFIER.
func (l *Lexer) scanIdentifier(tok *token.Token, loc token.Position, startP int) {
	for {
		if l.buf[l.p] >= 0x80 {
			r, size, msg := utf8dec.Decode(l.buf, l.p)
			if msg != "" || !utf8dec.IsLetter(r) {
				break
			}
			l.p += size
			continue
		}
		if !classify.IsIdentCont(l.buf[l.p]) {
			break
		}
		l.p++
	}

	name := string(l.buf[startP:l.p])

	switch name {
	case "__EOF__":
		l.p = l.end
		*tok = token.Token{Kind: token.EOF, Loc: loc, Ptr: startP, Len: l.p - startP}
		return
	case "__DATE__":
		l.finishSpecialString(tok, loc, startP, func() string { loadSpecialDateTime(); return specialDateTime.date })
		return
	case "__TIME__":
		l.finishSpecialString(tok, loc, startP, func() string { loadSpecialDateTime(); return specialDateTime.timeOfDay })
		return
	case "__TIMESTAMP__":
		l.finishSpecialString(tok, loc, startP, func() string { loadSpecialDateTime(); return specialDateTime.timestamp })
		return
	case "__VENDOR__":
		l.finishSpecialString(tok, loc, startP, func() string { return l.cfg.Vendor })
		return
	case "__VERSION__":
		*tok = token.Token{
			Kind:     token.INT32V,
			Loc:      loc,
			Ptr:      startP,
			Len:      l.p - startP,
			IntValue: versionValue(l.cfg.CompilerVersion),
		}
		return
	}

	id, kind := l.pool.Lookup(name)
	*tok = token.Token{
		Kind:  kind,
		Loc:   loc,
		Ptr:   startP,
		Len:   l.p - startP,
		Ident: id,
	}
}

// versionValue parses a compiler version string of the form "N.M" into
// 1000*N+M, the encoding __VERSION__ reports as an integer literal rather
// than a string (unlike __VENDOR__ and the __DATE__ family).
func versionValue(version string) uint64 {
	major, minor := version, "0"
	if i := strings.IndexByte(version, '.'); i >= 0 {
		major, minor = version[:i], version[i+1:]
		if j := strings.IndexByte(minor, '.'); j >= 0 {
			minor = minor[:j]
		}
	}
	m, _ := strconv.Atoi(major)
	n, _ := strconv.Atoi(minor)
	return uint64(1000*m + n)
}

func (l *Lexer) finishSpecialString(tok *token.Token, loc token.Position, startP int, value func() string) {
	*tok = token.Token{
		Kind: token.STRING,
		Loc:  loc,
		Ptr:  startP,
		Len:  l.p - startP,
		StringValue: token.StringValue{
			Bytes: []byte(value()),
		},
	}
}
