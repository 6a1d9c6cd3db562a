// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer

import (
	"strings"

	"github.com/dlexlang/dlex/internal/utf8dec"
	"github.com/dlexlang/dlex/token"
)

// scanLineComment scans a "//..." comment up to (but not past) the line
// break, with the cursor positioned at the first '/'. It returns true if
// tok was populated with a COMMENT token that should be returned to the
// caller (commentToken mode); otherwise the comment was only harvested for
// doc-comment attachment or discarded, and the caller should keep scanning.
func (l *Lexer) scanLineComment(tok *token.Token, loc token.Position, startP int) bool {
	l.p += 2 // consume "//"
	bodyStart := l.p
	for !l.atEOF() && l.buf[l.p] != '\r' && l.buf[l.p] != '\n' {
		if l.buf[l.p] >= 0x80 {
			r, size, _ := utf8dec.Decode(l.buf, l.p)
			if utf8dec.IsLineSeparator(r) {
				break
			}
			l.p += size
			continue
		}
		l.p++
	}
	raw := string(l.buf[bodyStart:l.p])

	if l.cfg.DocComments && isLineDocComment(raw) {
		l.recordLineDocComment(loc, canonicalizeLineDoc(raw))
	}

	if l.cfg.CommentTokens {
		*tok = token.Token{Kind: token.COMMENT, Loc: loc, Ptr: startP, Len: l.p - startP, LineComment: raw}
		return true
	}
	return false
}

// scanBlockComment scans a "/* ... */" comment, which does not nest: the
// first "*/" encountered closes it regardless of intervening "/*".
func (l *Lexer) scanBlockComment(tok *token.Token, loc token.Position, startP int) bool {
	l.p += 2 // consume "/*"
	bodyStart := l.p
	for {
		if l.atEOF() {
			l.errorf(loc, "unterminated /* */ comment")
			break
		}
		if l.buf[l.p] == '*' && l.byteAt(1) == '/' {
			break
		}
		if l.buf[l.p] == '\r' || l.buf[l.p] == '\n' {
			var discard []byte
			l.scanStringNewline(&discard)
			continue
		}
		l.p++
	}
	raw := string(l.buf[bodyStart:l.p])
	if !l.atEOF() {
		l.p += 2 // consume "*/"
	}

	if l.cfg.DocComments && isBlockDocComment(raw) {
		l.recordBlockDocComment(loc, canonicalizeBlockDoc(raw, "*"))
	}

	if l.cfg.CommentTokens {
		*tok = token.Token{Kind: token.COMMENT, Loc: loc, Ptr: startP, Len: l.p - startP, BlockComment: raw}
		return true
	}
	return false
}

// scanNestedComment scans a "/+ ... +/" comment, which nests: an interior
// "/+" increases depth and only the matching "+/" at depth zero closes it.
func (l *Lexer) scanNestedComment(tok *token.Token, loc token.Position, startP int) bool {
	l.p += 2 // consume "/+"
	bodyStart := l.p
	depth := 1
	for {
		if l.atEOF() {
			l.errorf(loc, "unterminated /+ +/ comment")
			break
		}
		if l.buf[l.p] == '/' && l.byteAt(1) == '+' {
			depth++
			l.p += 2
			continue
		}
		if l.buf[l.p] == '+' && l.byteAt(1) == '/' {
			depth--
			if depth == 0 {
				break
			}
			l.p += 2
			continue
		}
		if l.buf[l.p] == '\r' || l.buf[l.p] == '\n' {
			var discard []byte
			l.scanStringNewline(&discard)
			continue
		}
		l.p++
	}
	raw := string(l.buf[bodyStart:l.p])
	if !l.atEOF() {
		l.p += 2 // consume "+/"
	}

	if l.cfg.DocComments && isBlockDocComment(raw) {
		l.recordBlockDocComment(loc, canonicalizeBlockDoc(raw, "+"))
	}

	if l.cfg.CommentTokens {
		*tok = token.Token{Kind: token.COMMENT, Loc: loc, Ptr: startP, Len: l.p - startP, BlockComment: raw}
		return true
	}
	return false
}

// isLineDocComment reports whether a "//..." comment body (the text after
// the leading "//") marks a documentation comment: a third '/' not
// followed by a fourth (spec.md §4.9 — "///" is a doc comment, "////" is
// not, a plain banner rule carried over from the C family).
func isLineDocComment(body string) bool {
	return strings.HasPrefix(body, "/") && !strings.HasPrefix(body, "//")
}

func canonicalizeLineDoc(body string) string {
	return canonicalizeDoc(body, '/')
}

// isBlockDocComment reports whether a block/nested comment body (the text
// between the delimiters) marks a doc comment: it starts with '*' or '+'
// (either marker, whichever delimiter opened the comment) and the next byte
// is not that same marker again. An empty body ("/**/", "/++/") is not a
// doc comment; a body of exactly one marker byte ("/***/", "/+++/") is an
// empty doc comment.
func isBlockDocComment(body string) bool {
	if body == "" {
		return false
	}
	marker := body[0]
	if marker != '*' && marker != '+' {
		return false
	}
	rest := body[1:]
	if rest == "" {
		return true // "/***/" / "/+++/" — empty doc comment
	}
	return rest[0] != marker
}

func canonicalizeBlockDoc(body, marker string) string {
	return canonicalizeDoc(body, marker[0])
}

// canonicalizeDoc implements spec.md §4.9's canonicalization: strip leading
// rows that are made up entirely of the fill character, per-line strip a
// single leading fill character (and the space after it, if any), normalize
// line endings to "\n", trim trailing whitespace on each line, and ensure
// the result ends in "\n".
func canonicalizeDoc(body string, fill byte) string {
	s := strings.ReplaceAll(body, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")

	isFillRow := func(line string) bool {
		t := strings.TrimSpace(line)
		if t == "" {
			return false
		}
		for i := 0; i < len(t); i++ {
			if t[i] != fill {
				return false
			}
		}
		return true
	}
	for len(lines) > 0 && isFillRow(lines[0]) {
		lines = lines[1:]
	}

	for i, line := range lines {
		rest := strings.TrimLeft(line, " \t")
		if strings.IndexByte(rest, fill) == 0 {
			rest = rest[1:]
			rest = strings.TrimPrefix(rest, " ")
			line = rest
		}
		lines[i] = strings.TrimRight(line, " \t")
	}

	result := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	return result + "\n"
}

func (l *Lexer) recordLineDocComment(loc token.Position, text string) {
	l.pendingLineComment = joinDoc(l.pendingLineComment, l.pendingLineEndLine, loc.Line, text)
	l.pendingLineEndLine = loc.Line
}

func (l *Lexer) recordBlockDocComment(loc token.Position, text string) {
	l.pendingBlockComment = joinDoc(l.pendingBlockComment, l.pendingBlockEndLine, loc.Line, text)
	l.pendingBlockEndLine = l.linnum
}

// joinDoc concatenates adjacent doc comments with a single '\n', or two if
// a blank source line separated them (spec.md §4.9).
func joinDoc(existing string, prevEndLine, newStartLine int, text string) string {
	if existing == "" {
		return text
	}
	sep := "\n"
	if newStartLine-prevEndLine > 1 {
		sep = "\n\n"
	}
	return existing + sep + text
}
