// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass lexer for a C-family systems
// language with a rich surface syntax: six string-literal forms,
// multi-base numeric literals, nestable comments, UTF-8 decoding
// throughout, special identifier substitutions, and a lookahead/putback
// mechanism built from a linked cache of scanned tokens.
//
// Generalized from probe-lang/lang/lexer/lexer.go's single-pass,
// no-backtracking design, widened from that toy grammar's fixed token set
// to spec.md's full family of string/number/comment forms.
package lexer

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dlexlang/dlex/internal/classify"
	"github.com/dlexlang/dlex/internal/config"
	"github.com/dlexlang/dlex/internal/utf8dec"
	"github.com/dlexlang/dlex/token"
)

// InternPool canonicalizes an identifier spelling to an identity value and
// resolves its keyword kind (spec.md §6). internal/idpool.Pool satisfies
// this; a host compiler may substitute its own.
type InternPool interface {
	Lookup(name string) (token.Identifier, token.Kind)
}

// Sink receives lexical diagnostics (spec.md §6/§7). internal/diag.LogSink
// and internal/diag.Collector both satisfy this.
type Sink interface {
	Error(loc token.Position, format string, args ...interface{})
	Deprecation(loc token.Position, format string, args ...interface{})
}

// Lexer owns a read cursor into an externally provided, immutable byte
// buffer and produces a linear token stream terminated by token.EOF.
type Lexer struct {
	filename string
	buf      []byte // always ends with a 0 sentinel byte, per spec.md §3
	end      int    // index of the sentinel byte
	p        int    // cursor: index of the next unconsumed byte

	lineStart int // index of the first byte of the current line
	linnum    int

	cur *token.Token // most recently scanned or peeked token

	errors bool

	pool  InternPool
	sink  Sink
	cfg   config.Config
	tag   string // not set by New nor attached to diagnostics; cmd/dlex tags through diag.LogSink.Tag

	scratch []byte // per-instance scratch buffer, see DESIGN.md Open Question 3

	pendingBlockComment string
	pendingLineComment  string
	pendingBlockEndLine int
	pendingLineEndLine  int
}

// New constructs a Lexer over src. src is not retained; New copies it (plus
// a trailing sentinel byte) into an owned buffer so the caller's slice can
// be reused or mutated afterward.
func New(filename string, src []byte, pool InternPool, sink Sink, cfg config.Config) *Lexer {
	src = stripBOM(src)

	buf := make([]byte, len(src)+1)
	copy(buf, src)
	buf[len(src)] = 0 // sentinel, per spec.md §3

	l := &Lexer{
		filename:  filename,
		buf:       buf,
		end:       len(src),
		linnum:    1,
		pool:    pool,
		sink:    sink,
		cfg:     cfg,
		scratch: make([]byte, 0, 64),
	}
	l.skipShebang()
	l.cur = &token.Token{}
	l.scan(l.cur)
	return l
}

// stripBOM removes a leading UTF-8 byte-order mark, a real D-frontend
// behavior spec.md doesn't mention but doesn't exclude either (see
// SPEC_FULL.md §11 "supplemented features"). Uses x/text's own BOM-aware
// UTF-8 decoder rather than hand-rolling the 3-byte sniff.
func stripBOM(src []byte) []byte {
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), src)
	if err != nil {
		return src
	}
	return out
}

// skipShebang consumes a leading "#!" line, per spec.md §6's input
// contract.
func (l *Lexer) skipShebang() {
	if len(l.buf) >= 2 && l.buf[0] == '#' && l.buf[1] == '!' {
		for l.p < l.end && l.buf[l.p] != '\n' {
			l.p++
		}
	}
}

// Token returns the most recently returned or peeked token.
func (l *Lexer) Token() *token.Token { return l.cur }

// Errors reports whether any fatal-class diagnostic has been raised so far.
func (l *Lexer) Errors() bool { return l.errors }

// Next advances the lexer and returns the kind of the newly current token.
// Once token.EOF has been returned, subsequent calls keep returning it
// without advancing (spec.md §3 invariant).
func (l *Lexer) Next() token.Kind {
	if l.cur.Next != nil {
		l.cur = l.cur.Next
	} else if l.cur.Kind == token.EOF {
		// idempotent EOF: do not scan past the sentinel again.
	} else {
		nt := &token.Token{}
		l.scan(nt)
		l.cur = nt
	}
	return l.cur.Kind
}

// PeekNext returns the kind of the token after the current one, without
// consuming it.
func (l *Lexer) PeekNext() token.Kind { return l.Peek(l.cur).Kind }

// PeekNext2 returns the kind of the token two ahead of the current one.
func (l *Lexer) PeekNext2() token.Kind { return l.Peek(l.Peek(l.cur)).Kind }

// Peek returns the token immediately following tok, scanning and linking
// one if tok.Next is not yet populated (spec.md §4.8).
func (l *Lexer) Peek(tok *token.Token) *token.Token {
	if tok.Next == nil {
		if tok.Kind == token.EOF {
			// EOF never advances; cache a self-loop so repeated peeks are cheap.
			tok.Next = tok
			return tok
		}
		nt := &token.Token{}
		l.scan(nt)
		tok.Next = nt
	}
	return tok.Next
}

// PeekPastParen scans ahead from tk (which must be a '(' token) to the
// token immediately after the matching ')'. Parentheses are counted at every
// nesting level, including inside '{ }' blocks; the brace depth it tracks
// does not change the result, and ';' gets no special treatment. Returns a
// token.EOF token if the buffer ends first.
func (l *Lexer) PeekPastParen(tk *token.Token) *token.Token {
	parenDepth := 1
	braceDepth := 0
	t := tk
	for {
		t = l.Peek(t)
		switch t.Kind {
		case token.LPAREN:
			parenDepth++
		case token.RPAREN:
			parenDepth--
			if parenDepth == 0 {
				return l.Peek(t)
			}
		case token.LCURLY:
			braceDepth++
		case token.RCURLY:
			if braceDepth > 0 {
				braceDepth--
			}
		case token.EOF:
			return t
		}
	}
}

// --- position & cursor helpers -------------------------------------------------

func (l *Lexer) loc() token.Position {
	return token.Position{
		Filename: l.filename,
		Line:     l.linnum,
		Column:   1 + (l.p - l.lineStart),
	}
}

func (l *Lexer) atEOF() bool { return l.p >= l.end || l.buf[l.p] == 0 || l.buf[l.p] == 0x1A }

func (l *Lexer) byteAt(off int) byte {
	if l.p+off >= len(l.buf) {
		return 0
	}
	return l.buf[l.p+off]
}

func (l *Lexer) newline() {
	l.linnum++
	l.lineStart = l.p
}

func (l *Lexer) errorf(loc token.Position, format string, args ...interface{}) {
	l.errors = true
	l.sink.Error(loc, format, args...)
}

func (l *Lexer) deprecationf(loc token.Position, format string, args ...interface{}) {
	if l.cfg.TreatDeprecationsAsErrors {
		l.errors = true
	}
	l.sink.Deprecation(loc, format, args...)
}

// skipTrivia advances over whitespace and line breaks, but not comments
// (comments are handled by scan itself so commentToken mode can intercept
// them before they're discarded).
func (l *Lexer) skipTrivia() {
	for {
		if l.atEOF() {
			return
		}
		switch l.buf[l.p] {
		case ' ', '\t', '\v', '\f':
			l.p++
		case '\r':
			l.p++
			if !l.atEOF() && l.buf[l.p] == '\n' {
				l.p++
			}
			l.newline()
		case '\n':
			l.p++
			l.newline()
		default:
			if l.buf[l.p] >= 0x80 {
				r, size, _ := utf8dec.Decode(l.buf, l.p)
				if utf8dec.IsLineSeparator(r) {
					l.p += size
					l.newline()
					continue
				}
			}
			return
		}
	}
}

// scan is the dispatcher of spec.md §4.2: it skips whitespace and
// (depending on commentToken) comments, then classifies and scans exactly
// one token into tok.
func (l *Lexer) scan(tok *token.Token) {
	for {
		l.skipTrivia()
		startLoc := l.loc()
		startP := l.p

		if l.atEOF() {
			*tok = token.Token{Kind: token.EOF, Loc: startLoc, Ptr: startP}
			l.attachDocComments(tok)
			return
		}

		ch := l.buf[l.p]
		if ch == '#' && l.byteAt(1) != '!' {
			if l.scanPound(tok, startLoc, startP) {
				l.attachDocComments(tok)
				return
			}
			continue // #line directive consumed; scan the token after it
		}

		if ch == '/' {
			switch l.byteAt(1) {
			case '/':
				produced := l.scanLineComment(tok, startLoc, startP)
				if produced {
					return
				}
				continue
			case '*':
				produced := l.scanBlockComment(tok, startLoc, startP)
				if produced {
					return
				}
				continue
			case '+':
				produced := l.scanNestedComment(tok, startLoc, startP)
				if produced {
					return
				}
				continue
			}
		}

		l.scanMain(tok, startLoc, startP, ch)
		l.attachDocComments(tok)
		return
	}
}

func (l *Lexer) attachDocComments(tok *token.Token) {
	if l.pendingBlockComment != "" {
		tok.BlockComment = l.pendingBlockComment
		l.pendingBlockComment = ""
	}
	if l.pendingLineComment != "" {
		tok.LineComment = l.pendingLineComment
		l.pendingLineComment = ""
	}
}

// scanMain classifies the current byte and scans exactly one non-comment,
// non-EOF token. It assumes l.p == startP and ch == l.buf[startP].
func (l *Lexer) scanMain(tok *token.Token, startLoc token.Position, startP int, ch byte) {
	switch {
	case ch == '0' && !classify.IsAfterZero(l.byteAt(1)):
		l.p++
		*tok = token.Token{Kind: token.INT32V, Loc: startLoc, Ptr: startP, Len: 1, IntValue: 0}
		return
	case ch >= '1' && ch <= '9' && !classify.IsAfterDigit(l.byteAt(1)):
		l.p++
		*tok = token.Token{Kind: token.INT32V, Loc: startLoc, Ptr: startP, Len: 1, IntValue: uint64(ch - '0')}
		return
	case classify.IsDigit(ch):
		l.scanNumber(tok, startLoc, startP)
		return
	case ch == '\'' && classify.IsCharBody(l.byteAt(1)) && l.byteAt(2) == '\'':
		// Fast path for the common 'x' single-ASCII-byte form (spec.md
		// §4.2): skips scanCharLiteral's escape/EOF/Unicode handling
		// entirely since CharBody already excludes '\\' and '\''.
		body := l.byteAt(1)
		l.p += 3
		*tok = token.Token{Kind: token.CHARV, Loc: startLoc, Ptr: startP, Len: 3, IntValue: uint64(body)}
		return
	case ch == '\'':
		l.p++
		l.scanCharLiteral(tok, startLoc, startP)
		return
	case ch == '"':
		l.p++
		l.scanEscapeString(tok, startLoc, startP)
		return
	case ch == '`':
		l.p++
		l.scanWysiwygString(tok, startLoc, startP, '`')
		return
	case ch == 'r' && l.byteAt(1) == '"':
		l.p += 2
		l.scanWysiwygString(tok, startLoc, startP, '"')
		return
	case ch == 'x' && l.byteAt(1) == '"':
		l.p += 2
		l.scanHexString(tok, startLoc, startP)
		return
	case ch == 'q' && l.byteAt(1) == '"':
		l.p += 2
		l.scanDelimitedString(tok, startLoc, startP)
		return
	case ch == 'q' && l.byteAt(1) == '{':
		l.p += 2
		l.scanTokenString(tok, startLoc, startP)
		return
	case classify.IsIdentStart(ch):
		l.scanIdentifier(tok, startLoc, startP)
		return
	case ch >= 0x80:
		l.scanUnicodeStart(tok, startLoc, startP)
		return
	}

	l.scanPunctuation(tok, startLoc, startP, ch)
}

// scanUnicodeStart handles a non-ASCII onset: a Unicode letter starts an
// identifier, LS/PS advance the line, anything else is illegal.
func (l *Lexer) scanUnicodeStart(tok *token.Token, startLoc token.Position, startP int) {
	r, size, msg := utf8dec.Decode(l.buf, l.p)
	if msg != "" {
		l.errorf(startLoc, "%s", msg)
		l.p++
		l.scan(tok)
		return
	}
	if utf8dec.IsLineSeparator(r) {
		l.p += size
		l.newline()
		l.scan(tok)
		return
	}
	if utf8dec.IsLetter(r) {
		l.scanIdentifier(tok, startLoc, startP)
		return
	}
	l.errorf(startLoc, "character 0x%04x is not a valid token", r)
	l.p += size
	l.scan(tok)
}

func (l *Lexer) scanPunctuation(tok *token.Token, loc token.Position, startP int, ch byte) {
	single := func(k token.Kind) {
		l.p++
		*tok = token.Token{Kind: k, Loc: loc, Ptr: startP, Len: 1}
	}
	two := func(k token.Kind) {
		l.p += 2
		*tok = token.Token{Kind: k, Loc: loc, Ptr: startP, Len: 2}
	}
	three := func(k token.Kind) {
		l.p += 3
		*tok = token.Token{Kind: k, Loc: loc, Ptr: startP, Len: 3}
	}
	four := func(k token.Kind) {
		l.p += 4
		*tok = token.Token{Kind: k, Loc: loc, Ptr: startP, Len: 4}
	}

	b1 := l.byteAt(1)
	b2 := l.byteAt(2)
	b3 := l.byteAt(3)

	switch ch {
	case '.':
		if b1 == '.' {
			if b2 == '.' {
				three(token.DOTDOTDOT)
				return
			}
			two(token.SLICE)
			return
		}
		single(token.DOT)
	case '&':
		switch b1 {
		case '&':
			two(token.ANDAND)
		case '=':
			two(token.ANDASS)
		default:
			single(token.AND)
		}
	case '|':
		switch b1 {
		case '|':
			two(token.OROR)
		case '=':
			two(token.ORASS)
		default:
			single(token.OR)
		}
	case '-':
		switch b1 {
		case '-':
			two(token.MINUSMINUS)
		case '=':
			two(token.MINASS)
		default:
			single(token.MIN)
		}
	case '+':
		switch b1 {
		case '+':
			two(token.PLUSPLUS)
		case '=':
			two(token.ADDASS)
		default:
			single(token.ADD)
		}
	case '<':
		switch {
		case b1 == '<' && b2 == '=':
			three(token.SHLASS)
		case b1 == '<':
			two(token.SHL)
		case b1 == '=':
			two(token.LE)
		case b1 == '>' && b2 == '=':
			three(token.UE)
		case b1 == '>':
			two(token.UNORD)
		default:
			single(token.LT)
		}
	case '>':
		switch {
		case b1 == '>' && b2 == '>' && b3 == '=':
			four(token.USHRASS)
		case b1 == '>' && b2 == '>':
			three(token.USHR)
		case b1 == '>' && b2 == '=':
			three(token.SHRASS)
		case b1 == '>':
			two(token.SHR)
		case b1 == '=':
			two(token.GE)
		default:
			single(token.GT)
		}
	case '!':
		switch {
		case b1 == '<' && b2 == '>' && b3 == '=':
			four(token.NOTUE)
		case b1 == '<' && b2 == '>':
			three(token.NOTUNORD)
		case b1 == '<' && b2 == '=':
			three(token.NOTLE)
		case b1 == '<':
			two(token.NOTLT)
		case b1 == '>' && b2 == '=':
			three(token.NOTGE)
		case b1 == '>':
			two(token.NOTGT)
		case b1 == '=':
			two(token.NOTEQUAL)
		default:
			single(token.NOT)
		}
	case '=':
		switch b1 {
		case '=':
			two(token.EQUAL)
		case '>':
			two(token.GOESTO)
		default:
			single(token.ASSIGN)
		}
	case '~':
		if b1 == '=' {
			two(token.CATASS)
		} else {
			single(token.TILDE)
		}
	case '^':
		switch {
		case b1 == '^' && b2 == '=':
			three(token.POWASS)
		case b1 == '^':
			two(token.POW)
		case b1 == '=':
			two(token.XORASS)
		default:
			single(token.XOR)
		}
	case '*':
		if b1 == '=' {
			two(token.MULASS)
		} else {
			single(token.MUL)
		}
	case '%':
		if b1 == '=' {
			two(token.MODASS)
		} else {
			single(token.MOD)
		}
	case '/':
		if b1 == '=' {
			two(token.DIVASS)
		} else {
			single(token.DIV)
		}
	case ':':
		if b1 == ':' {
			two(token.COLONCOLON)
		} else {
			single(token.COLON)
		}
	case '(':
		single(token.LPAREN)
	case ')':
		single(token.RPAREN)
	case '[':
		single(token.LBRACKET)
	case ']':
		single(token.RBRACKET)
	case '{':
		single(token.LCURLY)
	case '}':
		single(token.RCURLY)
	case '?':
		single(token.QUESTION)
	case ',':
		single(token.COMMA)
	case ';':
		single(token.SEMICOLON)
	case '$':
		single(token.DOLLAR)
	case '@':
		single(token.AT)
	case '#':
		single(token.POUND)
	default:
		l.errorf(loc, "character '%c' is not a valid token", ch)
		l.p++
		l.scan(tok)
	}
}

// newScratch resets and returns the lexer's per-instance scratch buffer
// (DESIGN.md Open Question 3: instance-scoped, not a process global).
func (l *Lexer) newScratch() []byte {
	l.scratch = l.scratch[:0]
	return l.scratch
}

