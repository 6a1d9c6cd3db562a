// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer_test

import (
	"strings"
	"testing"

	"github.com/dlexlang/dlex/internal/config"
	"github.com/dlexlang/dlex/internal/diag"
	"github.com/dlexlang/dlex/internal/idpool"
	"github.com/dlexlang/dlex/lexer"
	"github.com/dlexlang/dlex/token"
)

// tokenCase is a single expected token in a table-driven test.
type tokenCase struct {
	kind    token.Kind
	literal string
}

func collect(src string) ([]token.Token, *diag.Collector) {
	pool := idpool.New()
	coll := &diag.Collector{}
	l := lexer.New("test.d", []byte(src), pool, coll, config.Default())

	var toks []token.Token
	for {
		tk := *l.Token()
		toks = append(toks, tk)
		if tk.Kind == token.EOF {
			break
		}
		l.Next()
	}
	return toks, coll
}

func literalOf(tk token.Token) string {
	switch tk.Kind {
	case token.IDENTIFIER:
		return "ident"
	case token.STRING, token.XSTRING:
		return string(tk.StringValue.Bytes)
	default:
		return tk.Kind.String()
	}
}

func runTokenize(t *testing.T, name, input string, want []tokenCase) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		toks, _ := collect(input)
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("expected a trailing EOF token, got %#v", toks)
		}
		body := toks[:len(toks)-1]
		if len(body) != len(want) {
			t.Fatalf("got %d tokens (excl. EOF), want %d: %#v", len(body), len(want), body)
		}
		for i, w := range want {
			if body[i].Kind != w.kind {
				t.Errorf("token[%d]: kind = %s, want %s", i, body[i].Kind, w.kind)
			}
			if w.literal != "" && literalOf(body[i]) != w.literal {
				t.Errorf("token[%d]: literal = %q, want %q", i, literalOf(body[i]), w.literal)
			}
		}
	})
}

func TestSingleCharPunctuation(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"+", token.ADD}, {"-", token.MIN}, {"*", token.MUL}, {"%", token.MOD},
		{"~", token.TILDE}, {"&", token.AND}, {"|", token.OR}, {"^", token.XOR},
		{"!", token.NOT}, {".", token.DOT}, {"<", token.LT}, {">", token.GT},
		{"=", token.ASSIGN}, {":", token.COLON}, {"@", token.AT},
		{"(", token.LPAREN}, {")", token.RPAREN}, {"[", token.LBRACKET},
		{"]", token.RBRACKET}, {"{", token.LCURLY}, {"}", token.RCURLY},
		{",", token.COMMA}, {";", token.SEMICOLON}, {"$", token.DOLLAR},
	}
	for _, c := range cases {
		runTokenize(t, c.in, c.in, []tokenCase{{c.kind, ""}})
	}
}

func TestMultiCharOperators(t *testing.T) {
	runTokenize(t, "eq", "==", []tokenCase{{token.EQUAL, ""}})
	runTokenize(t, "neq", "!=", []tokenCase{{token.NOTEQUAL, ""}})
	runTokenize(t, "shl", "<<", []tokenCase{{token.SHL, ""}})
	runTokenize(t, "ushr", ">>>", []tokenCase{{token.USHR, ""}})
	runTokenize(t, "ushrass", ">>>=", []tokenCase{{token.USHRASS, ""}})
	runTokenize(t, "pow", "^^", []tokenCase{{token.POW, ""}})
	runTokenize(t, "slice", "..", []tokenCase{{token.SLICE, ""}})
	runTokenize(t, "dotdotdot", "...", []tokenCase{{token.DOTDOTDOT, ""}})
	runTokenize(t, "goesto", "=>", []tokenCase{{token.GOESTO, ""}})
	runTokenize(t, "catass", "~=", []tokenCase{{token.CATASS, ""}})
}

// ---------------------------------------------------------------------------
// Boundary scenarios
// ---------------------------------------------------------------------------

// A keyword spelling running right up against the sentinel byte must still
// resolve as the keyword, not read past the end of the buffer.
func TestKeywordAtBufferEnd(t *testing.T) {
	runTokenize(t, "int_at_eof", "int", []tokenCase{{token.INT32, ""}})
}

func TestZeroAlone(t *testing.T) {
	runTokenize(t, "zero_alone", "0", []tokenCase{{token.INT32V, ""}})
}

func TestHexIntKindSelection(t *testing.T) {
	toks, _ := collect("0x8000_0000")
	if toks[0].Kind != token.UNS32V {
		t.Errorf("0x8000_0000: kind = %s, want UNS32V", toks[0].Kind)
	}
	if toks[0].IntValue != 0x80000000 {
		t.Errorf("0x8000_0000: value = %#x, want 0x80000000", toks[0].IntValue)
	}

	toks, _ = collect("0x1_0000_0000")
	if toks[0].Kind != token.INT64V {
		t.Errorf("0x1_0000_0000: kind = %s, want INT64V", toks[0].Kind)
	}

	toks, _ = collect("0x8000_0000_0000_0000")
	if toks[0].Kind != token.UNS64V {
		t.Errorf("0x8000_0000_0000_0000: kind = %s, want UNS64V", toks[0].Kind)
	}
}

func TestWysiwygStringNoEscapeProcessing(t *testing.T) {
	toks, _ := collect(`r"a\nb"`)
	if toks[0].Kind != token.STRING {
		t.Fatalf("kind = %s, want STRING", toks[0].Kind)
	}
	if got, want := string(toks[0].StringValue.Bytes), `a\nb`; got != want {
		t.Errorf("body = %q, want %q (escapes must not be processed)", got, want)
	}
}

func TestDelimitedStringNesting(t *testing.T) {
	toks, _ := collect(`q"(a(b)c)"`)
	if toks[0].Kind != token.STRING {
		t.Fatalf("kind = %s, want STRING", toks[0].Kind)
	}
	if got, want := string(toks[0].StringValue.Bytes), "a(b)c"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestNestedBlockComment(t *testing.T) {
	toks, coll := collect("/+ outer /+ inner +/ still outer +/ x")
	if len(coll.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", coll.Errors)
	}
	if len(toks) != 2 || toks[0].Kind != token.IDENTIFIER || toks[1].Kind != token.EOF {
		t.Fatalf("expected [IDENTIFIER, EOF], got %#v", toks)
	}
}

func TestLineDirectiveRewritesPosition(t *testing.T) {
	toks, _ := collect("#line 100 \"foo.d\"\nx")
	if len(toks) < 1 {
		t.Fatal("expected at least one token")
	}
	x := toks[0]
	if x.Loc.Filename != "foo.d" {
		t.Errorf("filename = %q, want foo.d", x.Loc.Filename)
	}
	if x.Loc.Line != 100 {
		t.Errorf("line = %d, want 100", x.Loc.Line)
	}
}

func TestLoneBackslashThenEOFInCharLiteral(t *testing.T) {
	toks, coll := collect(`'\`)
	if len(toks) == 0 || toks[0].Kind != token.CHARV {
		t.Fatalf("expected a CHARV token even for malformed input, got %#v", toks)
	}
	if toks[0].IntValue != uint64('\\') {
		t.Errorf("IntValue = %d, want %d ('\\\\')", toks[0].IntValue, uint64('\\'))
	}
	if len(coll.Errors) == 0 {
		t.Error("expected at least one diagnostic for the unterminated escape")
	}
}

func TestUnicodeEscapeCharKinds(t *testing.T) {
	toks, _ := collect("'\\u0041'")
	if toks[0].Kind != token.WCHARV {
		t.Errorf("\\u0041 kind = %s, want WCHARV", toks[0].Kind)
	}
	toks, _ = collect(`'\U00000041'`)
	if toks[0].Kind != token.DCHARV {
		t.Errorf("\\U00000041 kind = %s, want DCHARV", toks[0].Kind)
	}
}

func TestDocCommentAttachesToFollowingToken(t *testing.T) {
	toks, _ := collect("/** doc */\nvoid")
	if len(toks) == 0 || toks[0].Kind != token.VOID {
		t.Fatalf("expected VOID as first token, got %#v", toks)
	}
	if got := toks[0].BlockComment; got != "doc\n" {
		t.Errorf("BlockComment = %q, want %q", got, "doc\n")
	}
}

func TestDocCommentStripsLeadingFillPerLine(t *testing.T) {
	toks, _ := collect("/**\n * one\n * two\n */\nvoid")
	want := "one\ntwo\n"
	if got := toks[0].BlockComment; got != want {
		t.Errorf("BlockComment = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// Numbers
// ---------------------------------------------------------------------------

func TestFloatLiterals(t *testing.T) {
	toks, _ := collect("3.14")
	if toks[0].Kind != token.FLOAT64V {
		t.Fatalf("kind = %s, want FLOAT64V", toks[0].Kind)
	}
	if toks[0].FloatValue != 3.14 {
		t.Errorf("value = %v, want 3.14", toks[0].FloatValue)
	}
}

func TestFloat32Suffix(t *testing.T) {
	toks, _ := collect("1.5f")
	if toks[0].Kind != token.FLOAT32V {
		t.Fatalf("kind = %s, want FLOAT32V", toks[0].Kind)
	}
}

func TestImaginarySuffix(t *testing.T) {
	toks, _ := collect("2.0i")
	if toks[0].Kind != token.IMAGINARY64V {
		t.Fatalf("kind = %s, want IMAGINARY64V", toks[0].Kind)
	}
}

func TestHexFloatLiteral(t *testing.T) {
	toks, coll := collect("0x1.8p3")
	if len(coll.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", coll.Errors)
	}
	if toks[0].Kind != token.FLOAT64V {
		t.Fatalf("kind = %s, want FLOAT64V", toks[0].Kind)
	}
	if toks[0].FloatValue != 12 { // 0x1.8p3 == 1.5 * 2^3 == 12
		t.Errorf("value = %v, want 12", toks[0].FloatValue)
	}
}

func TestIntDotIsNotFloat(t *testing.T) {
	runTokenize(t, "int_dot_ident", "1.abs", []tokenCase{
		{token.INT32V, ""},
		{token.DOT, ""},
		{token.IDENTIFIER, ""},
	})
}

func TestUnderscoreDigitSeparators(t *testing.T) {
	toks, _ := collect("1_000_000")
	if toks[0].IntValue != 1000000 {
		t.Errorf("value = %d, want 1000000", toks[0].IntValue)
	}
}

// ---------------------------------------------------------------------------
// Strings
// ---------------------------------------------------------------------------

func TestEscapeStringDecodesEscapes(t *testing.T) {
	toks, _ := collect(`"line\nfeed"`)
	if got, want := string(toks[0].StringValue.Bytes), "line\nfeed"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestHexStringLiteral(t *testing.T) {
	toks, _ := collect(`x"DEAD BEEF"`)
	if toks[0].Kind != token.XSTRING {
		t.Errorf("kind = %s, want XSTRING", toks[0].Kind)
	}
	if got, want := string(toks[0].StringValue.Bytes), "\xDE\xAD\xBE\xEF"; got != want {
		t.Errorf("body = %x, want %x", got, want)
	}
}

func TestTokenStringBalancesNestedBraces(t *testing.T) {
	toks, coll := collect(`q{ if (x) { y; } }`)
	if len(coll.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", coll.Errors)
	}
	if toks[0].Kind != token.STRING {
		t.Fatalf("kind = %s, want STRING", toks[0].Kind)
	}
	if !strings.Contains(string(toks[0].StringValue.Bytes), "if (x) { y; }") {
		t.Errorf("body = %q, missing expected nested content", toks[0].StringValue.Bytes)
	}
}

func TestStringPostfix(t *testing.T) {
	toks, _ := collect(`"abc"w`)
	if toks[0].StringValue.Postfix != 'w' {
		t.Errorf("postfix = %q, want 'w'", toks[0].StringValue.Postfix)
	}
}

// ---------------------------------------------------------------------------
// Special identifiers
// ---------------------------------------------------------------------------

func TestSpecialVendorIdentifier(t *testing.T) {
	toks, _ := collect("__VENDOR__")
	if toks[0].Kind != token.STRING {
		t.Fatalf("kind = %s, want STRING", toks[0].Kind)
	}
	if string(toks[0].StringValue.Bytes) != config.Default().Vendor {
		t.Errorf("__VENDOR__ = %q, want %q", toks[0].StringValue.Bytes, config.Default().Vendor)
	}
}

func TestDateTimeIdentifiersAreMemoizedTogether(t *testing.T) {
	toks, _ := collect("__DATE__ __TIME__")
	if toks[0].Kind != token.STRING || toks[1].Kind != token.STRING {
		t.Fatalf("expected two STRING tokens, got %#v", toks[:2])
	}
	again, _ := collect("__DATE__ __TIME__")
	for i := 0; i < 2; i++ {
		if string(again[i].StringValue.Bytes) != string(toks[i].StringValue.Bytes) {
			t.Errorf("token[%d]: second lexing gave %q, first gave %q", i, again[i].StringValue.Bytes, toks[i].StringValue.Bytes)
		}
	}
}

func TestEOFIdentifierTerminatesLexing(t *testing.T) {
	toks, _ := collect("x __EOF__ y z")
	// __EOF__ must stop lexing right there: only x, then EOF.
	if len(toks) != 2 {
		t.Fatalf("expected [IDENTIFIER, EOF], got %#v", toks)
	}
	if toks[0].Kind != token.IDENTIFIER || toks[1].Kind != token.EOF {
		t.Fatalf("expected [IDENTIFIER, EOF], got %#v", toks)
	}
}

// ---------------------------------------------------------------------------
// Identifiers and keywords
// ---------------------------------------------------------------------------

func TestIdentifiers(t *testing.T) {
	runTokenize(t, "simple", "foo", []tokenCase{{token.IDENTIFIER, ""}})
	runTokenize(t, "underscore_only", "_", []tokenCase{{token.IDENTIFIER, ""}})
	runTokenize(t, "digits", "x1y2z3", []tokenCase{{token.IDENTIFIER, ""}})
}

func TestKeywordPrefixIsIdentifier(t *testing.T) {
	runTokenize(t, "intx", "intx", []tokenCase{{token.IDENTIFIER, ""}})
}

func TestSameIdentifierInternsToSameIdentity(t *testing.T) {
	toks, _ := collect("foo foo bar")
	if toks[0].Ident != toks[1].Ident {
		t.Errorf("two occurrences of 'foo' got different identities: %d vs %d", toks[0].Ident, toks[1].Ident)
	}
	if toks[0].Ident == toks[2].Ident {
		t.Errorf("'foo' and 'bar' got the same identity")
	}
}

// ---------------------------------------------------------------------------
// Whitespace, EOF idempotence, and peek
// ---------------------------------------------------------------------------

func TestWhitespaceSkipping(t *testing.T) {
	runTokenize(t, "mixed_ws", " \t\n foo \n\t", []tokenCase{{token.IDENTIFIER, ""}})
}

func TestEmptyInputIsEOF(t *testing.T) {
	toks, _ := collect("")
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("expected a single EOF token, got %#v", toks)
	}
}

func TestNextAfterEOFStaysAtEOF(t *testing.T) {
	pool := idpool.New()
	coll := &diag.Collector{}
	l := lexer.New("t.d", []byte(""), pool, coll, config.Default())
	for i := 0; i < 5; i++ {
		if l.Next() != token.EOF {
			t.Fatalf("call %d: expected EOF, got %s", i, l.Token().Kind)
		}
	}
}

func TestPeekNextDoesNotConsume(t *testing.T) {
	pool := idpool.New()
	coll := &diag.Collector{}
	l := lexer.New("t.d", []byte("a b"), pool, coll, config.Default())
	if l.Token().Kind != token.IDENTIFIER {
		t.Fatalf("first token = %s, want IDENTIFIER", l.Token().Kind)
	}
	if l.PeekNext() != token.IDENTIFIER {
		t.Fatalf("PeekNext = %s, want IDENTIFIER", l.PeekNext())
	}
	// Peeking twice must not advance past 'b'.
	if l.PeekNext() != token.IDENTIFIER {
		t.Fatalf("second PeekNext = %s, want IDENTIFIER", l.PeekNext())
	}
	l.Next()
	if l.Token().Kind != token.IDENTIFIER {
		t.Fatalf("after Next, current = %s, want IDENTIFIER", l.Token().Kind)
	}
	if l.Next() != token.EOF {
		t.Fatalf("expected EOF after second identifier")
	}
}

func TestPeekPastParen(t *testing.T) {
	pool := idpool.New()
	coll := &diag.Collector{}
	l := lexer.New("t.d", []byte("(a, (b, c)) d"), pool, coll, config.Default())
	if l.Token().Kind != token.LPAREN {
		t.Fatalf("first token = %s, want LPAREN", l.Token().Kind)
	}
	after := l.PeekPastParen(l.Token())
	if after.Kind != token.IDENTIFIER {
		t.Errorf("token after matching ')' = %s, want IDENTIFIER (d)", after.Kind)
	}
}

// ---------------------------------------------------------------------------
// Compound program
// ---------------------------------------------------------------------------

func TestFunctionDeclaration(t *testing.T) {
	input := `int add(int x, int y) { return x + y; }`
	runTokenize(t, "fn_decl", input, []tokenCase{
		{token.INT32, ""},
		{token.IDENTIFIER, ""},
		{token.LPAREN, ""},
		{token.INT32, ""},
		{token.IDENTIFIER, ""},
		{token.COMMA, ""},
		{token.INT32, ""},
		{token.IDENTIFIER, ""},
		{token.RPAREN, ""},
		{token.LCURLY, ""},
		{token.RETURN, ""},
		{token.IDENTIFIER, ""},
		{token.ADD, ""},
		{token.IDENTIFIER, ""},
		{token.SEMICOLON, ""},
		{token.RCURLY, ""},
	})
}
