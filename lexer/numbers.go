// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer

import (
	"math"
	"strconv"

	"github.com/dlexlang/dlex/internal/classify"
	"github.com/dlexlang/dlex/internal/floatlit"
	"github.com/dlexlang/dlex/token"
)

// scanNumber scans a numeric literal starting at the current cursor
// position, which classify.IsDigit has already confirmed is a digit. It
// handles the four integer bases (decimal, 0x hex, 0b binary, legacy
// leading-zero octal), underscore digit separators, the U/L integer
// suffixes, decimal and hex floating-point forms (with p/P binary
// exponents for hex floats), and the f/F/L/i float suffixes, per spec.md
// §4.4-§4.5.
func (l *Lexer) scanNumber(tok *token.Token, loc token.Position, startP int) {
	scratch := l.newScratch()

	base := 10
	isNonDecimal := false

	if l.buf[l.p] == '0' && (l.byteAt(1) == 'x' || l.byteAt(1) == 'X') {
		l.p += 2
		base = 16
		isNonDecimal = true
		l.scanDigitsInto(&scratch, classify.IsHexDigit)
		if l.buf[l.p] == '.' && l.byteAt(1) != '.' || l.buf[l.p] == 'p' || l.buf[l.p] == 'P' {
			l.scanHexFloat(tok, loc, startP, scratch)
			return
		}
		l.finishInt(tok, loc, startP, scratch, base, isNonDecimal)
		return
	}

	if l.buf[l.p] == '0' && (l.byteAt(1) == 'b' || l.byteAt(1) == 'B') {
		l.p += 2
		base = 2
		isNonDecimal = true
		l.scanDigitsInto(&scratch, func(b byte) bool { return b == '0' || b == '1' })
		l.finishInt(tok, loc, startP, scratch, base, isNonDecimal)
		return
	}

	if l.buf[l.p] == '0' && classify.IsOctalDigit(l.byteAt(1)) {
		l.deprecationf(loc, "octal literals are deprecated, use std.conv.octal instead")
		l.p++
		base = 8
		isNonDecimal = true
		l.scanDigitsInto(&scratch, classify.IsOctalDigit)
		l.finishInt(tok, loc, startP, scratch, base, isNonDecimal)
		return
	}

	l.scanDigitsInto(&scratch, classify.IsDigit)

	isFloat := false
	if l.buf[l.p] == '.' && l.byteAt(1) != '.' && !classify.IsIdentStart(l.byteAt(1)) {
		isFloat = true
		scratch = append(scratch, '.')
		l.p++
		l.scanDigitsInto(&scratch, classify.IsDigit)
	}
	if l.buf[l.p] == 'e' || l.buf[l.p] == 'E' {
		isFloat = true
		scratch = l.scanExponent(scratch)
	}
	if !isFloat && (l.buf[l.p] == 'f' || l.buf[l.p] == 'F' || l.buf[l.p] == 'i') {
		// A bare f/F/i suffix with no '.' or exponent (e.g. "3f", "10i")
		// still names a float/imaginary literal; finishFloat consumes the
		// suffix itself.
		isFloat = true
	}

	if isFloat {
		l.finishDecimalFloat(tok, loc, startP, scratch)
		return
	}
	l.finishInt(tok, loc, startP, scratch, base, isNonDecimal)
}

// scanDigitsInto appends every byte satisfying isDigit to *scratch, silently
// skipping '_' digit-group separators (spec.md §4.4).
func (l *Lexer) scanDigitsInto(scratch *[]byte, isDigit func(byte) bool) {
	for {
		b := l.buf[l.p]
		if b == '_' {
			l.p++
			continue
		}
		if !isDigit(b) {
			return
		}
		*scratch = append(*scratch, b)
		l.p++
	}
}

func (l *Lexer) scanExponent(scratch []byte) []byte {
	scratch = append(scratch, l.buf[l.p])
	l.p++
	if l.buf[l.p] == '+' || l.buf[l.p] == '-' {
		scratch = append(scratch, l.buf[l.p])
		l.p++
	}
	l.scanDigitsInto(&scratch, classify.IsDigit)
	return scratch
}

func (l *Lexer) scanHexFloat(tok *token.Token, loc token.Position, startP int, mantissa []byte) {
	scratch := append([]byte("0x"), mantissa...)
	if l.buf[l.p] == '.' {
		scratch = append(scratch, '.')
		l.p++
		l.scanDigitsInto(&scratch, classify.IsHexDigit)
	}
	if l.buf[l.p] != 'p' && l.buf[l.p] != 'P' {
		l.errorf(loc, "hex floating-point literal must have a binary exponent (p/P)")
	} else {
		scratch = l.scanExponent(scratch)
	}
	l.finishFloat(tok, loc, startP, scratch)
}

func (l *Lexer) finishDecimalFloat(tok *token.Token, loc token.Position, startP int, scratch []byte) {
	l.finishFloat(tok, loc, startP, scratch)
}

// finishFloat consumes the f/F/L and i suffixes and renders a
// FLOAT{32,64,80}V or IMAGINARY{32,64,80}V token, per spec.md §4.5's
// "the float parser collaborator" contract (internal/floatlit).
func (l *Lexer) finishFloat(tok *token.Token, loc token.Position, startP int, scratch []byte) {
	kind := token.FLOAT64V
	switch l.buf[l.p] {
	case 'f', 'F':
		kind = token.FLOAT32V
		l.p++
	case 'L':
		kind = token.FLOAT80V
		l.p++
	}
	imaginary := false
	if l.buf[l.p] == 'i' {
		imaginary = true
		l.p++
		switch kind {
		case token.FLOAT32V:
			kind = token.IMAGINARY32V
		case token.FLOAT64V:
			kind = token.IMAGINARY64V
		case token.FLOAT80V:
			kind = token.IMAGINARY80V
		}
	}
	_ = imaginary

	ascii := string(scratch)
	value, outOfRange := floatlit.Parse(ascii)
	switch kind {
	case token.FLOAT32V, token.IMAGINARY32V:
		outOfRange = floatlit.IsFloat32OutOfRange(ascii)
	}
	if outOfRange {
		l.errorf(loc, "floating-point literal %q is out of range", ascii)
	}

	*tok = token.Token{
		Kind:            kind,
		Loc:             loc,
		Ptr:             startP,
		Len:             l.p - startP,
		FloatValue:      value,
		FloatOutOfRange: outOfRange,
	}
}

// finishInt consumes the U/L integer suffixes, parses the accumulated
// digits in base, and selects the narrowest integral Kind that holds the
// value, per spec.md §4.4's kind-selection rule: non-decimal (hex/octal/
// binary) literals auto-promote to an unsigned kind once the value no
// longer fits a signed one; decimal literals without an explicit U/u
// suffix promote to a wider signed kind and become UNS64V only once the
// value exceeds long.max (reported as a deprecation when no suffix at all
// is present).
func (l *Lexer) finishInt(tok *token.Token, loc token.Position, startP int, scratch []byte, base int, nonDecimal bool) {
	hasU, hasL := false, false
loop:
	for {
		switch l.buf[l.p] {
		case 'u', 'U':
			hasU = true
			l.p++
		case 'L':
			hasL = true
			l.p++
		default:
			break loop
		}
	}

	value, err := strconv.ParseUint(string(scratch), base, 64)
	if err != nil {
		l.errorf(loc, "integer literal %q is out of range", string(scratch))
	}

	kind := classifyIntKind(value, hasU, hasL, nonDecimal)
	if !nonDecimal && !hasU && !hasL && value > math.MaxInt64 {
		l.deprecationf(loc, "integer literal %q exceeds long.max, an explicit 'u' suffix is required", string(scratch))
	}

	*tok = token.Token{
		Kind:     kind,
		Loc:      loc,
		Ptr:      startP,
		Len:      l.p - startP,
		IntValue: value,
	}
}

func classifyIntKind(value uint64, hasU, hasL, nonDecimal bool) token.Kind {
	switch {
	case hasU && hasL:
		return token.UNS64V
	case hasL:
		if value > math.MaxInt64 {
			return token.UNS64V
		}
		return token.INT64V
	case hasU:
		if value > math.MaxUint32 {
			return token.UNS64V
		}
		return token.UNS32V
	case nonDecimal:
		switch {
		case value <= math.MaxInt32:
			return token.INT32V
		case value <= math.MaxUint32:
			return token.UNS32V
		case value <= math.MaxInt64:
			return token.INT64V
		default:
			return token.UNS64V
		}
	default:
		switch {
		case value <= math.MaxInt32:
			return token.INT32V
		case value <= math.MaxInt64:
			return token.INT64V
		default:
			return token.UNS64V
		}
	}
}
