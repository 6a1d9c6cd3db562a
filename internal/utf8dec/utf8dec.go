// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package utf8dec implements the "UTF-8 decoder" collaborator contract from
// spec.md §6: decode(bytes, len, &index, &codepoint) -> optional message.
// It is a thin, purpose-built wrapper over the standard library's
// unicode/utf8 package — see DESIGN.md for why no ecosystem replacement
// fits this lower-level primitive.
package utf8dec

import (
	"unicode"
	"unicode/utf8"
)

// LineSeparator and ParagraphSeparator are the two Unicode line-terminator
// code points spec.md §4.2 requires alongside CR/LF (the glossary's "LS" and
// "PS").
const (
	LineSeparator      rune = ' '
	ParagraphSeparator rune = ' '
)

// Decode reads one rune starting at buf[index], returning the rune, the
// number of bytes consumed, and a diagnostic message when the bytes at
// index are not valid UTF-8 (the rune is then utf8.RuneError and one byte
// is consumed, matching utf8.DecodeRune's own recovery behavior so callers
// always make forward progress).
func Decode(buf []byte, index int) (r rune, size int, msg string) {
	r, size = utf8.DecodeRune(buf[index:])
	if r == utf8.RuneError && size <= 1 {
		return utf8.RuneError, 1, "invalid UTF-8 sequence"
	}
	return r, size, ""
}

// IsLineSeparator reports whether r is U+2028 LINE SEPARATOR or U+2029
// PARAGRAPH SEPARATOR, both of which spec.md treats as line terminators.
func IsLineSeparator(r rune) bool { return r == LineSeparator || r == ParagraphSeparator }

// IsLetter reports whether r is a Unicode letter, usable as an identifier
// continuation character once decoded (spec.md §4.3).
func IsLetter(r rune) bool { return unicode.IsLetter(r) }

// AppendRune appends r's UTF-8 encoding to dst, mirroring Decode on the
// encode side: spec.md §4.7 requires every string literal's payload to be
// re-encoded as UTF-8 regardless of the escape or source form it came
// from.
func AppendRune(dst []byte, r rune) []byte {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return append(dst, buf[:n]...)
}
