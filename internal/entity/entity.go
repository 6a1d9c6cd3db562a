// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package entity implements the "named entity table" collaborator contract
// from spec.md §6 (lookup(bytes, len) -> codepoint_or_sentinel), used by the
// \&name; escape form in spec.md §4.6. Rather than hand-maintaining the
// ~2000-row HTML5 named character reference table, it's resolved through
// golang.org/x/net/html's own entity table via html.UnescapeString.
package entity

import "golang.org/x/net/html"

// Lookup resolves an HTML5 named character reference such as "amp" or
// "copy" (without the leading '&' or trailing ';') to its code point. ok is
// false for unknown names.
func Lookup(name string) (r rune, ok bool) {
	source := "&" + name + ";"
	unescaped := html.UnescapeString(source)
	if unescaped == source {
		// UnescapeString leaves unresolvable references untouched.
		return 0, false
	}
	runes := []rune(unescaped)
	if len(runes) != 1 {
		// A handful of legacy HTML4 references expand to a two-rune
		// sequence; spec.md's escape form only ever wants one code point.
		return 0, false
	}
	return runes[0], true
}
